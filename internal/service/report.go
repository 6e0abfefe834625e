package service

import (
	"context"
	"fmt"
	"time"

	"washbay/internal/database"
	"washbay/internal/models"

	"github.com/rs/zerolog"
)

// Analytics is the full dashboard payload for a date range.
type Analytics struct {
	Summary      *models.SalesSummary     `json:"summary"`
	ByService    []*database.ServiceSales `json:"by_service"`
	Daily        []*database.DailySales   `json:"daily"`
	StatusCounts map[string]int64         `json:"status_counts"`
}

// ReportService aggregates bookings for the admin dashboard and exports.
type ReportService struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewReportService(db *database.DB, logger *zerolog.Logger) *ReportService {
	return &ReportService{db: db, logger: logger}
}

// ParseRange interprets from/to query values, defaulting to the last 30 days.
// The range is inclusive on both ends.
func ParseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date", ErrValidation)
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date", ErrValidation)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to date is before from date", ErrValidation)
	}
	return from, to, nil
}

// GetAnalytics builds the dashboard for the range.
func (s *ReportService) GetAnalytics(ctx context.Context, from, to time.Time) (*Analytics, error) {
	summary, err := s.db.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byService, err := s.db.GetSalesByService(ctx, from, to)
	if err != nil {
		return nil, err
	}
	daily, err := s.db.GetDailySales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	counts, err := s.db.CountBookingsByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Summary:      summary,
		ByService:    byService,
		Daily:        daily,
		StatusCounts: counts,
	}, nil
}

// GetBookingsForExport returns the raw booking rows for a sales export.
func (s *ReportService) GetBookingsForExport(ctx context.Context, from, to time.Time) ([]*models.Booking, error) {
	return s.db.GetBookingsByDateRange(ctx, from, to)
}
