package service

import (
	"context"
	"fmt"
	"time"

	"washbay/internal/database"
	"washbay/internal/models"
	"washbay/internal/schedule"

	"github.com/rs/zerolog"
)

// SlotService manages the bookable calendar.
type SlotService struct {
	db       *database.DB
	logger   *zerolog.Logger
	template schedule.DayTemplate
	daysMax  int
}

func NewSlotService(db *database.DB, logger *zerolog.Logger, template schedule.DayTemplate, daysMax int) *SlotService {
	return &SlotService{db: db, logger: logger, template: template, daysMax: daysMax}
}

// CreateSlot adds a single slot after validating the window against the
// schedule rules. Overlap with existing slots is rejected in the database.
func (s *SlotService) CreateSlot(ctx context.Context, slot *models.Slot) error {
	if slot.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id is required", ErrValidation)
	}
	if err := schedule.ValidateWindow(slot.StartTime, slot.EndTime); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.db.GetService(ctx, slot.ServiceID); err != nil {
		return err
	}
	return s.db.CreateSlot(ctx, slot)
}

// Generate fills the calendar for a service from the start date using the
// configured day template. Existing slots are left alone.
func (s *SlotService) Generate(ctx context.Context, serviceID int64, from time.Time, days int) (int, error) {
	if days <= 0 {
		days = models.DefaultGenerateDaysAhead
	}
	if s.daysMax > 0 && days > s.daysMax {
		days = s.daysMax
	}
	svc, err := s.db.GetService(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	if !svc.IsActive {
		return 0, database.ErrServiceInactive
	}

	tmpl := s.template
	if svc.DurationMinutes > 0 {
		tmpl.DurationMinutes = svc.DurationMinutes
	}

	created, err := s.db.GenerateSlots(ctx, serviceID, from, days, tmpl)
	if err != nil {
		return created, err
	}
	s.logger.Info().
		Int64("service_id", serviceID).
		Int("days", days).
		Int("created", created).
		Msg("slots generated")
	return created, nil
}

// ListAvailable returns free future slots, optionally filtered by service and
// date.
func (s *SlotService) ListAvailable(ctx context.Context, serviceID int64, date time.Time) ([]*models.Slot, error) {
	return s.db.GetAvailableSlots(ctx, serviceID, date)
}

// Availability summarizes free capacity per day for a service.
func (s *SlotService) Availability(ctx context.Context, serviceID int64, from time.Time, days int) ([]*models.SlotAvailability, error) {
	if days <= 0 {
		days = 7
	}
	return s.db.GetSlotAvailability(ctx, serviceID, from, days)
}

// Delete removes an unbooked slot. Booked slots are refused.
func (s *SlotService) Delete(ctx context.Context, slotID int64) error {
	return s.db.DeleteSlot(ctx, slotID)
}
