package database

import (
	"context"
	"fmt"
	"time"

	"washbay/internal/models"
)

// GetSalesSummary aggregates bookings created in the inclusive date range.
// Average order value is computed over completed bookings only.
func (db *DB) GetSalesSummary(ctx context.Context, from, to time.Time) (*models.SalesSummary, error) {
	summary := &models.SalesSummary{From: from, To: to}

	query := `SELECT
                COUNT(*),
                COALESCE(SUM(total_amount), 0),
                COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN status = ? THEN total_amount ELSE 0 END), 0)
              FROM bookings
              WHERE date(created_at) >= ? AND date(created_at) <= ?`
	err := db.QueryRowContext(ctx, query,
		models.StatusCompleted, models.StatusCompleted,
		from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&summary.TotalBookings, &summary.TotalRevenue,
			&summary.CompletedBookings, &summary.CompletedRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales summary: %w", err)
	}

	if summary.CompletedBookings > 0 {
		summary.AverageOrderValue = summary.CompletedRevenue / float64(summary.CompletedBookings)
	}
	return summary, nil
}

// ServiceSales is a per-service revenue breakdown row.
type ServiceSales struct {
	ServiceID   int64   `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Bookings    int64   `json:"bookings"`
	Revenue     float64 `json:"revenue"`
	AvgRating   float64 `json:"avg_rating"`
}

// GetSalesByService groups completed bookings per service, with the current
// average rating joined in.
func (db *DB) GetSalesByService(ctx context.Context, from, to time.Time) ([]*ServiceSales, error) {
	query := `SELECT b.service_id, b.service_name, COUNT(*), COALESCE(SUM(b.total_amount), 0),
                (SELECT COALESCE(AVG(r.rating), 0) FROM reviews r WHERE r.service_id = b.service_id)
              FROM bookings b
              WHERE b.status = ? AND date(b.created_at) >= ? AND date(b.created_at) <= ?
              GROUP BY b.service_id, b.service_name
              ORDER BY SUM(b.total_amount) DESC`
	rows, err := db.QueryContext(ctx, query,
		models.StatusCompleted, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by service: %w", err)
	}
	defer rows.Close()

	var sales []*ServiceSales
	for rows.Next() {
		var s ServiceSales
		if err := rows.Scan(&s.ServiceID, &s.ServiceName, &s.Bookings, &s.Revenue, &s.AvgRating); err != nil {
			return nil, fmt.Errorf("failed to scan service sales: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// DailySales is one day of booking volume for the analytics chart.
type DailySales struct {
	Date     string  `json:"date"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

func (db *DB) GetDailySales(ctx context.Context, from, to time.Time) ([]*DailySales, error) {
	query := `SELECT date(created_at), COUNT(*), COALESCE(SUM(total_amount), 0)
              FROM bookings
              WHERE date(created_at) >= ? AND date(created_at) <= ?
              GROUP BY date(created_at)
              ORDER BY date(created_at)`
	rows, err := db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily sales: %w", err)
	}
	defer rows.Close()

	var days []*DailySales
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Date, &d.Bookings, &d.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		days = append(days, &d)
	}
	return days, rows.Err()
}

// CountBookingsByStatus returns the status distribution for the range.
func (db *DB) CountBookingsByStatus(ctx context.Context, from, to time.Time) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM bookings
              WHERE date(created_at) >= ? AND date(created_at) <= ?
              GROUP BY status`
	rows, err := db.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
