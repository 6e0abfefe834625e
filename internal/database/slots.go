package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"washbay/internal/models"
	"washbay/internal/schedule"
)

const slotColumns = `id, service_id, date, start_time, end_time, is_booked, created_at`

const dateLayout = "2006-01-02"

func scanSlot(row interface{ Scan(...any) error }) (*models.Slot, error) {
	var s models.Slot
	var dateStr string
	err := row.Scan(&s.ID, &s.ServiceID, &dateStr, &s.StartTime, &s.EndTime, &s.IsBooked, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan slot: %w", err)
	}
	s.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse slot date %s: %w", dateStr, err)
	}
	return &s, nil
}

// CreateSlot inserts a slot, rejecting ranges that overlap an existing slot
// for the same service and date. Check and insert run in one transaction so
// two admins cannot race in an overlapping pair.
func (db *DB) CreateSlot(ctx context.Context, slot *models.Slot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var overlapping int
	queryOverlap := `SELECT COUNT(*) FROM slots
                     WHERE service_id = ? AND date = ? AND start_time < ? AND end_time > ?`
	err = tx.QueryRowContext(ctx, queryOverlap,
		slot.ServiceID, slot.Date.Format(dateLayout), slot.EndTime, slot.StartTime).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check slot overlap: %w", err)
	}
	if overlapping > 0 {
		return ErrSlotOverlap
	}

	now := time.Now()
	queryInsert := `INSERT INTO slots (service_id, date, start_time, end_time, is_booked, created_at)
                    VALUES (?, ?, ?, ?, 0, ?)`
	result, err := tx.ExecContext(ctx, queryInsert,
		slot.ServiceID, slot.Date.Format(dateLayout), slot.StartTime, slot.EndTime, now)
	if err != nil {
		return fmt.Errorf("failed to insert slot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	slot.ID = id
	slot.IsBooked = false
	slot.CreatedAt = now

	return tx.Commit()
}

func (db *DB) GetSlot(ctx context.Context, id int64) (*models.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = ?`
	return scanSlot(db.QueryRowContext(ctx, query, id))
}

// GetAvailableSlots returns unbooked slots, optionally filtered by service
// and/or date, ordered by date then start time.
func (db *DB) GetAvailableSlots(ctx context.Context, serviceID int64, date time.Time) ([]*models.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE is_booked = 0`
	var args []any
	if serviceID > 0 {
		query += ` AND service_id = ?`
		args = append(args, serviceID)
	}
	if !date.IsZero() {
		query += ` AND date = ?`
		args = append(args, date.Format(dateLayout))
	}
	query += ` ORDER BY date ASC, start_time ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get available slots: %w", err)
	}
	defer rows.Close()

	var slots []*models.Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// GetSlotAvailability aggregates free/total counts per date for a service
// over the coming days.
func (db *DB) GetSlotAvailability(ctx context.Context, serviceID int64, startDate time.Time, days int) ([]*models.SlotAvailability, error) {
	endDate := startDate.AddDate(0, 0, days-1)
	query := `SELECT date, COUNT(*) AS total, SUM(CASE WHEN is_booked = 0 THEN 1 ELSE 0 END) AS free
              FROM slots
              WHERE service_id = ? AND date BETWEEN ? AND ?
              GROUP BY date ORDER BY date`

	rows, err := db.QueryContext(ctx, query, serviceID,
		startDate.Format(dateLayout), endDate.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get slot availability: %w", err)
	}
	defer rows.Close()

	var out []*models.SlotAvailability
	for rows.Next() {
		var a models.SlotAvailability
		var dateStr string
		if err := rows.Scan(&dateStr, &a.Total, &a.Free); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		a.ServiceID = serviceID
		a.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date %s: %w", dateStr, err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// DeleteSlot removes a slot. Booked slots cannot be deleted; the conditional
// delete and the existence check distinguish conflict from not-found.
func (db *DB) DeleteSlot(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM slots WHERE id = ? AND is_booked = 0`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	var booked bool
	err = db.QueryRowContext(ctx, `SELECT is_booked FROM slots WHERE id = ?`, id).Scan(&booked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check slot: %w", err)
	}
	return ErrSlotBooked
}

// GenerateSlots bulk-creates windows for a service across a date range,
// skipping windows that would overlap existing slots. Returns how many slots
// were inserted.
func (db *DB) GenerateSlots(ctx context.Context, serviceID int64, from time.Time, days int, tmpl schedule.DayTemplate) (int, error) {
	created := 0
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		windows, err := schedule.Generate(date, tmpl)
		if err != nil {
			return created, err
		}
		for _, w := range windows {
			slot := &models.Slot{
				ServiceID: serviceID,
				Date:      w.Date,
				StartTime: w.StartTime,
				EndTime:   w.EndTime,
			}
			err := db.CreateSlot(ctx, slot)
			if errors.Is(err, ErrSlotOverlap) {
				continue
			}
			if err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// ReleaseSlot clears the booked flag. Used by cancellation paths that run
// their own transaction handling.
func (db *DB) ReleaseSlot(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `UPDATE slots SET is_booked = 0 WHERE id = ?`, id)
	return err
}
