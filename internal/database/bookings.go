package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"washbay/internal/models"
)

const bookingColumns = `id, user_id, service_id, slot_id, service_name,
       vehicle_type, vehicle_brand, vehicle_model, vehicle_year, plate_number,
       total_amount, payment_method, status, payment_status, payment_intent_id,
       created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var intentID sql.NullString
	err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceID, &b.SlotID, &b.ServiceName,
		&b.Vehicle.Type, &b.Vehicle.Brand, &b.Vehicle.Model, &b.Vehicle.Year, &b.Vehicle.Plate,
		&b.TotalAmount, &b.PaymentMethod, &b.Status, &b.PaymentStatus, &intentID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	b.PaymentIntentID = intentID.String
	return &b, nil
}

// CreateBookingWithSlot inserts the booking and flips the slot to booked in a
// single transaction. The slot update is conditional on is_booked = 0, so two
// concurrent requests for one slot resolve to exactly one success.
func (db *DB) CreateBookingWithSlot(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Reserve the slot with a conditional update
	result, err := tx.ExecContext(ctx,
		`UPDATE slots SET is_booked = 1 WHERE id = ? AND is_booked = 0`, booking.SlotID)
	if err != nil {
		return fmt.Errorf("failed to reserve slot in tx: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM slots WHERE id = ?`, booking.SlotID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check slot in tx: %w", err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrSlotTaken
	}

	// 2. Insert the booking
	now := time.Now()
	queryInsert := `INSERT INTO bookings (
				user_id, service_id, slot_id, service_name,
				vehicle_type, vehicle_brand, vehicle_model, vehicle_year, plate_number,
				total_amount, payment_method, status, payment_status, payment_intent_id,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertResult, err := tx.ExecContext(ctx, queryInsert,
		booking.UserID,
		booking.ServiceID,
		booking.SlotID,
		booking.ServiceName,
		booking.Vehicle.Type,
		booking.Vehicle.Brand,
		booking.Vehicle.Model,
		booking.Vehicle.Year,
		booking.Vehicle.Plate,
		booking.TotalAmount,
		booking.PaymentMethod,
		booking.Status,
		booking.PaymentStatus,
		nullString(booking.PaymentIntentID),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := insertResult.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return tx.Commit()
}

// CancelBooking sets the booking to cancelled and releases its slot in the
// same transaction. Only pending and confirmed bookings may be cancelled.
func (db *DB) CancelBooking(ctx context.Context, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var slotID int64
	err = tx.QueryRowContext(ctx, `SELECT slot_id FROM bookings WHERE id = ?`, id).Scan(&slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load booking in tx: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status IN (?, ?)`,
		models.StatusCancelled, time.Now(), id, models.StatusPending, models.StatusConfirmed)
	if err != nil {
		return fmt.Errorf("failed to cancel booking in tx: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE slots SET is_booked = 0 WHERE id = ?`, slotID); err != nil {
		return fmt.Errorf("failed to release slot in tx: %w", err)
	}

	return tx.Commit()
}

// UpdateBookingStatusFrom moves a booking between two statuses with a
// compare-and-swap guard. Zero rows affected means the booking was not in the
// expected state.
func (db *DB) UpdateBookingStatusFrom(ctx context.Context, id int64, from, to string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// SetPaymentIntent attaches a payment provider intent to a booking.
func (db *DB) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	query := `UPDATE bookings SET payment_intent_id = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, intentID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set payment intent: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) UpdatePaymentStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET payment_status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetBookingByIntent finds the booking a payment provider callback refers to.
func (db *DB) GetBookingByIntent(ctx context.Context, intentID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_intent_id = ?`
	return scanBooking(db.QueryRowContext(ctx, query, intentID))
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(db.QueryRowContext(ctx, query, id))
}

// GetUserBookings returns a customer's bookings, newest first.
func (db *DB) GetUserBookings(ctx context.Context, userID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	return db.queryBookings(ctx, query, userID)
}

func (db *DB) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return db.queryBookings(ctx, query)
}

// GetBookingsByDateRange returns bookings whose creation date falls in the
// inclusive range, ordered oldest first. Used by reporting.
func (db *DB) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE date(created_at) >= ? AND date(created_at) <= ?
              ORDER BY created_at ASC`
	return db.queryBookings(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// FindOverdueBookings returns ids of pending/confirmed bookings whose slot
// started before the cutoff. The sweeper cancels them one by one so a single
// bad row cannot wedge the whole run.
func (db *DB) FindOverdueBookings(ctx context.Context, cutoff time.Time) ([]int64, error) {
	query := `SELECT b.id FROM bookings b
              JOIN slots s ON s.id = b.slot_id
              WHERE b.status IN (?, ?)
                AND datetime(s.date || ' ' || s.start_time) < datetime(?)`
	rows, err := db.QueryContext(ctx, query,
		models.StatusPending, models.StatusConfirmed,
		cutoff.Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue bookings: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan booking id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
