package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"washbay/internal/models"
)

// AddLoyaltyPoints records an accrual. The ledger is append-only, so
// cancellations never touch it.
func (db *DB) AddLoyaltyPoints(ctx context.Context, tx *models.LoyaltyTransaction) error {
	query := `INSERT INTO loyalty_transactions (user_id, booking_id, points, reason, created_at)
              VALUES (?, ?, ?, ?, ?)`
	now := time.Now()
	bookingID := sql.NullInt64{Int64: tx.BookingID, Valid: tx.BookingID != 0}
	result, err := db.ExecContext(ctx, query, tx.UserID, bookingID, tx.Points, tx.Reason, now)
	if err != nil {
		return fmt.Errorf("failed to add loyalty points: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	tx.ID = id
	tx.CreatedAt = now
	return nil
}

// GetLoyaltyBalance sums the ledger for a user.
func (db *DB) GetLoyaltyBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	query := `SELECT COALESCE(SUM(points), 0) FROM loyalty_transactions WHERE user_id = ?`
	if err := db.QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to get loyalty balance: %w", err)
	}
	return balance, nil
}

func (db *DB) GetLoyaltyHistory(ctx context.Context, userID int64) ([]*models.LoyaltyTransaction, error) {
	query := `SELECT id, user_id, booking_id, points, reason, created_at
              FROM loyalty_transactions WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loyalty history: %w", err)
	}
	defer rows.Close()

	var txs []*models.LoyaltyTransaction
	for rows.Next() {
		var t models.LoyaltyTransaction
		var bookingID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.UserID, &bookingID, &t.Points, &t.Reason, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loyalty transaction: %w", err)
		}
		t.BookingID = bookingID.Int64
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
