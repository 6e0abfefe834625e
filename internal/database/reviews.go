package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"washbay/internal/models"
)

const reviewColumns = `id, booking_id, user_id, service_id, rating, comment, created_at`

func scanReview(row interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	var comment sql.NullString
	err := row.Scan(&r.ID, &r.BookingID, &r.UserID, &r.ServiceID, &r.Rating, &comment, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan review: %w", err)
	}
	r.Comment = comment.String
	return &r, nil
}

// CreateReview stores one review per booking, the UNIQUE index enforces it.
func (db *DB) CreateReview(ctx context.Context, review *models.Review) error {
	query := `INSERT INTO reviews (booking_id, user_id, service_id, rating, comment, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		review.BookingID, review.UserID, review.ServiceID, review.Rating, review.Comment, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrReviewExists
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	review.ID = id
	review.CreatedAt = now
	return nil
}

func (db *DB) GetServiceReviews(ctx context.Context, serviceID int64) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE service_id = ? ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (db *DB) GetAllReviews(ctx context.Context) ([]*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// GetServiceRating returns the average rating and review count for a service.
func (db *DB) GetServiceRating(ctx context.Context, serviceID int64) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	query := `SELECT AVG(rating), COUNT(*) FROM reviews WHERE service_id = ?`
	if err := db.QueryRowContext(ctx, query, serviceID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to get service rating: %w", err)
	}
	return avg.Float64, count, nil
}
