package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"washbay/internal/models"
)

const serviceColumns = `id, name, description, price, duration_minutes, category, is_active, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (*models.Service, error) {
	var s models.Service
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes,
		&s.Category, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan service: %w", err)
	}
	return &s, nil
}

func (db *DB) CreateService(ctx context.Context, service *models.Service) error {
	query := `INSERT INTO services (name, description, price, duration_minutes, category, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.Price,
		service.DurationMinutes,
		service.Category,
		service.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	service.ID = id
	service.CreatedAt = now
	service.UpdatedAt = now
	return nil
}

func (db *DB) GetService(ctx context.Context, id int64) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ?`
	return scanService(db.QueryRowContext(ctx, query, id))
}

func (db *DB) GetActiveServices(ctx context.Context) ([]*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE is_active = 1 ORDER BY category, name`
	return db.queryServices(ctx, query)
}

func (db *DB) GetAllServices(ctx context.Context) ([]*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY category, name`
	return db.queryServices(ctx, query)
}

func (db *DB) queryServices(ctx context.Context, query string, args ...any) ([]*models.Service, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (db *DB) UpdateService(ctx context.Context, service *models.Service) error {
	query := `UPDATE services SET name = ?, description = ?, price = ?, duration_minutes = ?,
              category = ?, is_active = ?, updated_at = ? WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		service.Name, service.Description, service.Price, service.DurationMinutes,
		service.Category, service.IsActive, now, service.ID)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	service.UpdatedAt = now
	return nil
}

// DeactivateService soft-deletes a service. Slots and bookings keep their
// references; the service just stops appearing in customer listings.
func (db *DB) DeactivateService(ctx context.Context, id int64) error {
	query := `UPDATE services SET is_active = 0, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate service: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
