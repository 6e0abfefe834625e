package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"washbay/internal/models"
)

const staffColumns = `id, name, role, phone, email, is_active, created_at, updated_at`

func scanStaff(row interface{ Scan(...any) error }) (*models.StaffMember, error) {
	var s models.StaffMember
	var phone, email sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.Role, &phone, &email, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan staff member: %w", err)
	}
	s.Phone = phone.String
	s.Email = email.String
	return &s, nil
}

func (db *DB) CreateStaff(ctx context.Context, staff *models.StaffMember) error {
	query := `INSERT INTO staff (name, role, phone, email, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		staff.Name, staff.Role, staff.Phone, staff.Email, staff.IsActive, now, now)
	if err != nil {
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	staff.ID = id
	staff.CreatedAt = now
	staff.UpdatedAt = now
	return nil
}

func (db *DB) GetStaff(ctx context.Context, id int64) (*models.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = ?`
	return scanStaff(db.QueryRowContext(ctx, query, id))
}

func (db *DB) GetAllStaff(ctx context.Context) ([]*models.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	defer rows.Close()

	var list []*models.StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (db *DB) UpdateStaff(ctx context.Context, staff *models.StaffMember) error {
	query := `UPDATE staff SET name = ?, role = ?, phone = ?, email = ?, is_active = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		staff.Name, staff.Role, staff.Phone, staff.Email, staff.IsActive, time.Now(), staff.ID)
	if err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteStaff(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
