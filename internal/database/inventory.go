package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"washbay/internal/models"
)

const inventoryColumns = `id, name, quantity, unit, low_stock_threshold, created_at, updated_at`

func scanInventoryItem(row interface{ Scan(...any) error }) (*models.InventoryItem, error) {
	var it models.InventoryItem
	err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.LowStockThreshold, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan inventory item: %w", err)
	}
	return &it, nil
}

func (db *DB) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	query := `INSERT INTO inventory (name, quantity, unit, low_stock_threshold, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Quantity, item.Unit, item.LowStockThreshold, now, now)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (db *DB) GetInventoryItem(ctx context.Context, id int64) (*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = ?`
	return scanInventoryItem(db.QueryRowContext(ctx, query, id))
}

func (db *DB) GetAllInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory ORDER BY name`
	return db.queryInventory(ctx, query)
}

// GetLowStockItems lists items at or below their threshold.
func (db *DB) GetLowStockItems(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory
              WHERE quantity <= low_stock_threshold ORDER BY name`
	return db.queryInventory(ctx, query)
}

func (db *DB) queryInventory(ctx context.Context, query string, args ...any) ([]*models.InventoryItem, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (db *DB) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	query := `UPDATE inventory SET name = ?, quantity = ?, unit = ?, low_stock_threshold = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		item.Name, item.Quantity, item.Unit, item.LowStockThreshold, time.Now(), item.ID)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustInventoryQuantity applies a signed delta, clamped at zero.
func (db *DB) AdjustInventoryQuantity(ctx context.Context, id int64, delta int64) error {
	query := `UPDATE inventory SET quantity = MAX(0, quantity + ?), updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust inventory quantity: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteInventoryItem(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
