package models

import "time"

type InventoryItem struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Quantity          int64     `json:"quantity"`
	Unit              string    `json:"unit"` // liters, pieces
	LowStockThreshold int64     `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LowStock reports whether the item has fallen to or below its threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}
