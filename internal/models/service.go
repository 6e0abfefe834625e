package models

import "time"

// Service is a wash program offered to customers (exterior wash, detailing
// and so on). Deleting a service only deactivates it; slots and bookings keep
// their references.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        string    `json:"category,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
