package models

import "time"

type Vehicle struct {
	Type  string `json:"type"` // sedan, suv, van, motorcycle
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year,omitempty"`
	Plate string `json:"plate"`
}

type Booking struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	ServiceID   int64   `json:"service_id"`
	SlotID      int64   `json:"slot_id"`
	ServiceName string  `json:"service_name"`
	Vehicle     Vehicle `json:"vehicle"`
	// TotalAmount is copied from the service price at booking time and never
	// recomputed afterwards.
	TotalAmount     float64   `json:"total_amount"`
	PaymentMethod   string    `json:"payment_method"` // cash, card
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
