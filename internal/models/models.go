package models

import "time"

// SalesSummary aggregates booking rows for analytics and exports.
type SalesSummary struct {
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	TotalBookings     int64     `json:"total_bookings"`
	CompletedBookings int64     `json:"completed_bookings"`
	TotalRevenue      float64   `json:"total_revenue"`
	CompletedRevenue  float64   `json:"completed_revenue"`
	AverageOrderValue float64   `json:"average_order_value"`
}

// SlotAvailability describes free capacity for a service on one date.
type SlotAvailability struct {
	ServiceID int64     `json:"service_id"`
	Date      time.Time `json:"date"`
	Free      int64     `json:"free"`
	Total     int64     `json:"total"`
}
