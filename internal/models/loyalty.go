package models

import "time"

// LoyaltyTransaction records points earned or spent by a customer. Points are
// awarded only when a booking completes, so cancellations never need a
// reversing entry.
type LoyaltyTransaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookingID int64     `json:"booking_id,omitempty"`
	Points    int64     `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
