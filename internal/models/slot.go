package models

import "time"

// Slot is a bookable time window for a service. IsBooked must be true exactly
// when one non-cancelled booking references the slot.
type Slot struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"service_id"`
	Date      time.Time `json:"date"`       // calendar day, midnight local
	StartTime string    `json:"start_time"` // "15:04"
	EndTime   string    `json:"end_time"`   // "15:04"
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}

// StartsAt combines the slot date and start time into a single instant.
func (s *Slot) StartsAt() time.Time {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return s.Date
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, s.Date.Location())
}
