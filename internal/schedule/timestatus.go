package schedule

import "time"

// TimeStatus is the presentation state of a booking relative to wall-clock
// time. It is derived on read and never persisted.
type TimeStatus string

const (
	TimeStatusNone       TimeStatus = "none"
	TimeStatusCountdown  TimeStatus = "countdown"
	TimeStatusLate       TimeStatus = "late"
	TimeStatusAutoCancel TimeStatus = "auto_cancel"
)

const (
	// CountdownWindow is how far before the slot start the countdown shows.
	CountdownWindow = 30 * time.Minute
	// LateGrace is how long after the slot start a booking counts as late
	// before it becomes an auto-cancel candidate.
	LateGrace = 15 * time.Minute
)

// Status derives the time status for a slot starting at the given instant.
// Boundaries are inclusive on the far edge: exactly 30 minutes ahead is still
// countdown, exactly 15 minutes past is still late, and exactly at the start
// no status applies.
func Status(startsAt, now time.Time) TimeStatus {
	until := startsAt.Sub(now)
	switch {
	case until > 0 && until <= CountdownWindow:
		return TimeStatusCountdown
	case until < 0 && -until <= LateGrace:
		return TimeStatusLate
	case until < 0:
		return TimeStatusAutoCancel
	default:
		return TimeStatusNone
	}
}

// StatusFor combines a slot date with its "15:04" start time and derives the
// status. Malformed times yield TimeStatusNone.
func StatusFor(date time.Time, startTime string, now time.Time) TimeStatus {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return TimeStatusNone
	}
	startsAt := time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
	return Status(startsAt, now)
}
