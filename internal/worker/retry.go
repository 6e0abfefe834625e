package worker

import "time"

// queryBackoff paces retries of the overdue-bookings query. Delays double per
// attempt and are capped so a flapping database cannot stall a sweep past its
// own interval.
type queryBackoff struct {
	attempts int
	base     time.Duration
	limit    time.Duration
}

func sweeperBackoff() queryBackoff {
	return queryBackoff{attempts: 3, base: 2 * time.Second, limit: 30 * time.Second}
}

// delay returns the pause before the given attempt, 1-based. Out-of-range
// attempts get the base delay.
func (b queryBackoff) delay(attempt int) time.Duration {
	d := b.base
	if d <= 0 {
		d = time.Second
	}
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.limit > 0 && d >= b.limit {
			return b.limit
		}
	}
	return d
}
