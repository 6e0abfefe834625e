// Package domain holds the interfaces shared between the service layer and
// its infrastructure.
package domain

import (
	"context"
	"time"
)

// LockRepository guards a slot while a booking request for it is in flight.
// Locks are advisory: the database is still the source of truth, the lock only
// keeps concurrent requests from burning a transaction each.
type LockRepository interface {
	// AcquireSlotLock returns a release token when the lock was taken,
	// or ok=false when someone else holds it.
	AcquireSlotLock(ctx context.Context, slotID int64, ttl time.Duration) (token string, ok bool, err error)
	// ReleaseSlotLock releases only when the token matches the holder.
	ReleaseSlotLock(ctx context.Context, slotID int64, token string) error
	// CheckRateLimit counts a hit against the key and reports whether the
	// caller is still under the limit for the window.
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
