package repository

import (
	"context"
	"sync/atomic"
	"time"

	"washbay/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverLockRepository routes to the primary repository until it errors,
// then serves from the fallback and periodically retries the primary.
type FailoverLockRepository struct {
	primary   domain.LockRepository
	fallback  domain.LockRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverLockRepository(primary, fallback domain.LockRepository, logger *zerolog.Logger) *FailoverLockRepository {
	return &FailoverLockRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverLockRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary lock repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

// shouldRetryPrimary allows one probe of the primary per minute while down.
func (r *FailoverLockRepository) shouldRetryPrimary() bool {
	last := time.Unix(0, r.lastCheck.Load())
	return time.Since(last) > time.Minute
}

func (r *FailoverLockRepository) AcquireSlotLock(ctx context.Context, slotID int64, ttl time.Duration) (string, bool, error) {
	if !r.isDown.Load() || r.shouldRetryPrimary() {
		token, ok, err := r.primary.AcquireSlotLock(ctx, slotID, ttl)
		if err == nil {
			r.isDown.Store(false)
			return token, ok, nil
		}
		r.markDown(err)
	}
	return r.fallback.AcquireSlotLock(ctx, slotID, ttl)
}

func (r *FailoverLockRepository) ReleaseSlotLock(ctx context.Context, slotID int64, token string) error {
	if !r.isDown.Load() {
		err := r.primary.ReleaseSlotLock(ctx, slotID, token)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.ReleaseSlotLock(ctx, slotID, token)
}

func (r *FailoverLockRepository) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() || r.shouldRetryPrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
