package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryLockRepository is the in-process fallback used when Redis is disabled
// or unreachable. Single-instance only.
type MemoryLockRepository struct {
	mu         sync.Mutex
	locks      map[int64]memoryLock
	rateLimits sync.Map
}

type memoryLock struct {
	token     string
	expiresAt time.Time
}

func NewMemoryLockRepository() *MemoryLockRepository {
	return &MemoryLockRepository{
		locks: make(map[int64]memoryLock),
	}
}

func (r *MemoryLockRepository) AcquireSlotLock(_ context.Context, slotID int64, ttl time.Duration) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if held, ok := r.locks[slotID]; ok && now.Before(held.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	r.locks[slotID] = memoryLock{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (r *MemoryLockRepository) ReleaseSlotLock(_ context.Context, slotID int64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if held, ok := r.locks[slotID]; ok && held.token == token {
		delete(r.locks, slotID)
	}
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryLockRepository) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(key, entry)
	return entry.count <= limit, nil
}
