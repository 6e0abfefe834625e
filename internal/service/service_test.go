package service

import (
	"context"
	"io"
	"testing"
	"time"

	"washbay/internal/auth"
	"washbay/internal/database"
	"washbay/internal/events"
	"washbay/internal/models"
	"washbay/internal/payment"
	"washbay/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *database.DB
	bus      *events.EventBus
	provider *payment.FakeProvider
	bookings *BookingService
	users    *UserService
	reviews  *ReviewService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewEventBus()
	provider := payment.NewFakeProvider()
	locker := repository.NewMemoryLockRepository()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &testEnv{
		db:       db,
		bus:      bus,
		provider: provider,
		bookings: NewBookingService(db, locker, provider, bus, &logger, "usd", 0.1, 30),
		users:    NewUserService(db, tokens, 4, &logger),
		reviews:  NewReviewService(db, bus, &logger),
	}
}

func (e *testEnv) createService(t *testing.T, price float64) *models.Service {
	t.Helper()
	svc := &models.Service{
		Name:            "Full wash",
		Price:           price,
		DurationMinutes: 30,
		IsActive:        true,
	}
	require.NoError(t, e.db.CreateService(context.Background(), svc))
	return svc
}

func (e *testEnv) createSlot(t *testing.T, serviceID int64, date time.Time, start, end string) *models.Slot {
	t.Helper()
	slot := &models.Slot{
		ServiceID: serviceID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	require.NoError(t, e.db.CreateSlot(context.Background(), slot))
	return slot
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, e.db.CreateUser(context.Background(), user))
	return user
}

// tomorrow returns tomorrow's date at midnight so slots created on it are
// always in the future.
func tomorrow() time.Time {
	t := time.Now().AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
