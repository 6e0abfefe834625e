package service

import (
	"context"
	"testing"

	"washbay/internal/database"
	"washbay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) completedBooking(t *testing.T, userID, serviceID int64, start, end string) *models.Booking {
	t.Helper()
	ctx := context.Background()
	slot := e.createSlot(t, serviceID, tomorrow(), start, end)

	booking, err := e.bookings.Create(ctx, userID, newBookingRequest(serviceID, slot.ID, models.PaymentMethodCash))
	require.NoError(t, err)
	for _, status := range []string{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted} {
		_, err = e.bookings.UpdateStatus(ctx, booking.ID, status)
		require.NoError(t, err)
	}
	booking.Status = models.StatusCompleted
	return booking
}

func TestReviewCreate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "driver@example.com")
	svc := env.createService(t, 45.00)
	booking := env.completedBooking(t, user.ID, svc.ID, "10:00", "10:30")

	review, err := env.reviews.Create(ctx, user.ID, booking.ID, 5, "spotless")
	require.NoError(t, err)
	assert.Equal(t, svc.ID, review.ServiceID)

	// One review per booking.
	_, err = env.reviews.Create(ctx, user.ID, booking.ID, 4, "again")
	assert.ErrorIs(t, err, database.ErrReviewExists)
}

func TestReviewCreate_Guards(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	svc := env.createService(t, 45.00)

	slot := env.createSlot(t, svc.ID, tomorrow(), "10:00", "10:30")
	pending, err := env.bookings.Create(ctx, owner.ID, newBookingRequest(svc.ID, slot.ID, models.PaymentMethodCash))
	require.NoError(t, err)

	_, err = env.reviews.Create(ctx, owner.ID, pending.ID, 0, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.reviews.Create(ctx, owner.ID, pending.ID, 6, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.reviews.Create(ctx, stranger.ID, pending.ID, 5, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.reviews.Create(ctx, owner.ID, pending.ID, 5, "")
	assert.ErrorIs(t, err, ErrBookingNotDone)
}

func TestReviewListForService(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first := env.createUser(t, "first@example.com")
	second := env.createUser(t, "second@example.com")
	svc := env.createService(t, 45.00)

	b1 := env.completedBooking(t, first.ID, svc.ID, "10:00", "10:30")
	b2 := env.completedBooking(t, second.ID, svc.ID, "11:00", "11:30")

	_, err := env.reviews.Create(ctx, first.ID, b1.ID, 5, "great")
	require.NoError(t, err)
	_, err = env.reviews.Create(ctx, second.ID, b2.ID, 3, "fine")
	require.NoError(t, err)

	reviews, avg, count, err := env.reviews.ListForService(ctx, svc.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 4.0, avg, 0.001)
}
