package database

import (
	"context"
	"testing"
	"time"

	"washbay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_OnePerBooking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	svc := createTestService(t, db, 25)
	user := createTestUser(t, db, "user@test.com")
	slot := createTestSlot(t, db, svc.ID, time.Now().AddDate(0, 0, 1), "10:00", "10:30")
	booking := newTestBooking(user.ID, svc.ID, slot.ID, svc.Price)
	require.NoError(t, db.CreateBookingWithSlot(ctx, booking))

	review := &models.Review{
		UserID:    user.ID,
		ServiceID: svc.ID,
		BookingID: booking.ID,
		Rating:    5,
		Comment:   "spotless",
	}
	require.NoError(t, db.CreateReview(ctx, review))
	assert.NotZero(t, review.ID)

	second := &models.Review{UserID: user.ID, ServiceID: svc.ID, BookingID: booking.ID, Rating: 1}
	assert.ErrorIs(t, db.CreateReview(ctx, second), ErrReviewExists)
}

func TestGetServiceRating(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	svc := createTestService(t, db, 25)
	user := createTestUser(t, db, "user@test.com")
	date := time.Now().AddDate(0, 0, 1)

	ratings := []int{5, 3}
	for i, rating := range ratings {
		start := time.Date(2000, 1, 1, 10+i, 0, 0, 0, time.UTC)
		slot := createTestSlot(t, db, svc.ID, date, start.Format("15:04"), start.Add(30*time.Minute).Format("15:04"))
		booking := newTestBooking(user.ID, svc.ID, slot.ID, svc.Price)
		require.NoError(t, db.CreateBookingWithSlot(ctx, booking))
		require.NoError(t, db.CreateReview(ctx, &models.Review{
			UserID: user.ID, ServiceID: svc.ID, BookingID: booking.ID, Rating: rating,
		}))
	}

	avg, count, err := db.GetServiceRating(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 2, count)

	reviews, err := db.GetServiceReviews(ctx, svc.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	// Service with no reviews
	avg, count, err = db.GetServiceRating(ctx, 9999)
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, count)
}
