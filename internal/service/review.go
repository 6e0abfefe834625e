package service

import (
	"context"
	"fmt"

	"washbay/internal/database"
	"washbay/internal/events"
	"washbay/internal/models"

	"github.com/rs/zerolog"
)

// ReviewService lets customers rate completed bookings.
type ReviewService struct {
	db     *database.DB
	bus    *events.EventBus
	logger *zerolog.Logger
}

func NewReviewService(db *database.DB, bus *events.EventBus, logger *zerolog.Logger) *ReviewService {
	return &ReviewService{db: db, bus: bus, logger: logger}
}

// Create stores a review for the caller's completed booking. One review per
// booking.
func (s *ReviewService) Create(ctx context.Context, userID, bookingID int64, rating int, comment string) (*models.Review, error) {
	if rating < models.RatingMin || rating > models.RatingMax {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, models.RatingMin, models.RatingMax)
	}

	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.Status != models.StatusCompleted {
		return nil, ErrBookingNotDone
	}

	review := &models.Review{
		UserID:    userID,
		ServiceID: booking.ServiceID,
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.db.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	if err := s.bus.PublishJSON(events.EventReviewCreated, review); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish review event")
	}
	s.logger.Info().Int64("booking_id", bookingID).Int("rating", rating).Msg("review created")
	return review, nil
}

// ListForService returns reviews plus the aggregate rating for a service.
func (s *ReviewService) ListForService(ctx context.Context, serviceID int64) ([]*models.Review, float64, int, error) {
	reviews, err := s.db.GetServiceReviews(ctx, serviceID)
	if err != nil {
		return nil, 0, 0, err
	}
	avg, count, err := s.db.GetServiceRating(ctx, serviceID)
	if err != nil {
		return nil, 0, 0, err
	}
	return reviews, avg, count, nil
}

func (s *ReviewService) ListAll(ctx context.Context) ([]*models.Review, error) {
	return s.db.GetAllReviews(ctx)
}
