package worker

import (
	"context"
	"errors"
	"time"

	"washbay/internal/database"
	"washbay/internal/events"
	"washbay/internal/metrics"

	"github.com/rs/zerolog"
)

// Sweeper auto-cancels bookings whose slot start has passed the grace period
// while they were still waiting for the customer. Cancelling releases the
// slot, so the capacity goes back on sale.
type Sweeper struct {
	db       *database.DB
	bus      *events.EventBus
	logger   *zerolog.Logger
	interval time.Duration
	grace    time.Duration
	retry    queryBackoff
}

func NewSweeper(db *database.DB, bus *events.EventBus, logger *zerolog.Logger, interval, grace time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if grace <= 0 {
		grace = 15 * time.Minute
	}
	return &Sweeper{
		db:       db,
		bus:      bus,
		logger:   logger,
		interval: interval,
		grace:    grace,
		retry:    sweeperBackoff(),
	}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("grace", s.grace).
		Msg("auto-cancel sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("auto-cancel sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error().Err(err).Msg("sweep failed")
			}
		}
	}
}

// SweepOnce cancels every overdue booking and returns how many were swept.
// Each booking is cancelled in its own transaction; one failure does not stop
// the rest.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.grace)

	ids, err := s.findWithRetry(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, id := range ids {
		err := s.db.CancelBooking(ctx, id)
		switch {
		case err == nil:
			swept++
			metrics.IncBookingCancelled("sweeper")
			if perr := s.bus.PublishJSON(events.EventBookingCancelled, &events.BookingEventPayload{
				BookingID:   id,
				Status:      "cancelled",
				CancelledBy: "sweeper",
			}); perr != nil {
				s.logger.Warn().Err(perr).Int64("booking_id", id).Msg("failed to publish sweep event")
			}
			s.logger.Info().Int64("booking_id", id).Msg("booking auto-cancelled")
		case errors.Is(err, database.ErrInvalidTransition), errors.Is(err, database.ErrNotFound):
			// Someone beat us to it between the query and the cancel.
		default:
			s.logger.Error().Err(err).Int64("booking_id", id).Msg("failed to auto-cancel booking")
		}
	}

	if swept > 0 {
		metrics.AddSweepCancelled(swept)
	}
	return swept, nil
}

func (s *Sweeper) findWithRetry(ctx context.Context, cutoff time.Time) ([]int64, error) {
	var lastErr error
	for attempt := 1; attempt <= s.retry.attempts; attempt++ {
		ids, err := s.db.FindOverdueBookings(ctx, cutoff)
		if err == nil {
			return ids, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retry.delay(attempt)):
		}
	}
	return nil, lastErr
}
