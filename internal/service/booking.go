package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washbay/internal/database"
	"washbay/internal/domain"
	"washbay/internal/events"
	"washbay/internal/metrics"
	"washbay/internal/models"
	"washbay/internal/payment"
	"washbay/internal/schedule"

	"github.com/rs/zerolog"
)

// slotLockTTL covers the booking transaction; the conditional slot update in
// the database is the real guarantee, the lock just thins the herd.
const slotLockTTL = 10 * time.Second

// BookingService owns the booking lifecycle: creation, status transitions,
// cancellation and card payments.
type BookingService struct {
	db             *database.DB
	locker         domain.LockRepository
	provider       payment.Provider
	bus            *events.EventBus
	logger         *zerolog.Logger
	currency       string
	pointsPerUnit  float64
	maxAdvanceDays int
}

func NewBookingService(
	db *database.DB,
	locker domain.LockRepository,
	provider payment.Provider,
	bus *events.EventBus,
	logger *zerolog.Logger,
	currency string,
	pointsPerUnit float64,
	maxAdvanceDays int,
) *BookingService {
	return &BookingService{
		db:             db,
		locker:         locker,
		provider:       provider,
		bus:            bus,
		logger:         logger,
		currency:       currency,
		pointsPerUnit:  pointsPerUnit,
		maxAdvanceDays: maxAdvanceDays,
	}
}

// CreateBookingRequest carries everything needed to book a slot.
type CreateBookingRequest struct {
	ServiceID     int64          `json:"service_id"`
	SlotID        int64          `json:"slot_id"`
	Vehicle       models.Vehicle `json:"vehicle"`
	PaymentMethod string         `json:"payment_method"`
}

func (r *CreateBookingRequest) validate() error {
	if r.ServiceID <= 0 || r.SlotID <= 0 {
		return fmt.Errorf("%w: service_id and slot_id are required", ErrValidation)
	}
	if r.PaymentMethod != models.PaymentMethodCash && r.PaymentMethod != models.PaymentMethodCard {
		return fmt.Errorf("%w: payment_method must be cash or card", ErrValidation)
	}
	if r.Vehicle.Type == "" || r.Vehicle.Plate == "" {
		return fmt.Errorf("%w: vehicle type and plate are required", ErrValidation)
	}
	return nil
}

// Create books a slot for the user. The price is copied from the service at
// this moment and never changes afterwards.
func (s *BookingService) Create(ctx context.Context, userID int64, req *CreateBookingRequest) (*models.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	svc, err := s.db.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, database.ErrServiceInactive
	}

	slot, err := s.db.GetSlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.ServiceID != req.ServiceID {
		return nil, fmt.Errorf("%w: slot does not belong to the service", ErrValidation)
	}
	now := time.Now()
	startsAt := slot.StartsAt()
	if !startsAt.After(now) {
		return nil, ErrSlotInPast
	}
	if s.maxAdvanceDays > 0 && startsAt.After(now.AddDate(0, 0, s.maxAdvanceDays)) {
		return nil, ErrTooFarAhead
	}

	token, ok, err := s.locker.AcquireSlotLock(ctx, req.SlotID, slotLockTTL)
	if err != nil {
		s.logger.Warn().Err(err).Int64("slot_id", req.SlotID).Msg("slot lock unavailable, relying on database")
	} else if !ok {
		metrics.IncSlotConflict()
		return nil, ErrSlotLocked
	} else {
		defer func() {
			if rerr := s.locker.ReleaseSlotLock(context.WithoutCancel(ctx), req.SlotID, token); rerr != nil {
				s.logger.Warn().Err(rerr).Int64("slot_id", req.SlotID).Msg("failed to release slot lock")
			}
		}()
	}

	booking := &models.Booking{
		UserID:        userID,
		ServiceID:     svc.ID,
		SlotID:        slot.ID,
		ServiceName:   svc.Name,
		Vehicle:       req.Vehicle,
		TotalAmount:   svc.Price,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
	}
	if err := s.db.CreateBookingWithSlot(ctx, booking); err != nil {
		if errors.Is(err, database.ErrSlotTaken) {
			metrics.IncSlotConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated(booking.PaymentMethod)
	s.publishBookingEvent(events.EventBookingCreated, booking, "")
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("user_id", userID).
		Int64("slot_id", slot.ID).
		Str("payment_method", booking.PaymentMethod).
		Msg("booking created")
	return booking, nil
}

// UpdateStatus moves a booking along the lifecycle. The transition is checked
// against the allowed graph and applied with a guard on the current status, so
// a stale admin panel cannot skip states.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, to string) (*models.Booking, error) {
	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if to == models.StatusCancelled {
		return booking, s.cancel(ctx, booking, "admin")
	}

	if !models.CanTransition(booking.Status, to) {
		return nil, database.ErrInvalidTransition
	}
	if err := s.db.UpdateBookingStatusFrom(ctx, bookingID, booking.Status, to); err != nil {
		return nil, err
	}
	booking.Status = to

	switch to {
	case models.StatusConfirmed:
		s.publishBookingEvent(events.EventBookingConfirmed, booking, "")
	case models.StatusCompleted:
		s.onCompleted(ctx, booking)
	}

	s.logger.Info().Int64("booking_id", bookingID).Str("status", to).Msg("booking status updated")
	return booking, nil
}

// SetPaymentStatus is the admin override for cash settlement and manual
// corrections. Loyalty accrual stays tied to booking completion.
func (s *BookingService) SetPaymentStatus(ctx context.Context, bookingID int64, to string) (*models.Booking, error) {
	switch to {
	case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed:
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, to)
	}

	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == to {
		return booking, nil
	}
	if err := s.db.UpdatePaymentStatus(ctx, bookingID, to); err != nil {
		return nil, err
	}
	booking.PaymentStatus = to
	metrics.IncPayment(to)

	switch to {
	case models.PaymentCompleted:
		s.publishPaymentEvent(events.EventPaymentSucceeded, booking, booking.PaymentIntentID)
	case models.PaymentFailed:
		s.publishPaymentEvent(events.EventPaymentFailed, booking, booking.PaymentIntentID)
	}

	s.logger.Info().Int64("booking_id", bookingID).Str("payment_status", to).Msg("payment status updated")
	return booking, nil
}

// Cancel cancels the booking on behalf of its owner.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID int64, isAdmin bool) error {
	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !isAdmin && booking.UserID != userID {
		return ErrForbidden
	}
	by := "customer"
	if isAdmin {
		by = "admin"
	}
	return s.cancel(ctx, booking, by)
}

func (s *BookingService) cancel(ctx context.Context, booking *models.Booking, by string) error {
	if err := s.db.CancelBooking(ctx, booking.ID); err != nil {
		return err
	}
	booking.Status = models.StatusCancelled
	metrics.IncBookingCancelled(by)
	s.publishBookingEvent(events.EventBookingCancelled, booking, by)
	s.logger.Info().Int64("booking_id", booking.ID).Str("by", by).Msg("booking cancelled")
	return nil
}

// onCompleted settles a cash payment and accrues loyalty points. Points are
// floor(amount * rate) and awarded exactly once, on completion.
func (s *BookingService) onCompleted(ctx context.Context, booking *models.Booking) {
	if booking.PaymentMethod == models.PaymentMethodCash && booking.PaymentStatus == models.PaymentPending {
		if err := s.db.UpdatePaymentStatus(ctx, booking.ID, models.PaymentCompleted); err != nil {
			s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("failed to settle cash payment")
		} else {
			booking.PaymentStatus = models.PaymentCompleted
			metrics.IncPayment(models.PaymentCompleted)
		}
	}

	points := int64(booking.TotalAmount * s.pointsPerUnit)
	if points > 0 {
		tx := &models.LoyaltyTransaction{
			UserID:    booking.UserID,
			BookingID: booking.ID,
			Points:    points,
			Reason:    "booking completed",
		}
		if err := s.db.AddLoyaltyPoints(ctx, tx); err != nil {
			s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("failed to accrue loyalty points")
		}
	}

	s.publishBookingEvent(events.EventBookingCompleted, booking, "")
}

// CreatePaymentIntent starts a card payment for a pending booking.
func (s *BookingService) CreatePaymentIntent(ctx context.Context, bookingID, userID int64) (*payment.Intent, error) {
	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.PaymentMethod != models.PaymentMethodCard {
		return nil, ErrNotCardBooking
	}
	if booking.PaymentStatus == models.PaymentCompleted {
		return nil, fmt.Errorf("%w: booking is already paid", ErrValidation)
	}

	intent, err := s.provider.CreateIntent(ctx, booking.TotalAmount, s.currency)
	if err != nil {
		return nil, err
	}
	if err := s.db.SetPaymentIntent(ctx, booking.ID, intent.ID); err != nil {
		return nil, err
	}
	return intent, nil
}

// ConfirmPayment settles a card payment by its intent. A succeeded payment
// also confirms a still-pending booking.
func (s *BookingService) ConfirmPayment(ctx context.Context, intentID string, userID int64, isAdmin bool) (*models.Booking, error) {
	booking, err := s.db.GetBookingByIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, ErrForbidden
	}

	intent, err := s.provider.ConfirmIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			if uerr := s.db.UpdatePaymentStatus(ctx, booking.ID, models.PaymentFailed); uerr != nil {
				s.logger.Error().Err(uerr).Int64("booking_id", booking.ID).Msg("failed to mark payment failed")
			}
			booking.PaymentStatus = models.PaymentFailed
			metrics.IncPayment(models.PaymentFailed)
			s.publishPaymentEvent(events.EventPaymentFailed, booking, intentID)
		}
		return booking, err
	}

	if err := s.db.UpdatePaymentStatus(ctx, booking.ID, models.PaymentCompleted); err != nil {
		return nil, err
	}
	booking.PaymentStatus = models.PaymentCompleted
	metrics.IncPayment(models.PaymentCompleted)
	s.publishPaymentEvent(events.EventPaymentSucceeded, booking, intent.ID)

	if booking.Status == models.StatusPending {
		if err := s.db.UpdateBookingStatusFrom(ctx, booking.ID, models.StatusPending, models.StatusConfirmed); err == nil {
			booking.Status = models.StatusConfirmed
			s.publishBookingEvent(events.EventBookingConfirmed, booking, "")
		}
	}

	s.logger.Info().Int64("booking_id", booking.ID).Str("intent_id", intentID).Msg("payment confirmed")
	return booking, nil
}

// Get returns a booking, enforcing ownership for non-admin callers.
func (s *BookingService) Get(ctx context.Context, bookingID, userID int64, isAdmin bool) (*models.Booking, error) {
	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// List returns the caller's bookings, or all of them for admins.
func (s *BookingService) List(ctx context.Context, userID int64, isAdmin bool) ([]*models.Booking, error) {
	if isAdmin {
		return s.db.GetAllBookings(ctx)
	}
	return s.db.GetUserBookings(ctx, userID)
}

// TimeStatus classifies the booking against its slot start time: a countdown
// shortly before, late shortly after, auto_cancel once the grace has passed.
func (s *BookingService) TimeStatus(ctx context.Context, booking *models.Booking) (schedule.TimeStatus, error) {
	if models.IsTerminalStatus(booking.Status) || booking.Status == models.StatusInProgress {
		return schedule.TimeStatusNone, nil
	}
	slot, err := s.db.GetSlot(ctx, booking.SlotID)
	if err != nil {
		return schedule.TimeStatusNone, err
	}
	return schedule.Status(slot.StartsAt(), time.Now()), nil
}

func (s *BookingService) publishBookingEvent(eventType string, b *models.Booking, by string) {
	payload := &events.BookingEventPayload{
		BookingID:     b.ID,
		UserID:        b.UserID,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		SlotID:        b.SlotID,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		TotalAmount:   b.TotalAmount,
		CancelledBy:   by,
	}
	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

func (s *BookingService) publishPaymentEvent(eventType string, b *models.Booking, intentID string) {
	payload := &events.PaymentEventPayload{
		BookingID: b.ID,
		IntentID:  intentID,
		Amount:    b.TotalAmount,
		Status:    b.PaymentStatus,
	}
	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
