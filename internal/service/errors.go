package service

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrForbidden       = errors.New("forbidden")
	ErrBookingNotDone  = errors.New("booking is not completed")
	ErrNotCardBooking  = errors.New("booking is not paid by card")
	ErrSlotInPast      = errors.New("slot is in the past")
	ErrTooFarAhead     = errors.New("slot is too far ahead")
	ErrSlotLocked      = errors.New("slot is being booked by someone else")
	ErrInvalidCreds    = errors.New("invalid email or password")
)
