package database

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrSlotTaken         = errors.New("slot already booked")
	ErrSlotBooked        = errors.New("slot has an active booking")
	ErrSlotOverlap       = errors.New("slot overlaps an existing slot")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrReviewExists      = errors.New("booking already reviewed")
	ErrServiceInactive   = errors.New("service is not active")
)
