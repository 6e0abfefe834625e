package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"washbay/internal/auth"
	"washbay/internal/database"
	"washbay/internal/payment"
	"washbay/internal/service"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain sentinels onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email is already registered")
	case errors.Is(err, database.ErrSlotTaken), errors.Is(err, service.ErrSlotLocked):
		writeError(w, http.StatusConflict, "slot is already booked")
	case errors.Is(err, database.ErrSlotBooked):
		writeError(w, http.StatusConflict, "slot has a booking")
	case errors.Is(err, database.ErrSlotOverlap):
		writeError(w, http.StatusConflict, "slot overlaps an existing slot")
	case errors.Is(err, database.ErrReviewExists):
		writeError(w, http.StatusConflict, "booking is already reviewed")
	case errors.Is(err, database.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "status transition is not allowed")
	case errors.Is(err, database.ErrServiceInactive):
		writeError(w, http.StatusUnprocessableEntity, "service is not active")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSlotInPast):
		writeError(w, http.StatusUnprocessableEntity, "slot is in the past")
	case errors.Is(err, service.ErrTooFarAhead):
		writeError(w, http.StatusUnprocessableEntity, "slot is too far ahead")
	case errors.Is(err, service.ErrBookingNotDone):
		writeError(w, http.StatusUnprocessableEntity, "booking is not completed")
	case errors.Is(err, service.ErrNotCardBooking):
		writeError(w, http.StatusUnprocessableEntity, "booking is not paid by card")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidCreds):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		writeError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, payment.ErrDeclined):
		writeError(w, http.StatusPaymentRequired, "payment declined")
	case errors.Is(err, payment.ErrIntentNotFound):
		writeError(w, http.StatusNotFound, "payment intent not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
