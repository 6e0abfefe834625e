package api

import (
	"net/http"

	"washbay/internal/models"
	"washbay/internal/service"
)

// bookingResponse wraps a booking with its derived time status.
type bookingResponse struct {
	*models.Booking
	TimeStatus string `json:"time_status"`
}

func (s *Server) bookingView(r *http.Request, b *models.Booking) bookingResponse {
	status, err := s.bookings.TimeStatus(r.Context(), b)
	if err != nil {
		status = "none"
	}
	return bookingResponse{Booking: b, TimeStatus: string(status)}
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req service.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.bookingView(r, booking))
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	bookings, err := s.bookings.List(r.Context(), claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, s.bookingView(r, b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": views})
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := s.bookings.Get(r.Context(), id, claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bookingView(r, booking))
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := s.bookings.Cancel(r.Context(), id, claims.UserID, claims.Role == models.RoleAdmin); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": models.StatusCancelled})
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bookingView(r, booking))
}

func (s *Server) handleSetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.SetPaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bookingView(r, booking))
}

func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := s.bookings.Get(r.Context(), id, claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"booking_id":     booking.ID,
		"payment_method": booking.PaymentMethod,
		"payment_status": booking.PaymentStatus,
	})
}

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req struct {
		BookingID int64 `json:"booking_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	intent, err := s.bookings.CreatePaymentIntent(r.Context(), req.BookingID, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, intent)
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req struct {
		IntentID string `json:"intent_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.IntentID == "" {
		writeError(w, http.StatusBadRequest, "intent_id is required")
		return
	}

	booking, err := s.bookings.ConfirmPayment(r.Context(), req.IntentID, claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.bookingView(r, booking))
}
