package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("service_id")
	if raw == "" {
		reviews, err := s.reviews.ListAll(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
		return
	}

	serviceID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service_id")
		return
	}

	reviews, avg, count, err := s.reviews.ListForService(r.Context(), serviceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":      reviews,
		"rating":       avg,
		"review_count": count,
	})
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req struct {
		BookingID int64  `json:"booking_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	review, err := s.reviews.Create(r.Context(), claims.UserID, req.BookingID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleLoyalty(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	balance, err := s.db.GetLoyaltyBalance(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	history, err := s.db.GetLoyaltyHistory(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"balance": balance,
		"history": history,
	})
}
