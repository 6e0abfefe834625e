package api

import (
	"net/http"
	"strconv"

	"washbay/internal/models"

	"github.com/go-chi/chi/v5"
)

func urlParamID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	var (
		services []*models.Service
		err      error
	)
	// Admins can see deactivated services with ?all=true
	claims, ok := s.optionalClaims(r)
	if r.URL.Query().Get("all") == "true" && ok && claims.Role == models.RoleAdmin {
		services, err = s.db.GetAllServices(r.Context())
	} else {
		services, err = s.db.GetActiveServices(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	svc, err := s.db.GetService(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	avg, count, err := s.db.GetServiceRating(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"service":      svc,
		"rating":       avg,
		"review_count": count,
	})
}

type serviceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Category        string  `json:"category"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

func (r *serviceRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if r.Price < 0 {
		return "price must not be negative"
	}
	if r.DurationMinutes < 0 {
		return "duration_minutes must not be negative"
	}
	return ""
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	svc := &models.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		IsActive:        true,
	}
	if err := s.db.CreateService(r.Context(), svc); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	svc, err := s.db.GetService(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req serviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.DurationMinutes = req.DurationMinutes
	svc.Category = req.Category
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := s.db.UpdateService(r.Context(), svc); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

// handleDeleteService deactivates the service. Existing bookings keep their
// copied name and price.
func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}
	if err := s.db.DeactivateService(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
