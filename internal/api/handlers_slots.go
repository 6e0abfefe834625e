package api

import (
	"net/http"
	"strconv"
	"time"

	"washbay/internal/models"
)

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	var serviceID int64
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid service_id")
			return
		}
		serviceID = id
	}

	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		date = d
	}

	slots, err := s.slots.ListAvailable(r.Context(), serviceID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (s *Server) handleSlotAvailability(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(r.URL.Query().Get("service_id"), 10, 64)
	if err != nil || serviceID <= 0 {
		writeError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	from := time.Now()
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
	}

	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days <= 0 {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
	}

	availability, err := s.slots.Availability(r.Context(), serviceID, from, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"availability": availability})
}

type slotRequest struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	slot := &models.Slot{
		ServiceID: req.ServiceID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.slots.CreateSlot(r.Context(), slot); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

type generateSlotsRequest struct {
	ServiceID int64  `json:"service_id"`
	From      string `json:"from,omitempty"`
	Days      int    `json:"days,omitempty"`
}

func (s *Server) handleGenerateSlots(w http.ResponseWriter, r *http.Request) {
	var req generateSlotsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ServiceID <= 0 {
		writeError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	from := time.Now()
	if req.From != "" {
		var err error
		from, err = time.Parse("2006-01-02", req.From)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
	}

	created, err := s.slots.Generate(r.Context(), req.ServiceID, from, req.Days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"created": created})
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot id")
		return
	}
	if err := s.slots.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
