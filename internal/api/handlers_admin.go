package api

import (
	"net/http"
	"path/filepath"

	"washbay/internal/export"
	"washbay/internal/models"
	"washbay/internal/service"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.GetAllUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	from, to, err := service.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	analytics, err := s.reports.GetAnalytics(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// handleBackup triggers an out-of-schedule database snapshot.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if s.backups == nil {
		writeError(w, http.StatusServiceUnavailable, "backups are not configured")
		return
	}

	path, err := s.backups.Snapshot(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("manual backup failed")
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": filepath.Base(path)})
}

// handleSalesExport streams the report as an Excel workbook or a PDF,
// depending on ?format.
func (s *Server) handleSalesExport(w http.ResponseWriter, r *http.Request) {
	from, to, err := service.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "excel"
	}
	if format != "excel" && format != "pdf" {
		writeError(w, http.StatusBadRequest, "format must be excel or pdf")
		return
	}

	analytics, err := s.reports.GetAnalytics(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	bookings, err := s.reports.GetBookingsForExport(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch format {
	case "excel":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(from, to, "xlsx")+`"`)
		if err := export.WriteExcel(w, analytics.Summary, analytics.ByService, bookings); err != nil {
			s.logger.Error().Err(err).Msg("excel export failed")
		}
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(from, to, "pdf")+`"`)
		if err := export.WritePDF(w, analytics.Summary, analytics.ByService, bookings, models.DefaultExportRowCap); err != nil {
			s.logger.Error().Err(err).Msg("pdf export failed")
		}
	}
}

type staffRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := s.db.GetAllStaff(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"staff": staff})
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "name and role are required")
		return
	}

	member := &models.StaffMember{
		Name:     req.Name,
		Role:     req.Role,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if err := s.db.CreateStaff(r.Context(), member); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}

	member, err := s.db.GetStaff(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Role != "" {
		member.Role = req.Role
	}
	member.Phone = req.Phone
	member.Email = req.Email
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := s.db.UpdateStaff(r.Context(), member); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	if err := s.db.DeleteStaff(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type inventoryRequest struct {
	Name              string `json:"name"`
	Quantity          int64  `json:"quantity"`
	Unit              string `json:"unit"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := s.db.GetAllInventory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := s.db.GetLowStockItems(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateInventory(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 0 || req.LowStockThreshold < 0 {
		writeError(w, http.StatusBadRequest, "quantities must not be negative")
		return
	}
	if req.Unit == "" {
		req.Unit = "pieces"
	}

	item := &models.InventoryItem{
		Name:              req.Name,
		Quantity:          req.Quantity,
		Unit:              req.Unit,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := s.db.CreateInventoryItem(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleUpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inventory id")
		return
	}

	item, err := s.db.GetInventoryItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.LowStockThreshold < 0 {
		writeError(w, http.StatusBadRequest, "quantities must not be negative")
		return
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	item.Quantity = req.Quantity
	item.LowStockThreshold = req.LowStockThreshold

	if err := s.db.UpdateInventoryItem(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleAdjustInventory(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inventory id")
		return
	}

	var req struct {
		Delta int64 `json:"delta"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.db.AdjustInventoryQuantity(r.Context(), id, req.Delta); err != nil {
		writeServiceError(w, err)
		return
	}

	item, err := s.db.GetInventoryItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid inventory id")
		return
	}
	if err := s.db.DeleteInventoryItem(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
