package exporthandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffbook/internal/domain/employee"
	"staffbook/internal/domain/export"
	"staffbook/internal/platform/metrics"
	"staffbook/internal/transport/http/api"
	"staffbook/internal/transport/http/middleware"
)

type Handler struct {
	Service *employee.Service
	Metrics *metrics.Collector
}

func NewHandler(service *employee.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/export", h.handleExport)
}

type exportRequest struct {
	Type        string   `json:"type"`
	Search      string   `json:"search"`
	SelectedIDs []string `json:"selectedIds"`
}

// handleExport builds the whole file in memory before sending a byte of it;
// the practical data-set size bounds the cost.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok || !session.IsAdmin() {
		api.Fail(w, http.StatusForbidden, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	var payload exportRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Service.ExportSelection(r.Context(), payload.Search, payload.SelectedIDs)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to select employees", middleware.GetRequestID(r.Context()))
		return
	}
	rows := export.BuildRows(employees)

	var buff bytes.Buffer
	var filename, contentType string
	switch payload.Type {
	case "csv":
		filename, contentType = "employees_nested.csv", "text/csv"
		err = export.WriteCSV(&buff, rows)
	case "excel":
		filename, contentType = "employees_nested.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buff, rows)
	case "pdf":
		filename, contentType = "employees_nested.pdf", "application/pdf"
		err = export.WritePDF(&buff, rows)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_export_type", "Invalid export type", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to generate export", middleware.GetRequestID(r.Context()))
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordExport()
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buff.Bytes())
}
