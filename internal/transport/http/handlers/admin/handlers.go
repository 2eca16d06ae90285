package adminhandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"staffbook/internal/domain/employee"
	"staffbook/internal/platform/metrics"
	"staffbook/internal/transport/http/api"
	"staffbook/internal/transport/http/middleware"
	"staffbook/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Metrics *metrics.Collector
}

func NewHandler(service *employee.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleDirectory)
	r.Delete("/employees/{employeeID}", h.handleDelete)
	r.Post("/employees/delete", h.handleBulkDelete)
	r.Post("/admin/password", h.handleChangeAdminPassword)
	r.Post("/employees/{employeeID}/password", h.handleSetEmployeePassword)
	r.Get("/admin/metrics", h.handleMetrics)
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	session, ok := middleware.GetSession(r.Context())
	if !ok || !session.IsAdmin() {
		api.Fail(w, http.StatusForbidden, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// handleDirectory serves the searchable non-admin listing. The seeded admin
// record never appears, whatever the search term.
func (h *Handler) handleDirectory(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	employees, err := h.Service.Directory(r.Context(), search)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "directory_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"employees": employees,
		"search":    search,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Service.Delete(r.Context(), employeeID); err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	api.Success(w, map[string]any{
		"message": fmt.Sprintf("Employee %s deleted.", employeeID),
	}, middleware.GetRequestID(r.Context()))
}

type bulkDeleteRequest struct {
	SelectedIDs []string `json:"selectedIds"`
}

func (h *Handler) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var payload bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.SelectedIDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "validation_error", "No employees selected.", middleware.GetRequestID(r.Context()))
		return
	}

	deleted, err := h.Service.BulkDelete(r.Context(), payload.SelectedIDs)
	if err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	api.Success(w, map[string]any{
		"message": fmt.Sprintf("%d employee(s) deleted.", deleted),
		"deleted": deleted,
	}, middleware.GetRequestID(r.Context()))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) handleChangeAdminPassword(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.ChangeAdminPassword(r.Context(), payload.CurrentPassword, payload.NewPassword, payload.ConfirmPassword); err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	api.Message(w, "Password updated successfully.", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetEmployeePassword(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if err := h.Service.SetEmployeePassword(r.Context(), employeeID, payload.NewPassword, payload.ConfirmPassword); err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	api.Message(w, "Password updated successfully.", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	if h.Metrics == nil {
		api.Fail(w, http.StatusNotFound, "metrics_disabled", "metrics collection is disabled", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}
