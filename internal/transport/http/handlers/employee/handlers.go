package employeehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffbook/internal/domain/auth"
	"staffbook/internal/domain/employee"
	"staffbook/internal/transport/http/api"
	"staffbook/internal/transport/http/middleware"
	"staffbook/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleGetProfile)
	r.Post("/profile", h.handleCompleteProfile)
	r.Get("/profile/{ref}", h.handleGetProfile)
	r.Post("/profile/{ref}", h.handleCompleteProfile)

	r.Get("/employee", h.handleSelfDetail)
	r.Get("/employees/{employeeID}", h.handleAdminDetail)
}

// resolveTarget loads the record a profile request refers to: admins name a
// record explicitly, users always act on their own.
func (h *Handler) resolveTarget(r *http.Request, session auth.Session) (*employee.Employee, bool) {
	ref := chi.URLParam(r, "ref")
	switch {
	case session.IsAdmin() && ref != "":
		emp, err := h.Service.Store.FindByRef(r.Context(), ref)
		if err != nil {
			return nil, false
		}
		return emp, true
	case session.IsUser() && ref == "":
		emp, err := h.Service.Store.FindByRef(r.Context(), session.MongoID)
		if err != nil {
			return nil, false
		}
		return emp, true
	default:
		return nil, false
	}
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	target, ok := h.resolveTarget(r, session)
	if !ok {
		if chi.URLParam(r, "ref") != "" && session.IsAdmin() {
			api.Fail(w, http.StatusNotFound, "not_found", "Employee not found.", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusForbidden, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	submitted := target.DetailsCompleted
	api.Success(w, map[string]any{
		"employee":         employee.Normalize(target),
		"readonly":         !session.IsAdmin() && submitted,
		"showSubmit":       !submitted || session.IsAdmin(),
		"showLogout":       session.IsUser() && submitted,
		"showAdminActions": session.IsAdmin() && submitted,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompleteProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	target, ok := h.resolveTarget(r, session)
	if !ok {
		if chi.URLParam(r, "ref") != "" && session.IsAdmin() {
			api.Fail(w, http.StatusNotFound, "not_found", "Employee not found.", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusForbidden, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	var sub employee.ProfileSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.CompleteProfile(r.Context(), target, sub, session.IsUser())
	if err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	message := "Profile submitted. You cannot edit it further. Please contact admin for any changes."
	if session.IsAdmin() {
		message = "Changes saved successfully."
	}
	api.Success(w, map[string]any{
		"message":  message,
		"employee": employee.Normalize(updated),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSelfDetail(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok || !session.IsUser() {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.Store.FindByRef(r.Context(), session.MongoID)
	if err != nil {
		middleware.ClearSessionCookie(w)
		api.Fail(w, http.StatusUnauthorized, "session_expired", "Your session has expired. Please log in again.", middleware.GetRequestID(r.Context()))
		return
	}
	if !emp.DetailsCompleted {
		api.Fail(w, http.StatusConflict, "profile_incomplete", "Please complete your profile first.", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"employee": employee.Normalize(emp)}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdminDetail(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok || !session.IsAdmin() {
		api.Fail(w, http.StatusForbidden, "unauthorized", "Unauthorized access.", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.Store.FindByEmployeeID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	api.Success(w, map[string]any{"employee": employee.Normalize(emp)}, middleware.GetRequestID(r.Context()))
}
