package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffbook/internal/domain/auth"
	"staffbook/internal/domain/employee"
	"staffbook/internal/transport/http/api"
	"staffbook/internal/transport/http/middleware"
	"staffbook/internal/transport/http/shared"
)

// Client-side landing points returned by the dashboard decision and the
// login/register flows.
const (
	NextLogin           = "login"
	NextCompleteProfile = "complete_profile"
	NextEmployeeDetail  = "employee_detail"
	NextAdminDashboard  = "admin_dashboard"
)

type Handler struct {
	Service    *employee.Service
	Secret     string
	SessionTTL time.Duration
}

func NewHandler(service *employee.Service, secret string, sessionTTL time.Duration) *Handler {
	return &Handler{Service: service, Secret: secret, SessionTTL: sessionTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/logout", h.handleLogout)
	r.Get("/dashboard", h.handleDashboard)
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	Passcode   string `json:"passcode"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.Register(r.Context(), payload.Name, payload.Phone, payload.Password)
	if err != nil {
		shared.FailDomainError(w, middleware.GetRequestID(r.Context()), err)
		return
	}

	if err := h.startSession(w, auth.Claims{Role: employee.RoleUser, MongoID: emp.ID.Hex()}); err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]any{
		"message": "Registration successful.",
		"next":    NextCompleteProfile,
		"user":    map[string]string{"id": emp.ID.Hex(), "name": emp.Name, "phone": emp.Phone},
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	switch payload.Role {
	case employee.RoleAdmin:
		if _, err := h.Service.LoginAdmin(r.Context(), payload.Passcode); err != nil {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "Invalid admin credentials.", middleware.GetRequestID(r.Context()))
			return
		}
		if err := h.startSession(w, auth.Claims{Role: employee.RoleAdmin}); err != nil {
			api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", middleware.GetRequestID(r.Context()))
			return
		}
		// Admins land on the admin dashboard from both login and the
		// dashboard decision endpoint.
		api.Success(w, map[string]any{
			"message": "Admin login successful.",
			"next":    NextAdminDashboard,
			"role":    employee.RoleAdmin,
		}, middleware.GetRequestID(r.Context()))

	case employee.RoleUser:
		emp, err := h.Service.LoginUser(r.Context(), payload.Identifier, payload.Passcode)
		if err != nil {
			var validation *employee.ValidationError
			if errors.As(err, &validation) {
				api.Fail(w, http.StatusBadRequest, "validation_error", validation.Message, middleware.GetRequestID(r.Context()))
				return
			}
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "Invalid user credentials.", middleware.GetRequestID(r.Context()))
			return
		}
		if err := h.startSession(w, auth.Claims{Role: employee.RoleUser, MongoID: emp.ID.Hex(), EmployeeID: emp.EmployeeID}); err != nil {
			api.Fail(w, http.StatusInternalServerError, "session_error", "failed to start session", middleware.GetRequestID(r.Context()))
			return
		}
		next := NextEmployeeDetail
		if !emp.DetailsCompleted {
			next = NextCompleteProfile
		}
		api.Success(w, map[string]any{
			"message": "Login successful.",
			"next":    next,
			"role":    employee.RoleUser,
			"user":    map[string]string{"id": emp.ID.Hex(), "employeeId": emp.EmployeeID, "name": emp.Name},
		}, middleware.GetRequestID(r.Context()))

	default:
		api.Fail(w, http.StatusBadRequest, "invalid_role", "Invalid role selected.", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	api.Success(w, map[string]any{
		"message": "You have been logged out.",
		"next":    NextLogin,
	}, middleware.GetRequestID(r.Context()))
}

// handleDashboard reproduces the landing decision: admins go straight to the
// admin dashboard, users are routed by profile state, everyone else logs in.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Success(w, map[string]any{"next": NextLogin}, middleware.GetRequestID(r.Context()))
		return
	}

	if session.IsAdmin() {
		api.Success(w, map[string]any{"next": NextAdminDashboard, "role": employee.RoleAdmin}, middleware.GetRequestID(r.Context()))
		return
	}

	if session.IsUser() {
		ref := session.EmployeeID
		if ref == "" {
			ref = session.MongoID
		}
		emp, err := h.Service.Store.FindByRef(r.Context(), ref)
		if err != nil {
			middleware.ClearSessionCookie(w)
			api.Success(w, map[string]any{
				"message": "Your session has expired. Please log in again.",
				"next":    NextLogin,
			}, middleware.GetRequestID(r.Context()))
			return
		}
		next := NextEmployeeDetail
		if !emp.DetailsCompleted {
			next = NextCompleteProfile
		}
		api.Success(w, map[string]any{"next": next, "role": employee.RoleUser}, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"next": NextLogin}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) startSession(w http.ResponseWriter, claims auth.Claims) error {
	token, err := auth.GenerateToken(h.Secret, claims, h.SessionTTL)
	if err != nil {
		return err
	}
	csrfToken, err := middleware.NewCSRFToken()
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, token, csrfToken, h.SessionTTL)
	return nil
}
