package shared

import (
	"errors"
	"net/http"

	"staffbook/internal/domain/employee"
	"staffbook/internal/transport/http/api"
)

// FailDomainError maps a domain error onto the response envelope. Every
// failure resolves to a response; nothing here is retried or fatal.
func FailDomainError(w http.ResponseWriter, requestID string, err error) {
	var validation *employee.ValidationError
	switch {
	case errors.As(err, &validation):
		api.Fail(w, http.StatusBadRequest, "validation_error", validation.Message, requestID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "Employee not found.", requestID)
	case errors.Is(err, employee.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
	case errors.Is(err, employee.ErrProfileLocked):
		api.Fail(w, http.StatusForbidden, "profile_locked", "Profile already submitted. Please contact admin for any changes.", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", requestID)
	}
}
