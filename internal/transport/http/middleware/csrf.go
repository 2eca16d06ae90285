package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"staffbook/internal/transport/http/api"
)

// CSRFHeader is the request header that must echo the CSRF cookie on every
// state-changing request.
const CSRFHeader = "X-CSRF-Token"

// NewCSRFToken returns a fresh random double-submit token.
func NewCSRFToken() (string, error) {
	buff := make([]byte, 32)
	if _, err := rand.Read(buff); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buff), nil
}

// CSRF enforces the double-submit check on mutating methods and makes sure
// anonymous callers get a token cookie to submit with. A failed check is
// reported generically and aborts before any handler runs.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CSRFCookie)
		if err != nil || cookie.Value == "" {
			token, tokenErr := NewCSRFToken()
			if tokenErr == nil {
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: false,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if mutating(r.Method) {
				api.Fail(w, http.StatusBadRequest, "invalid_submission", "Invalid or missing CSRF token.", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if mutating(r.Method) {
			header := r.Header.Get(CSRFHeader)
			if header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
				api.Fail(w, http.StatusBadRequest, "invalid_submission", "Invalid or missing CSRF token.", GetRequestID(r.Context()))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
