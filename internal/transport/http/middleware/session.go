package middleware

import (
	"context"
	"net/http"
	"time"

	"staffbook/internal/domain/auth"
	"staffbook/internal/platform/requestctx"
)

// SessionCookie carries the signed session token; CSRFCookie carries the
// matching double-submit token and is readable by the client.
const (
	SessionCookie = "staffbook_session"
	CSRFCookie    = "staffbook_csrf"
)

// Session parses the session cookie into request context. An absent or
// invalid cookie is not an error here; handlers decide what anonymous
// callers may do.
func Session(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestctx.WithSession(r.Context(), auth.Session{
				Role:       claims.Role,
				MongoID:    claims.MongoID,
				EmployeeID: claims.EmployeeID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	return requestctx.GetSession(ctx)
}

// SetSessionCookie installs both the signed session cookie and a fresh CSRF
// token cookie.
func SetSessionCookie(w http.ResponseWriter, token, csrfToken string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    csrfToken,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session at logout; the CSRF cookie is
// reissued for the anonymous login/register forms.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
