// Package requestctx carries the per-request values staffbook threads
// through context: the request id echoed in every response envelope and the
// authenticated session, when the caller has one.
package requestctx

import (
	"context"

	"staffbook/internal/domain/auth"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	sessionKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithSession stores the parsed session claims for downstream role checks.
func WithSession(ctx context.Context, session auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession reports the session attached by the session middleware. The
// second return is false for anonymous requests.
func GetSession(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey).(auth.Session)
	return session, ok
}
