package auth

import "context"

type contextKey string

const (
	// SessionContextKey is the key used to store the session in the context
	SessionContextKey contextKey = "session"

	// SessionCookieName is the name of the session cookie
	SessionCookieName = "medtranscribe_session"
)

// WithSession stores the session in the context
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// SessionFromContext retrieves the session from the context
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*Session)
	return session, ok
}
