package session

import (
	"context"

	"github.com/urlio/urlio-web/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionContextKey contextKey = "session"

// WithSession adds a session snapshot to the context.
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext returns the request's session snapshot.
// It never returns nil; anonymous requests get an empty session.
func FromContext(ctx context.Context) *model.Session {
	s, ok := ctx.Value(sessionContextKey).(*model.Session)
	if !ok || s == nil {
		return &model.Session{}
	}
	return s
}
