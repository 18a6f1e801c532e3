package auth

import (
	"context"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

// ContextKeySession is the key for the operator session in request context
const ContextKeySession ContextKey = "cmsSession"

func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ContextKeySession, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ContextKeySession).(Session)
	return s, ok
}
