package keys

import (
	"context"

	"github.com/davbox/davboxd/entities"
	"github.com/sirupsen/logrus"
)

type contextKey int

const (
	// userKey is the key to use when storing an entities.User into a context.
	userKey contextKey = iota

	// logKey is the key to use when storing a *logrus.Entry into a context.
	logKey

	// traceIDKey is the key to use when storing a trace identifier into a context.
	traceIDKey
)

// SetUser stores an authenticated user into the context.
func SetUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(userKey).(*entities.User)
	return user, ok
}

// MustGetUser retrieves the authenticated user from the context and
// panics if it is not there. Handlers run behind the authentication
// middleware so the user is always set.
func MustGetUser(ctx context.Context) *entities.User {
	return ctx.Value(userKey).(*entities.User)
}

// SetLog stores a request-scoped logger into the context.
func SetLog(ctx context.Context, log *logrus.Entry) context.Context {
	return context.WithValue(ctx, logKey, log)
}

// GetLog retrieves the request-scoped logger from the context.
func GetLog(ctx context.Context) (*logrus.Entry, bool) {
	log, ok := ctx.Value(logKey).(*logrus.Entry)
	return log, ok
}

// MustGetLog retrieves the request-scoped logger from the context and
// panics if it is not there.
func MustGetLog(ctx context.Context) *logrus.Entry {
	return ctx.Value(logKey).(*logrus.Entry)
}

// SetTraceID stores a trace identifier into the context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the trace identifier from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceIDKey).(string)
	return traceID, ok
}

// MustGetTraceID retrieves the trace identifier from the context and
// panics if it is not there.
func MustGetTraceID(ctx context.Context) string {
	return ctx.Value(traceIDKey).(string)
}
