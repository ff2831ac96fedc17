package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	orgIDKey     ctxKey = "org_id"
	requestIDKey ctxKey = "request_id"
)

// WithOrgID stores the organization ID in the context. Organization scoping
// is the authorization boundary for every service call: the hosting platform
// authenticates the caller and injects the org before invoking the core.
func WithOrgID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, orgIDKey, id)
}

// OrgIDFromCtx extracts the organization ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func OrgIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(orgIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
