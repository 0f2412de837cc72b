// Package auth provides owner identity for request handling. The backend
// currently runs in single-user mode: a middleware stamps every request with
// the placeholder owner, and services read it back from the context. When
// real authentication lands, only the middleware changes.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// OwnerKey is the context key for the authenticated owner's ID.
const OwnerKey contextKey = "owner"

// PlaceholderOwnerID is the single-user owner every request runs as until
// real authentication exists. It is seeded by the initial migration.
var PlaceholderOwnerID = uuid.MustParse("00000000-0000-0000-0000-000000000000")

// SetOwnerID stores the owner's ID in the context.
func SetOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, OwnerKey, ownerID)
}

// GetOwnerID retrieves the owner's ID from the context.
// Returns uuid.Nil and false if not present.
func GetOwnerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(OwnerKey).(uuid.UUID)
	return id, ok
}

// RequireOwnerID extracts the owner's ID from the context and returns an
// error if it is missing. Use this when the operation cannot proceed
// anonymously.
func RequireOwnerID(ctx context.Context) (uuid.UUID, error) {
	id, ok := GetOwnerID(ctx)
	if !ok {
		return uuid.Nil, fmt.Errorf("owner ID not found in context")
	}
	return id, nil
}

// Middleware stamps every request with the given owner ID.
func Middleware(ownerID uuid.UUID) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			next(w, r.WithContext(SetOwnerID(r.Context(), ownerID)))
		}
	}
}
