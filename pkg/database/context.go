package database

import (
	"context"
)

type contextKey string

// ScopeKey is the context key for storing the request-scoped database connection.
const ScopeKey contextKey = "dbScope"

// GetScope retrieves the request-scoped database connection from context.
// Returns nil and false if not present.
func GetScope(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(ScopeKey).(*Scope)
	return scope, ok
}

// SetScope stores the request-scoped database connection in context.
func SetScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}
