package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Scope pins one pooled connection for the duration of a request. Every
// repository call in a request runs on the same connection, so a transaction
// begun on Scope.Conn covers all of them. Owner isolation itself is enforced
// by user_id predicates in each query, not by the connection.
type Scope struct {
	Conn *pgxpool.Conn
}

// Close releases the connection back to the pool. It MUST be called, once,
// when the request is done.
func (s *Scope) Close() {
	if s.Conn == nil {
		return
	}
	s.Conn.Release()
}

// AcquireScope acquires a dedicated connection for one request.
// The returned Scope MUST be closed with defer scope.Close().
func (db *DB) AcquireScope(ctx context.Context) (*Scope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Scope{Conn: conn}, nil
}
