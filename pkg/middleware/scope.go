package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/database"
)

// DatabaseScope returns middleware that pins one pooled connection for the
// duration of each request and stores it in the context. Repositories run
// every query of a request on that connection, which is what lets a service
// wrap them all in a single transaction.
func DatabaseScope(db *database.DB, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			scope, err := db.AcquireScope(r.Context())
			if err != nil {
				logger.Error("Failed to acquire database connection", zap.Error(err))
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			defer scope.Close()

			next(w, r.WithContext(database.SetScope(r.Context(), scope)))
		}
	}
}
