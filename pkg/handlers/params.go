package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/auth"
)

// RequestMiddleware wraps a handler with per-request concerns (owner
// identity, database scope). Composed in main and passed to RegisterRoutes.
type RequestMiddleware func(http.HandlerFunc) http.HandlerFunc

// ParseContactID extracts and validates the contact ID from the request path.
// Returns the parsed UUID and true on success, or uuid.Nil and false on error
// (after writing an error response).
// Expects path parameter: cid
func ParseContactID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "cid", "invalid_contact_id", "Invalid contact ID format", logger)
}

// ParseInteractionID extracts and validates the interaction ID from the
// request path. Returns the parsed UUID and true on success, or uuid.Nil and
// false on error (after writing an error response).
// Expects path parameter: iid
func ParseInteractionID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "iid", "invalid_interaction_id", "Invalid interaction ID format", logger)
}

// requireOwner extracts the owner ID injected by the auth middleware.
// Writes a 401 response and returns false when it is missing.
func requireOwner(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	ownerID, ok := auth.GetOwnerID(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "No owner identity on request"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return ownerID, true
}

// parseUUID is the internal helper that does the actual parsing work.
func parseUUID(w http.ResponseWriter, r *http.Request, pathParam, errorCode, errorMessage string, logger *zap.Logger) (uuid.UUID, bool) {
	idStr := r.PathValue(pathParam)
	id, err := uuid.Parse(idStr)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, errorCode, errorMessage); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}
