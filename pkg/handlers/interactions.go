package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/services"
)

// AnalyzeRequest for POST /api/interactions/analyze
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// InteractionHandler handles interaction HTTP requests: LLM analysis of
// free-form notes, confirmation of reviewed extractions, and CRUD on
// individual interactions.
type InteractionHandler struct {
	extractionService  services.ExtractionService
	interactionService services.InteractionService
	logger             *zap.Logger
}

// NewInteractionHandler creates a new interaction handler.
func NewInteractionHandler(
	extractionService services.ExtractionService,
	interactionService services.InteractionService,
	logger *zap.Logger,
) *InteractionHandler {
	return &InteractionHandler{
		extractionService:  extractionService,
		interactionService: interactionService,
		logger:             logger,
	}
}

// RegisterRoutes registers the interaction handler's routes on the given mux.
func (h *InteractionHandler) RegisterRoutes(mux *http.ServeMux, rm RequestMiddleware) {
	base := "/api/interactions"

	mux.HandleFunc("POST "+base+"/analyze", rm(h.Analyze))
	mux.HandleFunc("POST "+base+"/confirm", rm(h.Confirm))
	mux.HandleFunc("GET "+base+"/{iid}", rm(h.Get))
	mux.HandleFunc("PATCH "+base+"/{iid}", rm(h.Update))
	mux.HandleFunc("DELETE "+base+"/{iid}", rm(h.Delete))
}

// Analyze handles POST /api/interactions/analyze
// Runs LLM extraction over a free-form note. Nothing is persisted; the
// client reviews the result and posts it back to /confirm.
func (h *InteractionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Text must not be empty"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.extractionService.Analyze(r.Context(), req.Text)
	if err != nil {
		h.logger.Error("Failed to analyze interaction text", zap.Error(err))
		if errors.Is(err, apperrors.ErrExtractionUnavailable) {
			if err := ErrorResponse(w, http.StatusServiceUnavailable, "extraction_unavailable", "Extraction service is unavailable"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if err := ErrorResponse(w, http.StatusInternalServerError, "analyze_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Confirm handles POST /api/interactions/confirm
// Persists one reviewed extraction atomically and returns what was created.
func (h *InteractionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}

	var req models.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.Interaction.Notes) == "" || req.Interaction.InteractionDate.IsZero() {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Interaction notes and date are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.interactionService.Confirm(r.Context(), ownerID, &req)
	if err != nil {
		h.logger.Error("Failed to confirm interaction", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "confirm_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/interactions/{iid}
func (h *InteractionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	interactionID, ok := ParseInteractionID(w, r, h.logger)
	if !ok {
		return
	}

	interaction, err := h.interactionService.Get(r.Context(), ownerID, interactionID)
	if err != nil {
		h.writeInteractionError(w, "get_interaction_failed", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, interaction); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/interactions/{iid}
// Only date, notes and location can change; the contact linkage is immutable.
func (h *InteractionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	interactionID, ok := ParseInteractionID(w, r, h.logger)
	if !ok {
		return
	}

	var update models.InteractionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	interaction, err := h.interactionService.Update(r.Context(), ownerID, interactionID, &update)
	if err != nil {
		h.writeInteractionError(w, "update_interaction_failed", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, interaction); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/interactions/{iid}
func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	interactionID, ok := ParseInteractionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.interactionService.Delete(r.Context(), ownerID, interactionID); err != nil {
		h.writeInteractionError(w, "delete_interaction_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeInteractionError maps service errors onto HTTP status codes.
func (h *InteractionHandler) writeInteractionError(w http.ResponseWriter, errorCode string, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		if err := ErrorResponse(w, http.StatusNotFound, "interaction_not_found", "Interaction not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.logger.Error("Interaction request failed", zap.String("error_code", errorCode), zap.Error(err))
	if err := ErrorResponse(w, http.StatusInternalServerError, errorCode, err.Error()); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
