package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ContactInteractionsResponse for GET /api/contacts/{cid}/interactions
type ContactInteractionsResponse struct {
	Interactions []*models.Interaction `json:"interactions"`
}

// ContactHandler handles contact HTTP requests.
type ContactHandler struct {
	contactService services.ContactService
	logger         *zap.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the contact handler's routes on the given mux.
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux, rm RequestMiddleware) {
	base := "/api/contacts"

	mux.HandleFunc("GET "+base, rm(h.List))
	mux.HandleFunc("GET "+base+"/{cid}", rm(h.Get))
	mux.HandleFunc("PATCH "+base+"/{cid}", rm(h.Update))
	mux.HandleFunc("DELETE "+base+"/{cid}", rm(h.Delete))
	mux.HandleFunc("GET "+base+"/{cid}/summary", rm(h.Summary))
	mux.HandleFunc("GET "+base+"/{cid}/interactions", rm(h.Interactions))
}

// List handles GET /api/contacts
// Supports page and page_size query parameters.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}

	page, pageSize, ok := h.parsePagination(w, r)
	if !ok {
		return
	}

	list, err := h.contactService.List(r.Context(), ownerID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list contacts", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "list_contacts_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, list); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/contacts/{cid}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	contact, err := h.contactService.Get(r.Context(), ownerID, contactID)
	if err != nil {
		h.writeContactError(w, "get_contact_failed", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, contact); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/contacts/{cid}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	var update models.ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contact, err := h.contactService.Update(r.Context(), ownerID, contactID, &update)
	if err != nil {
		h.writeContactError(w, "update_contact_failed", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, contact); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/contacts/{cid}
// Deleting a contact cascades to its interactions and family links.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), ownerID, contactID); err != nil {
		h.writeContactError(w, "delete_contact_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/contacts/{cid}/summary
func (h *ContactHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.contactService.GetSummary(r.Context(), ownerID, contactID)
	if err != nil {
		h.writeContactError(w, "get_contact_summary_failed", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, summary); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Interactions handles GET /api/contacts/{cid}/interactions
// Supports page and page_size query parameters; newest first.
func (h *ContactHandler) Interactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	page, pageSize, ok := h.parsePagination(w, r)
	if !ok {
		return
	}

	interactions, err := h.contactService.GetInteractions(r.Context(), ownerID, contactID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.writeContactError(w, "get_contact_interactions_failed", err)
		return
	}
	if interactions == nil {
		interactions = []*models.Interaction{}
	}

	if err := WriteJSON(w, http.StatusOK, ContactInteractionsResponse{Interactions: interactions}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// parsePagination reads page and page_size query parameters, applying
// defaults and bounds. Writes a 400 response and returns false on invalid
// input.
func (h *ContactHandler) parsePagination(w http.ResponseWriter, r *http.Request) (page, pageSize int, ok bool) {
	page, pageSize = 1, defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writePaginationError(w, "page must be a positive integer")
			return 0, 0, false
		}
		page = n
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			h.writePaginationError(w, "page_size must be between 1 and 100")
			return 0, 0, false
		}
		pageSize = n
	}

	return page, pageSize, true
}

func (h *ContactHandler) writePaginationError(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusBadRequest, "invalid_pagination", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}

// writeContactError maps service errors onto HTTP status codes.
func (h *ContactHandler) writeContactError(w http.ResponseWriter, errorCode string, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		if err := ErrorResponse(w, http.StatusNotFound, "contact_not_found", "Contact not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	h.logger.Error("Contact request failed", zap.String("error_code", errorCode), zap.Error(err))
	if err := ErrorResponse(w, http.StatusInternalServerError, errorCode, err.Error()); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
