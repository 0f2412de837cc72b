package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/config"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/services"
)

// SearchRequest for POST /api/search
type SearchRequest struct {
	Query      string `json:"query"`
	SearchType string `json:"search_type,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// SearchResponse for POST /api/search
type SearchResponse struct {
	Results      []models.SearchResult `json:"results"`
	Query        string                `json:"query"`
	SearchType   models.SearchType     `json:"search_type"`
	TotalResults int                   `json:"total_results"`
}

// SearchHandler handles unified search HTTP requests.
type SearchHandler struct {
	searchService services.SearchService
	cfg           config.SearchConfig
	logger        *zap.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService services.SearchService, cfg config.SearchConfig, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		cfg:           cfg,
		logger:        logger,
	}
}

// RegisterRoutes registers the search handler's routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux, rm RequestMiddleware) {
	mux.HandleFunc("POST /api/search", rm(h.Search))
}

// Search handles POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r, h.logger)
	if !ok {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeValidationError(w, "Invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		h.writeValidationError(w, "Query must not be empty")
		return
	}
	if len(query) > h.cfg.MaxQueryLength {
		h.writeValidationError(w, fmt.Sprintf("Query must be at most %d characters", h.cfg.MaxQueryLength))
		return
	}

	if req.SearchType == "" {
		req.SearchType = string(models.SearchTypeTerm)
	}
	searchType, err := models.ParseSearchType(req.SearchType)
	if err != nil {
		h.writeValidationError(w, err.Error())
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = h.cfg.DefaultLimit
	}
	if limit < 1 || limit > h.cfg.MaxLimit {
		h.writeValidationError(w, fmt.Sprintf("Limit must be between 1 and %d", h.cfg.MaxLimit))
		return
	}

	results, err := h.searchService.Search(r.Context(), ownerID, query, searchType, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrSemanticSearchNotImplemented) {
			if err := ErrorResponse(w, http.StatusNotImplemented, "semantic_search_not_implemented", "Semantic search is not implemented"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrInvalidSearchType) {
			h.writeValidationError(w, err.Error())
			return
		}
		h.logger.Error("Search failed", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "search_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	// No matches marshals as [], not null.
	if results == nil {
		results = []models.SearchResult{}
	}

	response := SearchResponse{
		Results:      results,
		Query:        query,
		SearchType:   searchType,
		TotalResults: len(results),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *SearchHandler) writeValidationError(w http.ResponseWriter, message string) {
	if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
