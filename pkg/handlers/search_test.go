package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/config"
	"github.com/SergeNasr/memoro/pkg/models"
)

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		DefaultLimit:   20,
		MaxLimit:       100,
		MaxQueryLength: 500,
	}
}

func TestSearchHandler_Defaults(t *testing.T) {
	svc := &mockSearchService{
		results: []models.SearchResult{
			models.NewContactSearchResult(&models.ContactResult{ID: uuid.New(), FirstName: "Sarah"}, 1.0),
		},
	}
	handler := NewSearchHandler(svc, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "sarah"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sarah", svc.gotQuery)
	assert.Equal(t, models.SearchTypeTerm, svc.gotType)
	assert.Equal(t, 20, svc.gotLimit)

	var response SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "sarah", response.Query)
	assert.Equal(t, models.SearchTypeTerm, response.SearchType)
	assert.Equal(t, 1, response.TotalResults)
	require.Len(t, response.Results, 1)
	assert.Equal(t, models.ResultTypeContact, response.Results[0].ResultType)
}

func TestSearchHandler_TrimsQuery(t *testing.T) {
	svc := &mockSearchService{}
	handler := NewSearchHandler(svc, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "  sarah  "}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sarah", svc.gotQuery)
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{}, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "   "}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec)["error"])
}

func TestSearchHandler_QueryTooLong(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{}, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: strings.Repeat("a", 501)}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_InvalidSearchType(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{}, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "sarah", SearchType: "vibes"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_LimitOutOfBounds(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{}, testSearchConfig(), zap.NewNop())

	for _, limit := range []int{-1, 101} {
		rec := httptest.NewRecorder()
		handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "sarah", Limit: limit}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestSearchHandler_NoMatches_EmptyArray(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{}, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "nobody"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Clients get an empty array, never null.
	assert.Contains(t, rec.Body.String(), `"results":[]`)

	var response SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 0, response.TotalResults)
}

func TestSearchHandler_SemanticNotImplemented(t *testing.T) {
	svc := &mockSearchService{err: apperrors.ErrSemanticSearchNotImplemented}
	handler := NewSearchHandler(svc, testSearchConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Search(rec, authedRequest(t, http.MethodPost, "/api/search", SearchRequest{Query: "sarah", SearchType: "semantic"}))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "semantic_search_not_implemented", decodeError(t, rec)["error"])
}
