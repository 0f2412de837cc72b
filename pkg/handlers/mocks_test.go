package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/SergeNasr/memoro/pkg/auth"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/services"
)

// mockExtractionService is a configurable mock for handler tests.
type mockExtractionService struct {
	result *models.AnalyzeResult
	err    error

	gotText string
}

func (m *mockExtractionService) Analyze(ctx context.Context, text string) (*models.AnalyzeResult, error) {
	m.gotText = text
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockInteractionService is a configurable mock for handler tests.
type mockInteractionService struct {
	confirmResult *models.ConfirmResult
	interaction   *models.Interaction
	err           error

	gotOwnerID uuid.UUID
	gotRequest *models.ConfirmRequest
}

func (m *mockInteractionService) Confirm(ctx context.Context, userID uuid.UUID, req *models.ConfirmRequest) (*models.ConfirmResult, error) {
	m.gotOwnerID = userID
	m.gotRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.confirmResult, nil
}

func (m *mockInteractionService) Get(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.interaction, nil
}

func (m *mockInteractionService) Update(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.interaction, nil
}

func (m *mockInteractionService) Delete(ctx context.Context, userID, interactionID uuid.UUID) error {
	return m.err
}

// mockContactService is a configurable mock for handler tests.
type mockContactService struct {
	list         *models.ContactList
	contact      *models.Contact
	summary      *models.ContactSummary
	interactions []*models.Interaction
	err          error

	gotPage     int
	gotPageSize int
	gotLimit    int
	gotOffset   int
}

func (m *mockContactService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.ContactList, error) {
	m.gotPage = page
	m.gotPageSize = pageSize
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockContactService) Get(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contact, nil
}

func (m *mockContactService) GetSummary(ctx context.Context, userID, contactID uuid.UUID) (*models.ContactSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockContactService) Update(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.contact, nil
}

func (m *mockContactService) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	return m.err
}

func (m *mockContactService) GetInteractions(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error) {
	m.gotLimit = limit
	m.gotOffset = offset
	if m.err != nil {
		return nil, m.err
	}
	return m.interactions, nil
}

// mockSearchService is a configurable mock for handler tests.
type mockSearchService struct {
	results []models.SearchResult
	err     error

	gotQuery string
	gotType  models.SearchType
	gotLimit int
}

func (m *mockSearchService) Search(ctx context.Context, userID uuid.UUID, query string, searchType models.SearchType, limit int) ([]models.SearchResult, error) {
	m.gotQuery = query
	m.gotType = searchType
	m.gotLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

var (
	_ services.ExtractionService  = (*mockExtractionService)(nil)
	_ services.InteractionService = (*mockInteractionService)(nil)
	_ services.ContactService     = (*mockContactService)(nil)
	_ services.SearchService      = (*mockSearchService)(nil)
)

// authedRequest builds a request carrying the placeholder owner identity,
// the way the auth middleware would have stamped it.
func authedRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(auth.SetOwnerID(req.Context(), auth.PlaceholderOwnerID))
}

// decodeError reads the standard error envelope from a response body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	return errResp
}
