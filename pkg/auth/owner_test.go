package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerContextRoundTrip(t *testing.T) {
	ownerID := uuid.New()
	ctx := SetOwnerID(context.Background(), ownerID)

	got, ok := GetOwnerID(ctx)
	assert.True(t, ok)
	assert.Equal(t, ownerID, got)
}

func TestGetOwnerID_Missing(t *testing.T) {
	_, ok := GetOwnerID(context.Background())
	assert.False(t, ok)

	_, err := RequireOwnerID(context.Background())
	assert.Error(t, err)
}

func TestMiddleware_StampsOwner(t *testing.T) {
	var got uuid.UUID
	handler := Middleware(PlaceholderOwnerID)(func(w http.ResponseWriter, r *http.Request) {
		id, err := RequireOwnerID(r.Context())
		require.NoError(t, err)
		got = id
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, PlaceholderOwnerID, got)
}
