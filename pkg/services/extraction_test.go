package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/llm"
)

const validExtractionResponse = `{
	"contact": {"first_name": "Sarah", "last_name": "Chen", "birthday": null, "confidence": 0.95},
	"interaction": {"notes": "Coffee at Blue Bottle", "location": "Blue Bottle", "interaction_date": "2025-03-10", "confidence": 0.9},
	"family_members": [
		{"first_name": "Emma", "last_name": "Chen", "relationship": "Daughter", "confidence": 0.8}
	]
}`

func TestExtractionService_Analyze(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		assert.Contains(t, prompt, "Had coffee with Sarah")
		return validExtractionResponse, nil
	}

	svc := NewExtractionService(mock, 2, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Had coffee with Sarah yesterday")
	require.NoError(t, err)

	require.NotNil(t, result.Contact.FirstName)
	assert.Equal(t, "Sarah", *result.Contact.FirstName)
	assert.Equal(t, "Coffee at Blue Bottle", result.Interaction.Notes)
	assert.Equal(t, "2025-03-10", result.Interaction.InteractionDate.Format("2006-01-02"))
	assert.Equal(t, "Had coffee with Sarah yesterday", result.RawText)

	// Freeform relationship labels are normalized to the closed set.
	require.Len(t, result.FamilyMembers, 1)
	assert.Equal(t, "related_to", result.FamilyMembers[0].Relationship)
}

func TestExtractionService_Analyze_NormalizesKnownRelationships(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return `{
			"contact": {"first_name": "Sarah", "last_name": null, "birthday": null, "confidence": 1},
			"interaction": {"notes": "Call", "location": null, "interaction_date": "2025-03-10", "confidence": 1},
			"family_members": [
				{"first_name": "Emma", "last_name": null, "relationship": "CHILD", "confidence": 1}
			]
		}`, nil
	}

	svc := NewExtractionService(mock, 0, zap.NewNop())

	result, err := svc.Analyze(context.Background(), "Call with Sarah")
	require.NoError(t, err)
	require.Len(t, result.FamilyMembers, 1)
	assert.Equal(t, "child", result.FamilyMembers[0].Relationship)
}

func TestExtractionService_Analyze_ProviderFailure(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return "", llm.NewError(llm.ErrorTypeAuth, "authentication failed", false, nil)
	}

	svc := NewExtractionService(mock, 2, zap.NewNop())

	_, err := svc.Analyze(context.Background(), "Some note")
	assert.ErrorIs(t, err, apperrors.ErrExtractionUnavailable)
	// Permanent errors are not retried.
	assert.Equal(t, 1, mock.GenerateResponseCalls)
}

func TestExtractionService_Analyze_RetriesTransientFailure(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		if mock.GenerateResponseCalls < 2 {
			return "", llm.NewError(llm.ErrorTypeEndpoint, "connection failed", true, nil)
		}
		return validExtractionResponse, nil
	}

	svc := NewExtractionService(mock, 2, zap.NewNop())

	_, err := svc.Analyze(context.Background(), "Some note")
	require.NoError(t, err)
	assert.Equal(t, 2, mock.GenerateResponseCalls)
}

func TestExtractionService_Analyze_UnparsableResponse(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return "I'm sorry, I can't help with that.", nil
	}

	svc := NewExtractionService(mock, 2, zap.NewNop())

	_, err := svc.Analyze(context.Background(), "Some note")
	assert.ErrorIs(t, err, apperrors.ErrExtractionUnavailable)
}

func TestExtractionService_Analyze_CircuitBreakerTrips(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return "", llm.NewError(llm.ErrorTypeAuth, "authentication failed", false, nil)
	}

	svc := NewExtractionService(mock, 0, zap.NewNop())

	// Default threshold is 5 consecutive failures.
	for i := 0; i < 5; i++ {
		_, err := svc.Analyze(context.Background(), "note")
		assert.ErrorIs(t, err, apperrors.ErrExtractionUnavailable)
	}
	callsBefore := mock.GenerateResponseCalls

	// Circuit is open: the provider is no longer called.
	_, err := svc.Analyze(context.Background(), "note")
	assert.ErrorIs(t, err, apperrors.ErrExtractionUnavailable)
	assert.Equal(t, callsBefore, mock.GenerateResponseCalls)
}
