package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{
			name:          "unauthorized",
			err:           errors.New("error, status code: 401, message: invalid api key"),
			wantType:      ErrorTypeAuth,
			wantRetryable: false,
		},
		{
			name:          "model not found",
			err:           errors.New("the model 'gpt-5-turbo' does not exist"),
			wantType:      ErrorTypeModel,
			wantRetryable: false,
		},
		{
			name:          "endpoint 404",
			err:           errors.New("error, status code: 404, message: not found"),
			wantType:      ErrorTypeEndpoint,
			wantRetryable: false,
		},
		{
			name:          "connection refused",
			err:           errors.New("dial tcp 127.0.0.1:11434: connection refused"),
			wantType:      ErrorTypeEndpoint,
			wantRetryable: true,
		},
		{
			name:          "deadline exceeded",
			err:           errors.New("context deadline exceeded"),
			wantType:      ErrorTypeEndpoint,
			wantRetryable: true,
		},
		{
			name:          "rate limited",
			err:           errors.New("error, status code: 429, message: rate limit exceeded"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: true,
		},
		{
			name:          "server error",
			err:           errors.New("error, status code: 503, message: service unavailable"),
			wantType:      ErrorTypeEndpoint,
			wantRetryable: true,
		},
		{
			name:          "unclassified",
			err:           errors.New("something odd happened"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			require.NotNil(t, classified)
			assert.Equal(t, tt.wantType, classified.Type)
			assert.Equal(t, tt.wantRetryable, classified.Retryable)
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestClassifyError_PassesThroughStructuredError(t *testing.T) {
	original := NewError(ErrorTypeParse, "no valid JSON found in response", false, nil)
	wrapped := fmt.Errorf("analyze note: %w", original)

	classified := ClassifyError(wrapped)
	assert.Same(t, original, classified)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(ErrorTypeEndpoint, "connection failed", true, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection failed")
	assert.Contains(t, err.Error(), "boom")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewError(ErrorTypeEndpoint, "connection failed", true, nil)))
	assert.False(t, IsRetryable(NewError(ErrorTypeAuth, "authentication failed", false, nil)))
	assert.False(t, IsRetryable(errors.New("plain error")))
}
