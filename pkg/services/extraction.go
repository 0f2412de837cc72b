package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/llm"
	"github.com/SergeNasr/memoro/pkg/logging"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/prompts"
	"github.com/SergeNasr/memoro/pkg/retry"
)

// ExtractionService defines the interface for LLM-backed note analysis.
type ExtractionService interface {
	// Analyze extracts structured contact, interaction and family member
	// data from a free-form note. Nothing is persisted; the caller reviews
	// the result and confirms it separately.
	Analyze(ctx context.Context, text string) (*models.AnalyzeResult, error)
}

// extractionService implements ExtractionService.
type extractionService struct {
	llmClient llm.LLMClient
	breaker   *llm.CircuitBreaker
	retryCfg  *retry.Config
	logger    *zap.Logger
}

// NewExtractionService creates a new extraction service. maxRetries bounds
// retries of transient provider failures per analysis.
func NewExtractionService(llmClient llm.LLMClient, maxRetries int, logger *zap.Logger) ExtractionService {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = maxRetries

	return &extractionService{
		llmClient: llmClient,
		breaker:   llm.NewCircuitBreaker(llm.DefaultCircuitBreakerConfig()),
		retryCfg:  retryCfg,
		logger:    logger.Named("extraction"),
	}
}

// extractionPayload is the JSON shape the model is prompted to return.
type extractionPayload struct {
	Contact       models.ExtractedContact        `json:"contact"`
	Interaction   models.ExtractedInteraction    `json:"interaction"`
	FamilyMembers []models.ExtractedFamilyMember `json:"family_members"`
}

// Analyze runs the extraction prompt against the configured LLM provider.
// Transient provider errors are retried; sustained failures trip the circuit
// breaker. All failure modes surface as ErrExtractionUnavailable.
func (s *extractionService) Analyze(ctx context.Context, text string) (*models.AnalyzeResult, error) {
	if allowed, err := s.breaker.Allow(); !allowed {
		s.logger.Warn("Extraction request rejected by circuit breaker", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtractionUnavailable, err)
	}

	prompt := prompts.BuildExtractionPrompt(time.Now(), text)

	var payload extractionPayload
	err := retry.DoIfRetryable(ctx, s.retryCfg, func() error {
		response, err := s.llmClient.GenerateResponse(ctx, prompt, prompts.ExtractionSystemMessage, prompts.ExtractionTemperature)
		if err != nil {
			return err
		}

		payload, err = llm.ParseJSONResponse[extractionPayload](response)
		return err
	})
	if err != nil {
		s.breaker.RecordFailure()
		s.logger.Error("Extraction failed",
			zap.Int("text_len", len(text)),
			zap.Int("consecutive_failures", s.breaker.ConsecutiveFailures()),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtractionUnavailable, err)
	}
	s.breaker.RecordSuccess()

	for i := range payload.FamilyMembers {
		payload.FamilyMembers[i].Relationship = string(models.ParseRelationship(payload.FamilyMembers[i].Relationship))
	}

	s.logger.Info("Note analyzed",
		zap.String("text_preview", logging.TruncateString(text, 60)),
		zap.Int("family_members", len(payload.FamilyMembers)))

	return &models.AnalyzeResult{
		Contact:       payload.Contact,
		Interaction:   payload.Interaction,
		FamilyMembers: payload.FamilyMembers,
		RawText:       text,
	}, nil
}

// Ensure extractionService implements ExtractionService at compile time.
var _ ExtractionService = (*extractionService)(nil)
