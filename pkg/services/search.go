package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/repositories"
)

// SearchService defines the interface for unified search across contacts and
// interactions.
type SearchService interface {
	Search(ctx context.Context, userID uuid.UUID, query string, searchType models.SearchType, limit int) ([]models.SearchResult, error)
}

// searchService implements SearchService. The Redis cache is optional; a nil
// client disables it and every search hits PostgreSQL.
type searchService struct {
	contactRepo     repositories.ContactRepository
	interactionRepo repositories.InteractionRepository
	cache           *redis.Client
	cacheTTL        time.Duration
	logger          *zap.Logger
}

// NewSearchService creates a new search service with dependencies.
func NewSearchService(
	contactRepo repositories.ContactRepository,
	interactionRepo repositories.InteractionRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		logger:          logger.Named("search"),
	}
}

// Search runs one search strategy over both entity kinds, merges the hits by
// descending score, and truncates to limit. Semantic search is declared but
// not implemented; requesting it is an explicit error rather than silently
// empty results.
func (s *searchService) Search(ctx context.Context, userID uuid.UUID, query string, searchType models.SearchType, limit int) ([]models.SearchResult, error) {
	if searchType == models.SearchTypeSemantic {
		return nil, apperrors.ErrSemanticSearchNotImplemented
	}

	cacheKey := fmt.Sprintf("search:%s:%s:%d:%s", userID, searchType, limit, query)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	var contactHits, interactionHits []models.SearchResult
	var err error

	switch searchType {
	case models.SearchTypeTerm:
		contactHits, err = s.contactRepo.SearchTerm(ctx, userID, query, limit)
		if err != nil {
			return nil, err
		}
		interactionHits, err = s.interactionRepo.SearchTerm(ctx, userID, query, limit)
		if err != nil {
			return nil, err
		}
	case models.SearchTypeFuzzy:
		contactHits, err = s.contactRepo.SearchFuzzy(ctx, userID, query, limit)
		if err != nil {
			return nil, err
		}
		interactionHits, err = s.interactionRepo.SearchFuzzy(ctx, userID, query, limit)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidSearchType, searchType)
	}

	results := append(contactHits, interactionHits...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	s.cacheSet(ctx, cacheKey, results)

	s.logger.Info("Search completed",
		zap.String("user_id", userID.String()),
		zap.String("search_type", string(searchType)),
		zap.Int("total_results", len(results)))

	return results, nil
}

// cacheGet returns cached results for the key. Cache failures are logged and
// treated as misses; the cache never breaks a search.
func (s *searchService) cacheGet(ctx context.Context, key string) ([]models.SearchResult, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Search cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var results []models.SearchResult
	if err := json.Unmarshal(raw, &results); err != nil {
		s.logger.Warn("Search cache entry corrupt", zap.Error(err))
		return nil, false
	}

	return results, true
}

func (s *searchService) cacheSet(ctx context.Context, key string, results []models.SearchResult) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("Search cache write failed", zap.Error(err))
	}
}

// Ensure searchService implements SearchService at compile time.
var _ SearchService = (*searchService)(nil)
