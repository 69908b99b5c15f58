// Package search runs the query pipeline: validate, embed, query the index.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/domain"
)

// Query validation bounds.
const (
	MinQueryLen = 3
	MinTopK     = 1
	MaxTopK     = 10
	DefaultTopK = 3
)

// Result holds the matches for a single query.
type Result struct {
	Query   string
	Matches []domain.SearchMatch
	Took    time.Duration
}

// Service validates queries, embeds them, and queries the vector index.
type Service struct {
	store     Querier
	embedder  Embedder
	index     string
	dimension int
	logger    *zap.Logger
}

// New creates a search service. embedder may be nil when the provider failed
// to initialize; Search then reports not-ready instead of panicking.
func New(store Querier, embedder Embedder, index string, dimension int, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		embedder:  embedder,
		index:     index,
		dimension: dimension,
		logger:    logger,
	}
}

// Search embeds the query and returns the top-k matches in store ranking
// order. Validation runs before any outbound call.
func (s *Service) Search(ctx context.Context, query string, topK int) (Result, error) {
	trimmed := strings.TrimSpace(query)
	// Length is counted in characters, not bytes.
	if utf8.RuneCountInString(trimmed) < MinQueryLen {
		return Result{}, domain.NewValidation("query",
			fmt.Sprintf("must be at least %d characters", MinQueryLen))
	}
	if topK < MinTopK || topK > MaxTopK {
		return Result{}, domain.NewValidation("top_k",
			fmt.Sprintf("must be between %d and %d", MinTopK, MaxTopK))
	}

	if s.embedder == nil {
		return Result{}, fmt.Errorf("embedding provider not initialized: %w", domain.ErrNotReady)
	}

	start := time.Now()

	emb, err := s.embedder.Embed(ctx, trimmed)
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}
	if s.dimension > 0 && len(emb.Embedding) != s.dimension {
		return Result{}, fmt.Errorf(
			"embedding has %d dimensions, index expects %d: %w",
			len(emb.Embedding), s.dimension, domain.ErrConfiguration,
		)
	}

	matches, err := s.store.Query(ctx, s.index, emb.Embedding, topK, true)
	if err != nil {
		return Result{}, classifyStoreErr(err)
	}

	took := time.Since(start)
	s.logger.Info("search completed",
		zap.String("index", s.index),
		zap.Int("top_k", topK),
		zap.Int("matches", len(matches)),
		zap.Duration("took", took))

	return Result{Query: trimmed, Matches: matches, Took: took}, nil
}

// classifyStoreErr separates deadline expiry from other store failures.
// Timeouts may have landed server-side; callers must not assume the query ran.
func classifyStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("query index: %w: %w", err, domain.ErrTimeout)
	}
	return fmt.Errorf("query index: %w: %w", err, domain.ErrStoreUnavailable)
}
