package search

import (
	"context"

	"github.com/neuralquery/neuralquery/internal/domain"
)

// Querier runs top-k similarity queries against an index.
type Querier interface {
	Query(
		ctx context.Context, index string,
		vector []float32, topK int, includeMetadata bool,
	) ([]domain.SearchMatch, error)
}

// Embedder produces a vector for a query string.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
