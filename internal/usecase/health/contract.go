package health

import (
	"context"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/vectorstore"
)

// StatsReader reads aggregate index statistics.
type StatsReader interface {
	DescribeIndexStats(ctx context.Context, name string) (vectorstore.IndexStats, error)
}

// Embedder is the query embedder whose presence readiness depends on.
// Only initialization is checked; no embedding call is made by the probe.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
