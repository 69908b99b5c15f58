// Package vectorstore defines the remote vector store boundary. Consumers
// depend on the narrow sub-interfaces; implementations live in subpackages.
package vectorstore

import (
	"context"
	"time"

	"github.com/neuralquery/neuralquery/internal/domain"
)

// Store is the full vector store facade combining all sub-interfaces.
type Store interface {
	Pinger
	IndexAdmin
	Writer
	Querier
	StatsReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexAdmin provides index lifecycle operations.
type IndexAdmin interface {
	ListIndexes(ctx context.Context) ([]string, error)
	DescribeIndex(ctx context.Context, name string) (IndexInfo, error)
	CreateIndex(ctx context.Context, desc domain.IndexDescriptor) error
	DeleteIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Writer upserts vector records into an index.
type Writer interface {
	Upsert(ctx context.Context, index string, records []domain.UpsertRecord) error
}

// Querier runs top-k similarity queries against an index.
// Matches come back in the store's ranking order; callers must not re-sort.
type Querier interface {
	Query(
		ctx context.Context, index string,
		vector []float32, topK int, includeMetadata bool,
	) ([]domain.SearchMatch, error)
}

// StatsReader reads aggregate index statistics.
type StatsReader interface {
	DescribeIndexStats(ctx context.Context, name string) (IndexStats, error)
}

// IndexInfo is the store-reported shape of an existing index.
type IndexInfo struct {
	Name      string
	Dimension int
	Metric    domain.Metric
}

// IndexStats holds aggregate index statistics.
type IndexStats struct {
	TotalVectorCount int
}
