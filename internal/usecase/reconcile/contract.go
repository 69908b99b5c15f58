package reconcile

import (
	"context"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/vectorstore"
)

// IndexAdmin provides the index lifecycle operations needed for reconciliation.
type IndexAdmin interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	DescribeIndex(ctx context.Context, name string) (vectorstore.IndexInfo, error)
	CreateIndex(ctx context.Context, desc domain.IndexDescriptor) error
	DeleteIndex(ctx context.Context, name string) error
}
