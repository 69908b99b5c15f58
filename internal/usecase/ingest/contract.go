package ingest

import (
	"context"

	"github.com/neuralquery/neuralquery/internal/domain"
)

// Upserter writes vector records into an index.
type Upserter interface {
	Upsert(ctx context.Context, index string, records []domain.UpsertRecord) error
}
