// Package ingest loads vector records into an index in sequential batches.
package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/metrics"
)

// DefaultBatchSize is the number of records per upsert request.
const DefaultBatchSize = 100

// Report summarizes a load run. On failure it reflects the progress made
// before the failing batch.
type Report struct {
	Attempted int
	Upserted  int
	Batches   int
	Elapsed   time.Duration
}

// Service splits records into batches and upserts them in order, failing fast.
type Service struct {
	store  Upserter
	index  string
	logger *zap.Logger
}

// New creates a batch loader for the named index.
func New(store Upserter, index string, logger *zap.Logger) *Service {
	return &Service{store: store, index: index, logger: logger}
}

// Load upserts records in sequential batches of batchSize. The first batch
// failure aborts the run; records in later batches are never sent.
func (s *Service) Load(ctx context.Context, records []domain.UpsertRecord, batchSize int) (Report, error) {
	if batchSize <= 0 {
		return Report{}, domain.NewValidation("batch_size", "must be positive")
	}

	report := Report{Attempted: len(records)}
	start := time.Now()

	for offset := 0; offset < len(records); offset += batchSize {
		end := offset + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[offset:end]
		batchNum := report.Batches + 1

		batchStart := time.Now()
		err := s.store.Upsert(ctx, s.index, batch)
		metrics.IngestBatchDuration.WithLabelValues(s.index).Observe(time.Since(batchStart).Seconds())

		if err != nil {
			metrics.IngestBatchesTotal.WithLabelValues(s.index, "error").Inc()
			report.Elapsed = time.Since(start)
			return report, domain.NewUpsertError(batchNum, err)
		}

		metrics.IngestBatchesTotal.WithLabelValues(s.index, "success").Inc()
		metrics.IngestRecordsTotal.WithLabelValues(s.index).Add(float64(len(batch)))

		report.Batches = batchNum
		report.Upserted += len(batch)

		s.logger.Info("batch upserted",
			zap.String("index", s.index),
			zap.Int("batch", batchNum),
			zap.Int("records", len(batch)),
			zap.Int("total_upserted", report.Upserted))
	}

	report.Elapsed = time.Since(start)
	return report, nil
}
