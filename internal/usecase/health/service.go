// Package health reports service readiness from the index's point of view.
package health

import (
	"context"

	"go.uber.org/zap"
)

// Reasons for an unhealthy status.
const (
	ReasonNotReady         = "not_ready"
	ReasonStoreUnavailable = "store_unavailable"
)

// Status is the outcome of a health probe.
type Status struct {
	OK           bool
	TotalVectors int
	Reason       string
}

// Service probes the vector index. Check never returns an error; probe
// failures map to an unhealthy Status so the handler can always respond.
type Service struct {
	store    StatsReader
	embedder Embedder
	index    string
	logger   *zap.Logger
}

// New creates a health service. store and embedder may be nil before
// initialization completes; Check then reports not ready. The service is
// not ready until both are present: without an embedder the search
// endpoint cannot serve, and a healthy answer would route traffic to it.
func New(store StatsReader, embedder Embedder, index string, logger *zap.Logger) *Service {
	return &Service{store: store, embedder: embedder, index: index, logger: logger}
}

// Check probes the index and reports its vector count.
func (s *Service) Check(ctx context.Context) Status {
	if s.store == nil || s.embedder == nil {
		return Status{Reason: ReasonNotReady}
	}

	stats, err := s.store.DescribeIndexStats(ctx, s.index)
	if err != nil {
		s.logger.Warn("health probe failed",
			zap.String("index", s.index),
			zap.Error(err))
		return Status{Reason: ReasonStoreUnavailable}
	}

	return Status{OK: true, TotalVectors: stats.TotalVectorCount}
}
