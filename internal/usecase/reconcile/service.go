// Package reconcile converges the remote index onto the configured descriptor.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/domain"
)

const (
	defaultPollInterval = time.Second
	defaultMaxPolls     = 60
)

// Outcome describes what reconciliation did to the index.
type Outcome string

const (
	// Created means the index did not exist and was created.
	Created Outcome = "created"
	// Recreated means the index existed with a wrong dimension and was rebuilt.
	Recreated Outcome = "recreated"
	// Unchanged means the index already matched the descriptor.
	Unchanged Outcome = "unchanged"
)

// Service converges the store index onto a target descriptor.
// A dimension mismatch destroys all stored vectors; recreation is logged loudly.
type Service struct {
	store        IndexAdmin
	logger       *zap.Logger
	pollInterval time.Duration
	maxPolls     uint64
}

// New creates a reconciliation service.
func New(store IndexAdmin, logger *zap.Logger) *Service {
	return &Service{
		store:        store,
		logger:       logger,
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
	}
}

// WithPolling configures the deletion poll interval and attempt cap.
func (s *Service) WithPolling(interval time.Duration, maxPolls uint64) *Service {
	if interval > 0 {
		s.pollInterval = interval
	}
	if maxPolls > 0 {
		s.maxPolls = maxPolls
	}
	return s
}

// Reconcile ensures the index exists with the descriptor's dimension and metric.
// Missing index: create. Matching dimension: no-op, even if the metric differs.
// Dimension mismatch: delete, wait until the deletion lands, recreate.
func (s *Service) Reconcile(ctx context.Context, desc domain.IndexDescriptor) (Outcome, error) {
	if err := desc.Validate(); err != nil {
		return "", fmt.Errorf("descriptor: %w: %w", err, domain.ErrProvisioning)
	}

	exists, err := s.store.IndexExists(ctx, desc.Name)
	if err != nil {
		return "", fmt.Errorf("check index %q: %w: %w", desc.Name, err, domain.ErrProvisioning)
	}

	if !exists {
		if err := s.createIndex(ctx, desc); err != nil {
			return "", err
		}
		return Created, nil
	}

	info, err := s.store.DescribeIndex(ctx, desc.Name)
	if err != nil {
		return "", fmt.Errorf("describe index %q: %w: %w", desc.Name, err, domain.ErrProvisioning)
	}

	if info.Dimension == desc.Dimension {
		s.logger.Info("index up to date",
			zap.String("index", desc.Name),
			zap.Int("dimension", info.Dimension))
		return Unchanged, nil
	}

	s.logger.Warn("index dimension mismatch, recreating index and discarding all vectors",
		zap.String("index", desc.Name),
		zap.Int("existing_dimension", info.Dimension),
		zap.Int("target_dimension", desc.Dimension))

	if err := s.store.DeleteIndex(ctx, desc.Name); err != nil {
		return "", fmt.Errorf("delete index %q: %w: %w", desc.Name, err, domain.ErrProvisioning)
	}

	if err := s.waitForDeletion(ctx, desc.Name); err != nil {
		return "", err
	}

	if err := s.createIndex(ctx, desc); err != nil {
		return "", err
	}
	return Recreated, nil
}

func (s *Service) createIndex(ctx context.Context, desc domain.IndexDescriptor) error {
	if err := s.store.CreateIndex(ctx, desc); err != nil {
		return fmt.Errorf("create index %q: %w: %w", desc.Name, err, domain.ErrProvisioning)
	}
	s.logger.Info("index created",
		zap.String("index", desc.Name),
		zap.Int("dimension", desc.Dimension),
		zap.String("metric", string(desc.Metric)))
	return nil
}

// waitForDeletion polls until the index no longer exists. Deletion is
// asynchronous on some backends; creating before it lands fails or races.
func (s *Service) waitForDeletion(ctx context.Context, name string) error {
	b := retry.WithMaxRetries(s.maxPolls, retry.NewConstant(s.pollInterval))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		exists, err := s.store.IndexExists(ctx, name)
		if err != nil {
			return fmt.Errorf("poll index %q: %w", name, err)
		}
		if exists {
			return retry.RetryableError(fmt.Errorf("index %q still present", name))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wait for deletion of %q: %w: %w", name, err, domain.ErrProvisioning)
	}
	return nil
}
