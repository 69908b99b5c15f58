// Command neuralquery-indexer reconciles the vector index and bulk-loads the
// built-in corpus. Intended for one-shot runs (init containers, cron).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/config"
	"github.com/neuralquery/neuralquery/internal/corpus"
	"github.com/neuralquery/neuralquery/internal/domain"
	logpkg "github.com/neuralquery/neuralquery/internal/logger"
	"github.com/neuralquery/neuralquery/internal/metrics"
	openaiEmb "github.com/neuralquery/neuralquery/internal/transport/openai"
	"github.com/neuralquery/neuralquery/internal/usecase/ingest"
	"github.com/neuralquery/neuralquery/internal/usecase/reconcile"
	"github.com/neuralquery/neuralquery/internal/vectorstore/redis"
	"github.com/neuralquery/neuralquery/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		fail(fmt.Errorf("load config: %w: %w", err, domain.ErrConfiguration))
	}

	// Validate credentials before touching the network.
	if cfg.Embedding.APIKey == "" {
		fail(fmt.Errorf(
			"EMBEDDING_API_KEY environment variable is required but not set: %w",
			domain.ErrConfiguration,
		))
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		fail(fmt.Errorf("create logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting neuralquery indexer",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("index", cfg.Index.Name),
		zap.Int("dimension", cfg.Index.Dimension),
		zap.Int("batch_size", cfg.Index.BatchSize),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterIngestMetrics()

	store, err := redis.NewStore(redis.Config{
		Addrs:     cfg.Database.Addrs,
		Password:  cfg.Database.Password,
		KeyPrefix: cfg.Index.KeyPrefix,
	})
	if err != nil {
		fail(fmt.Errorf("create vector store client: %w", err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		fail(fmt.Errorf("vector store not ready: %w", err))
	}
	logger.Info("Connected to vector store")

	// Converge the index onto the configured descriptor.
	reconciler := reconcile.New(store, logger).WithPolling(
		time.Duration(cfg.Index.DeletePollSec)*time.Second,
		uint64(cfg.Index.DeletePollLimit),
	)
	outcome, err := reconciler.Reconcile(ctx, cfg.IndexDescriptor())
	if err != nil {
		fail(err)
	}
	logger.Info("Index reconciled", zap.String("outcome", string(outcome)))

	docs := corpus.TechTips()
	logger.Info("Corpus loaded", zap.Int("documents", len(docs)))

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	logger.Info("Encoding documents", zap.String("model", cfg.Embedding.Model))
	embedded, err := domain.BatchEmbed(ctx, embedder, texts)
	if err != nil {
		fail(err)
	}

	records := make([]domain.UpsertRecord, len(docs))
	for i, doc := range docs {
		vec := embedded.Embeddings[i]
		if len(vec) != cfg.Index.Dimension {
			fail(fmt.Errorf(
				"document %s embedded with %d dimensions, index expects %d: %w",
				doc.ID, len(vec), cfg.Index.Dimension, domain.ErrConfiguration,
			))
		}
		records[i] = domain.UpsertRecord{ID: doc.ID, Vector: vec, Metadata: doc.Metadata}
	}

	loader := ingest.New(store, cfg.Index.Name, logger)
	report, err := loader.Load(ctx, records, cfg.Index.BatchSize)
	if err != nil {
		fail(err)
	}

	logger.Info("Indexing completed",
		zap.Int("attempted", report.Attempted),
		zap.Int("upserted", report.Upserted),
		zap.Int("batches", report.Batches),
		zap.Duration("elapsed", report.Elapsed),
		zap.Int("tokens", embedded.TotalTokens),
	)
}

// fail prints the error with its class and exits non-zero. Exit codes matter
// here: init containers and CI gate on them.
func fail(err error) {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		fmt.Fprintf(os.Stderr, "Configuration Error: %v\n", err)
	case errors.Is(err, domain.ErrProvisioning):
		fmt.Fprintf(os.Stderr, "Provisioning Error: %v\n", err)
	case errors.Is(err, domain.ErrUpsert):
		fmt.Fprintf(os.Stderr, "Upsert Error: %v\n", err)
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		fmt.Fprintf(os.Stderr, "Embedding Error: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Unexpected Error: %v\n", err)
	}
	os.Exit(1)
}
