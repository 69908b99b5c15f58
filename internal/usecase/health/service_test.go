package health

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/vectorstore"
)

type fakeStats struct {
	stats vectorstore.IndexStats
	err   error
}

func (f *fakeStats) DescribeIndexStats(_ context.Context, _ string) (vectorstore.IndexStats, error) {
	return f.stats, f.err
}

type fakeEmbedder struct{}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, nil
}

func TestCheck_NotReadyWithoutStore(t *testing.T) {
	svc := New(nil, &fakeEmbedder{}, "neural-search", zap.NewNop())

	status := svc.Check(context.Background())
	if status.OK {
		t.Error("expected unhealthy status")
	}
	if status.Reason != ReasonNotReady {
		t.Errorf("expected reason %q, got %q", ReasonNotReady, status.Reason)
	}
}

func TestCheck_NotReadyWithoutEmbedder(t *testing.T) {
	// A reachable store is not enough: without an embedder the search
	// endpoint cannot serve, so the service must not report healthy.
	svc := New(&fakeStats{stats: vectorstore.IndexStats{TotalVectorCount: 20}}, nil, "neural-search", zap.NewNop())

	status := svc.Check(context.Background())
	if status.OK {
		t.Error("expected unhealthy status when embedder is missing")
	}
	if status.Reason != ReasonNotReady {
		t.Errorf("expected reason %q, got %q", ReasonNotReady, status.Reason)
	}
}

func TestCheck_StoreUnavailable(t *testing.T) {
	svc := New(&fakeStats{err: errors.New("connection refused")}, &fakeEmbedder{}, "neural-search", zap.NewNop())

	status := svc.Check(context.Background())
	if status.OK {
		t.Error("expected unhealthy status")
	}
	if status.Reason != ReasonStoreUnavailable {
		t.Errorf("expected reason %q, got %q", ReasonStoreUnavailable, status.Reason)
	}
}

func TestCheck_Healthy(t *testing.T) {
	svc := New(&fakeStats{stats: vectorstore.IndexStats{TotalVectorCount: 20}}, &fakeEmbedder{}, "neural-search", zap.NewNop())

	status := svc.Check(context.Background())
	if !status.OK {
		t.Fatalf("expected healthy status, got reason %q", status.Reason)
	}
	if status.TotalVectors != 20 {
		t.Errorf("expected 20 vectors, got %d", status.TotalVectors)
	}
}

func TestCheck_HealthyEmptyIndex(t *testing.T) {
	svc := New(&fakeStats{}, &fakeEmbedder{}, "neural-search", zap.NewNop())

	status := svc.Check(context.Background())
	if !status.OK {
		t.Errorf("empty index is still healthy, got reason %q", status.Reason)
	}
	if status.TotalVectors != 0 {
		t.Errorf("expected 0 vectors, got %d", status.TotalVectors)
	}
}
