package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterIngestMetrics()
	os.Exit(m.Run())
}

type fakeUpserter struct {
	batches [][]domain.UpsertRecord
	failAt  int // 1-indexed batch to fail, 0 = never
}

func (f *fakeUpserter) Upsert(_ context.Context, _ string, records []domain.UpsertRecord) error {
	f.batches = append(f.batches, records)
	if f.failAt > 0 && len(f.batches) == f.failAt {
		return errors.New("write refused")
	}
	return nil
}

func makeRecords(n int) []domain.UpsertRecord {
	records := make([]domain.UpsertRecord, n)
	for i := range records {
		records[i] = domain.UpsertRecord{
			ID:     fmt.Sprintf("doc_%d", i),
			Vector: []float32{float32(i)},
		}
	}
	return records
}

func TestLoad_SplitsIntoSequentialBatches(t *testing.T) {
	store := &fakeUpserter{}
	svc := New(store, "neural-search", zap.NewNop())

	report, err := svc.Load(context.Background(), makeRecords(20), 7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(store.batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(store.batches))
	}
	sizes := []int{7, 7, 6}
	for i, want := range sizes {
		if len(store.batches[i]) != want {
			t.Errorf("batch %d: expected %d records, got %d", i+1, want, len(store.batches[i]))
		}
	}
	if store.batches[0][0].ID != "doc_0" || store.batches[2][5].ID != "doc_19" {
		t.Error("batches out of order")
	}

	if report.Attempted != 20 || report.Upserted != 20 || report.Batches != 3 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestLoad_ExactMultiple(t *testing.T) {
	store := &fakeUpserter{}
	svc := New(store, "neural-search", zap.NewNop())

	report, err := svc.Load(context.Background(), makeRecords(10), 5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if report.Batches != 2 || report.Upserted != 10 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestLoad_FailsFastOnBatchError(t *testing.T) {
	store := &fakeUpserter{failAt: 2}
	svc := New(store, "neural-search", zap.NewNop())

	report, err := svc.Load(context.Background(), makeRecords(20), 7)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUpsert) {
		t.Errorf("expected ErrUpsert, got %v", err)
	}

	var upsertErr *domain.UpsertError
	if !errors.As(err, &upsertErr) {
		t.Fatalf("expected *domain.UpsertError, got %T", err)
	}
	if upsertErr.Batch != 2 {
		t.Errorf("expected failing batch 2, got %d", upsertErr.Batch)
	}

	// Batch 3 must never be sent.
	if len(store.batches) != 2 {
		t.Errorf("expected 2 upsert calls, got %d", len(store.batches))
	}
	if report.Upserted != 7 || report.Batches != 1 {
		t.Errorf("expected partial report {Upserted:7 Batches:1}, got %+v", report)
	}
}

func TestLoad_EmptyRecords(t *testing.T) {
	store := &fakeUpserter{}
	svc := New(store, "neural-search", zap.NewNop())

	report, err := svc.Load(context.Background(), nil, 100)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(store.batches) != 0 {
		t.Errorf("expected no upsert calls, got %d", len(store.batches))
	}
	if report.Attempted != 0 || report.Upserted != 0 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	svc := New(&fakeUpserter{}, "neural-search", zap.NewNop())

	for _, size := range []int{0, -1} {
		_, err := svc.Load(context.Background(), makeRecords(3), size)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("batch size %d: expected ErrValidation, got %v", size, err)
		}
	}
}
