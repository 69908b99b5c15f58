// Package domain holds the core types shared between layers: documents,
// vectors, index descriptors, and the embedding contract.
package domain

// Document is a corpus entry before embedding. Immutable after creation.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// UpsertRecord is one (id, vector, metadata) triple prepared for ingestion.
// Transient: constructed per run, consumed by the batch loader.
type UpsertRecord struct {
	ID       string
	Vector   []float32
	Metadata map[string]string
}

// SearchMatch is a single ranked hit returned by the vector store.
// Score semantics depend on the index metric; with cosine, higher is more similar.
type SearchMatch struct {
	ID       string
	Score    float64
	Metadata map[string]string
}
