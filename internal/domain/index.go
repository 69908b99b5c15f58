package domain

import "fmt"

// Metric is the distance metric of a vector index.
type Metric string

const (
	// MetricCosine is cosine similarity.
	MetricCosine Metric = "cosine"
	// MetricEuclidean is L2 distance.
	MetricEuclidean Metric = "euclidean"
	// MetricDot is inner product.
	MetricDot Metric = "dot"
)

// ParseMetric validates a metric name from configuration.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCosine, MetricEuclidean, MetricDot:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("unknown metric %q: %w", s, ErrConfiguration)
	}
}

// IndexDescriptor is the required shape of a remote vector index.
// The store owns the authoritative state; the service holds only this requirement.
type IndexDescriptor struct {
	Name      string
	Dimension int
	Metric    Metric
	Region    string
}

// Validate checks that the descriptor is usable for reconciliation.
func (d IndexDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("index name is required: %w", ErrConfiguration)
	}
	if d.Dimension <= 0 {
		return fmt.Errorf("index dimension must be positive, got %d: %w", d.Dimension, ErrConfiguration)
	}
	if _, err := ParseMetric(string(d.Metric)); err != nil {
		return err
	}
	return nil
}
