package domain

import (
	"errors"
	"testing"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    Metric
		wantErr bool
	}{
		{"cosine", MetricCosine, false},
		{"euclidean", MetricEuclidean, false},
		{"dot", MetricDot, false},
		{"manhattan", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseMetric(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMetric(%q): expected error", tc.in)
			} else if !errors.Is(err, ErrConfiguration) {
				t.Errorf("ParseMetric(%q): expected ErrConfiguration, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMetric(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseMetric(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIndexDescriptor_Validate(t *testing.T) {
	valid := IndexDescriptor{Name: "neural-search", Dimension: 384, Metric: MetricCosine, Region: "us-east-1"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []IndexDescriptor{
		{Name: "", Dimension: 384, Metric: MetricCosine},
		{Name: "x", Dimension: 0, Metric: MetricCosine},
		{Name: "x", Dimension: -1, Metric: MetricCosine},
		{Name: "x", Dimension: 384, Metric: "chebyshev"},
	}
	for _, d := range cases {
		if err := d.Validate(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("Validate(%+v): expected ErrConfiguration, got %v", d, err)
		}
	}
}
