package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	if cfg.Index.Name != "neural-search" {
		t.Errorf("expected default index name, got %q", cfg.Index.Name)
	}
	if cfg.Index.Dimension != 384 {
		t.Errorf("expected default dimension 384, got %d", cfg.Index.Dimension)
	}
	if cfg.Index.Metric != "cosine" {
		t.Errorf("expected default metric cosine, got %q", cfg.Index.Metric)
	}
	if cfg.Index.BatchSize != 100 {
		t.Errorf("expected default batch size 100, got %d", cfg.Index.BatchSize)
	}
	if cfg.Search.DefaultTopK != 3 {
		t.Errorf("expected default top_k 3, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Embedding.Dimensions != cfg.Index.Dimension {
		t.Errorf("embedding dimensions should default to index dimension, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Index.DeletePollSec != 1 || cfg.Index.DeletePollLimit != 60 {
		t.Errorf("unexpected delete poll defaults: %d/%d", cfg.Index.DeletePollSec, cfg.Index.DeletePollLimit)
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}
}

func TestValidate_NoAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing addrs")
	}
}

func TestValidate_BadMetric(t *testing.T) {
	cfg := validConfig()
	cfg.Index.Metric = "hamming"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown metric")
	}
	if !strings.Contains(err.Error(), "hamming") {
		t.Errorf("error should name the bad metric: %v", err)
	}
}

func TestValidate_DimensionMismatch(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = 768
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for embedding/index dimension mismatch")
	}
}

func TestIndexDescriptor(t *testing.T) {
	cfg := validConfig()
	d := cfg.IndexDescriptor()
	if d.Name != "neural-search" || d.Dimension != 384 || string(d.Metric) != "cosine" || d.Region != "us-east-1" {
		t.Errorf("unexpected descriptor: %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("descriptor from defaults should validate: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NQ_TEST_KEY", "secret")

	in := []byte("api_key: ${NQ_TEST_KEY}\nbase_url: ${NQ_TEST_MISSING:-https://fallback}\n")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "api_key: secret") {
		t.Errorf("expected env substitution, got %q", out)
	}
	if !strings.Contains(out, "base_url: https://fallback") {
		t.Errorf("expected default substitution, got %q", out)
	}
}
