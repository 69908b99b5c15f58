package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/vectorstore"
)

// vectorField is the hash field holding the FLOAT32 blob.
const vectorField = "vector"

// metadataField is the hash field holding the metadata JSON.
const metadataField = "metadata"

// CreateIndex creates an FT index shaped by the descriptor. The Region field
// is carried for store portability and ignored by this backend.
func (s *Store) CreateIndex(ctx context.Context, desc domain.IndexDescriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}

	args := []string{
		desc.Name,
		"ON", "HASH",
		"PREFIX", "1", s.docPrefix(desc.Name),
		"SCHEMA",
		vectorField, "VECTOR", "FLAT", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(desc.Dimension),
		"DISTANCE_METRIC", string(metricToRedis(desc.Metric)),
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return vectorstore.ErrIndexExists
		}
		return &vectorstore.Error{Op: vectorstore.OpCreateIndex, Err: err}
	}
	return nil
}

// DeleteIndex removes an FT index and its documents (DD).
func (s *Store) DeleteIndex(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(name, "DD").Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return vectorstore.ErrIndexNotFound
		}
		return &vectorstore.Error{Op: vectorstore.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &vectorstore.Error{Op: vectorstore.OpIndexInfo, Err: err}
	}
	return true, nil
}

// ListIndexes returns all FT index names via FT._LIST.
func (s *Store) ListIndexes(ctx context.Context) ([]string, error) {
	cmd := s.b().Arbitrary("FT._LIST").Build()
	arr, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &vectorstore.Error{Op: vectorstore.OpIndexList, Err: err}
	}

	names := make([]string, 0, len(arr))
	for _, m := range arr {
		if name, err := m.ToString(); err == nil {
			names = append(names, name)
		}
	}
	return names, nil
}

// DescribeIndex reads the vector field dimension and metric via FT.INFO.
func (s *Store) DescribeIndex(ctx context.Context, name string) (vectorstore.IndexInfo, error) {
	arr, err := s.info(ctx, name)
	if err != nil {
		return vectorstore.IndexInfo{}, err
	}

	info := vectorstore.IndexInfo{Name: name}

	// FT.INFO returns alternating key-value pairs at the top level.
	for i := 0; i+1 < len(arr); i += 2 {
		key, err := arr[i].ToString()
		if err != nil || key != "attributes" {
			continue
		}
		attrs, err := arr[i+1].ToArray()
		if err != nil {
			continue
		}
		dim, metric := parseVectorAttribute(attrs)
		info.Dimension = dim
		info.Metric = metric
	}

	if info.Dimension == 0 {
		return vectorstore.IndexInfo{}, fmt.Errorf(
			"index %q has no vector attribute: %w", name, vectorstore.ErrIndexNotFound,
		)
	}
	return info, nil
}

// DescribeIndexStats reads num_docs via FT.INFO.
func (s *Store) DescribeIndexStats(ctx context.Context, name string) (vectorstore.IndexStats, error) {
	arr, err := s.info(ctx, name)
	if err != nil {
		return vectorstore.IndexStats{}, err
	}

	for i := 0; i+1 < len(arr); i += 2 {
		key, err := arr[i].ToString()
		if err != nil || key != "num_docs" {
			continue
		}
		n, err := msgToInt(arr[i+1])
		if err != nil {
			return vectorstore.IndexStats{}, fmt.Errorf("parse num_docs: %w", err)
		}
		return vectorstore.IndexStats{TotalVectorCount: n}, nil
	}
	return vectorstore.IndexStats{}, nil
}

func (s *Store) info(ctx context.Context, name string) ([]rueidis.RedisMessage, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	arr, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, vectorstore.ErrIndexNotFound
		}
		return nil, &vectorstore.Error{Op: vectorstore.OpIndexInfo, Err: err}
	}
	return arr, nil
}

// parseVectorAttribute scans the attributes array for the vector field and
// extracts its DIM and DISTANCE_METRIC. Attribute layout varies across
// Redis/Valkey versions, so pairs are matched case-insensitively.
func parseVectorAttribute(attrs []rueidis.RedisMessage) (int, domain.Metric) {
	for _, attr := range attrs {
		fields, err := attr.ToArray()
		if err != nil {
			continue
		}

		var dim int
		var metric domain.Metric
		isVector := false

		for j := 0; j+1 < len(fields); j++ {
			key, err := fields[j].ToString()
			if err != nil {
				continue
			}
			switch strings.ToLower(key) {
			case "type":
				if v, err := fields[j+1].ToString(); err == nil && strings.EqualFold(v, "VECTOR") {
					isVector = true
				}
			case "dim":
				if n, err := msgToInt(fields[j+1]); err == nil {
					dim = n
				}
			case "distance_metric":
				if v, err := fields[j+1].ToString(); err == nil {
					metric = metricFromRedis(v)
				}
			}
		}

		if isVector && dim > 0 {
			return dim, metric
		}
	}
	return 0, ""
}

// redisMetric is the DISTANCE_METRIC argument of FT.CREATE.
type redisMetric string

const (
	metricCosine redisMetric = "COSINE"
	metricL2     redisMetric = "L2"
	metricIP     redisMetric = "IP"
)

func metricToRedis(m domain.Metric) redisMetric {
	switch m {
	case domain.MetricEuclidean:
		return metricL2
	case domain.MetricDot:
		return metricIP
	default:
		return metricCosine
	}
}

func metricFromRedis(s string) domain.Metric {
	switch redisMetric(strings.ToUpper(s)) {
	case metricL2:
		return domain.MetricEuclidean
	case metricIP:
		return domain.MetricDot
	default:
		return domain.MetricCosine
	}
}

// msgToInt reads an integer RESP value that may arrive as int or string.
func msgToInt(m rueidis.RedisMessage) (int, error) {
	if n, err := m.AsInt64(); err == nil {
		return int(n), nil
	}
	str, err := m.ToString()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
