package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/vectorstore"
)

// scoreField is the FT.SEARCH alias of the KNN distance.
const scoreField = "__vector_score"

// Query runs a KNN similarity search via FT.SEARCH. Matches preserve the
// store's ranking order. For cosine indexes the reported score is the
// similarity 1 - distance, so higher means more similar.
func (s *Store) Query(
	ctx context.Context, index string,
	vector []float32, topK int, includeMetadata bool,
) ([]domain.SearchMatch, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	args := []string{
		index,
		fmt.Sprintf("*=>[KNN %d @%s $BLOB AS %s]", topK, vectorField, scoreField),
	}

	if includeMetadata {
		args = append(args, "RETURN", "2", scoreField, metadataField)
	} else {
		args = append(args, "RETURN", "1", scoreField)
	}

	args = append(args,
		"SORTBY", scoreField,
		"LIMIT", "0", strconv.Itoa(topK),
		"PARAMS", "2", "BLOB", vectorToBytes(vector),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") {
			return nil, vectorstore.ErrIndexNotFound
		}
		return nil, &vectorstore.Error{Op: vectorstore.OpSearch, Err: err}
	}

	return s.parseKNNResult(index, raw)
}

func (s *Store) parseKNNResult(index string, raw []rueidis.RedisMessage) ([]domain.SearchMatch, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	prefix := s.docPrefix(index)
	matches := make([]domain.SearchMatch, 0, total)

	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fieldArr, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		fields := parseFieldPairs(fieldArr)

		match := domain.SearchMatch{ID: strings.TrimPrefix(key, prefix)}

		if distStr, ok := fields[scoreField]; ok {
			if dist, err := strconv.ParseFloat(distStr, 64); err == nil {
				match.Score = 1.0 - dist // cosine distance -> similarity in [-1,1]
			}
		}

		if metaStr, ok := fields[metadataField]; ok && metaStr != "" {
			meta := map[string]string{}
			if err := json.Unmarshal([]byte(metaStr), &meta); err == nil {
				match.Metadata = meta
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

func parseFieldPairs(arr []rueidis.RedisMessage) map[string]string {
	fields := make(map[string]string, len(arr)/2)
	for i := 0; i+1 < len(arr); i += 2 {
		k, err := arr[i].ToString()
		if err != nil {
			continue
		}
		v, err := arr[i+1].ToString()
		if err != nil {
			continue
		}
		fields[k] = v
	}
	return fields
}
