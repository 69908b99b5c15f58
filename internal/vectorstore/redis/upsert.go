package redis

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/redis/rueidis"

	"github.com/neuralquery/neuralquery/internal/domain"
	"github.com/neuralquery/neuralquery/internal/vectorstore"
)

// Upsert writes records as hashes in a single pipeline. The whole batch is
// treated as one remote operation: the first failed command fails the batch.
func (s *Store) Upsert(ctx context.Context, index string, records []domain.UpsertRecord) error {
	if len(records) == 0 {
		return nil
	}

	cmds := make(rueidis.Commands, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.ID == "" {
			return fmt.Errorf("record %d: id is required", i)
		}

		meta, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("record %q: marshal metadata: %w", r.ID, err)
		}

		cmd := s.b().Hset().Key(s.docPrefix(index) + r.ID).
			FieldValue().
			FieldValue(vectorField, vectorToBytes(r.Vector)).
			FieldValue(metadataField, string(meta)).
			Build()
		cmds = append(cmds, cmd)
	}

	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return &vectorstore.Error{Op: vectorstore.OpUpsert, Err: err}
		}
	}
	return nil
}

// vectorToBytes encodes a vector as a little-endian FLOAT32 blob.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
