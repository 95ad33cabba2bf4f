package kv

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	bolt "go.etcd.io/bbolt"
)

// UpsertBlocks writes blocks in one transaction. Replaying a stored height
// with the same record is a no-op; a different proposer is ErrConflict and
// nothing in the batch is written.
func (s *Store) UpsertBlocks(ctx context.Context, blocks []model.BlockRecord) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("upsert_blocks", s.network, err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(s.bucket)
		for _, b := range blocks {
			data, err := marshalBlock(b)
			if err != nil {
				return err
			}
			key := heightKey(b.Height)
			if existing := bkt.Get(key); existing != nil {
				if bytes.Equal(existing, data) {
					continue
				}
				prev, err := unmarshalBlock(s.network, b.Height, existing)
				if err != nil {
					return err
				}
				if prev.Proposer != b.Proposer {
					return fmt.Errorf("%w: height %d stored proposer %s, got %s", ErrConflict, b.Height, prev.Proposer, b.Proposer)
				}
			}
			if err := bkt.Put(key, data); err != nil {
				return fmt.Errorf("put block %d: %w", b.Height, err)
			}
		}
		return s.advanceWatermark(tx)
	})
}
