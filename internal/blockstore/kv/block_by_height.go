package kv

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	bolt "go.etcd.io/bbolt"
)

// BlockByHeight returns the stored block at height and whether it exists.
func (s *Store) BlockByHeight(ctx context.Context, height uint64) (block model.BlockRecord, found bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("block_by_height", s.network, err, start)
	}()

	if err := ctx.Err(); err != nil {
		return model.BlockRecord{}, false, err
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(s.bucket).Get(heightKey(height))
		if data == nil {
			return nil
		}
		block, err = unmarshalBlock(s.network, height, data)
		found = err == nil
		return err
	})
	return block, found, err
}
