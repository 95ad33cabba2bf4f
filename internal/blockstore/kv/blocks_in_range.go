package kv

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	bolt "go.etcd.io/bbolt"
)

// BlocksInRange returns stored blocks with from <= height <= to in height
// order. Missing heights are simply absent from the result.
func (s *Store) BlocksInRange(ctx context.Context, from, to uint64) (blocks []model.BlockRecord, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("blocks_in_range", s.network, err, start)
	}()

	if from > to {
		return nil, nil
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.Seek(heightKey(from)); k != nil; k, v = c.Next() {
			h := keyHeight(k)
			if h > to {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := unmarshalBlock(s.network, h, v)
			if err != nil {
				return err
			}
			blocks = append(blocks, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}
