package kv

import (
	"context"
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"
)

var contiguousKey = []byte("contiguous")

// MaxContiguousBlockHeight returns the highest h such that every height in
// 1..h is stored, or 0 when height 1 is missing. Blocks stored above a gap
// do not count.
func (s *Store) MaxContiguousBlockHeight(ctx context.Context) (height uint64, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("max_contiguous_block_height", s.network, err, start)
	}()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		height = s.contiguousFrom(tx, s.watermark(tx))
		return nil
	})
	return height, err
}

// watermark is the last contiguous height persisted by UpsertBlocks.
func (s *Store) watermark(tx *bolt.Tx) uint64 {
	v := tx.Bucket(s.meta).Get(contiguousKey)
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

// contiguousFrom walks the cursor upward from a known contiguous height.
func (s *Store) contiguousFrom(tx *bolt.Tx, from uint64) uint64 {
	c := tx.Bucket(s.bucket).Cursor()
	next := from + 1
	for k, _ := c.Seek(heightKey(next)); k != nil && keyHeight(k) == next; k, _ = c.Next() {
		from = next
		next++
	}
	return from
}

func (s *Store) advanceWatermark(tx *bolt.Tx) error {
	prev := s.watermark(tx)
	h := s.contiguousFrom(tx, prev)
	if h == prev {
		return nil
	}
	return tx.Bucket(s.meta).Put(contiguousKey, heightKey(h))
}
