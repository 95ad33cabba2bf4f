// Package kv is the embedded BlockStore backed by a bbolt file. Heights are
// stored big-endian so cursor order is height order.
package kv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	bolt "go.etcd.io/bbolt"
)

const (
	// DatabaseFileName is the default name of the store file.
	DatabaseFileName = "blocks.db"

	boltAllocSize = 8 * 1024 * 1024
)

var (
	// ErrConflict is returned when a stored height is replayed with a different proposer.
	ErrConflict = errors.New("block record conflict")
	// ErrLocked is returned when another process holds the store file.
	ErrLocked = errors.New("cannot obtain database lock, database may be in use by another process")
)

type (
	// Metrics records store operation outcomes.
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}
)

// Store is a height-indexed block store for one network.
type Store struct {
	db      *bolt.DB
	network model.Network
	bucket  []byte
	meta    []byte
	metrics Metrics
}

// Open opens or creates the store file at path. The file is locked for the
// lifetime of the Store; a second Open of the same file, from this or another
// process, fails with ErrLocked.
func Open(path string, network model.Network, metrics Metrics) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("open %s: %w", path, ErrLocked)
		}
		return nil, fmt.Errorf("open block store: %w", err)
	}
	db.AllocSize = boltAllocSize

	s := &Store{
		db:      db,
		network: network,
		bucket:  []byte("blocks_" + string(network)),
		meta:    []byte("meta_" + string(network)),
		metrics: metrics,
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(s.bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(s.meta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func heightKey(h uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, h)
	return k
}

func keyHeight(k []byte) uint64 {
	return binary.BigEndian.Uint64(k)
}
