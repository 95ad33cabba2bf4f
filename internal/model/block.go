// Package model defines domain models for proposer reward attribution and payout.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Network names the ledger a store or client talks to.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// BlockRecord attributes a block height to the account that proposed it.
// Records are immutable once written: replaying a height with the same
// proposer is a no-op.
type BlockRecord struct {
	Network   Network
	Height    uint64
	Proposer  string
	Timestamp time.Time
}

// EpochRange is an inclusive height range bounded by two block timestamps.
type EpochRange struct {
	StartHeight uint64
	EndHeight   uint64
	StartTime   time.Time
	EndTime     time.Time
}

// Validate checks the start <= end invariant.
func (r EpochRange) Validate() error {
	if r.StartHeight == 0 {
		return errors.New("epoch start height must be positive")
	}
	if r.StartHeight > r.EndHeight {
		return fmt.Errorf("epoch start height %d is after end height %d", r.StartHeight, r.EndHeight)
	}
	return nil
}

// Blocks returns the number of heights covered by the range.
func (r EpochRange) Blocks() uint64 {
	if r.EndHeight < r.StartHeight {
		return 0
	}
	return r.EndHeight - r.StartHeight + 1
}
