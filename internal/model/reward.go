package model

// ProposerTallyEntry counts the blocks an address proposed within an epoch.
type ProposerTallyEntry struct {
	Address    string
	BlockCount uint64
}

// Tally is the immutable result of counting proposers over a range.
type Tally struct {
	Range       EpochRange
	Entries     []ProposerTallyEntry
	TotalBlocks uint64
	// Skipped counts blocks whose proposer was blacklisted.
	Skipped uint64
}

// Counts returns the tally keyed by address.
func (t Tally) Counts() map[string]uint64 {
	out := make(map[string]uint64, len(t.Entries))
	for _, e := range t.Entries {
		out[e.Address] = e.BlockCount
	}
	return out
}

// HealthRecord is one node's liveness entry mapped to a reward address.
type HealthRecord struct {
	Address string
	Host    string
	Name    string
	Score   float64
	// Divisor is the number of reward addresses sharing the node.
	Divisor int
	Hours   int
	Version string
}

// HealthReport is the validated health feed snapshot.
type HealthReport struct {
	Addresses        map[string][]HealthRecord
	TotalNodeCount   int
	HealthyNodeCount int
	EmptyNodeCount   int
	QualifyNodeCount int
}

// RewardLine is the computed payout for one proposer, in micro-units.
type RewardLine struct {
	Address      string
	BlockCount   uint64
	BlockReward  uint64
	HealthReward uint64
	Note         string
}

// TokenAmount is the total payout of the line.
func (l RewardLine) TokenAmount() uint64 {
	return l.BlockReward + l.HealthReward
}
