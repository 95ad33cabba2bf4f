package rewards

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/blang/semver/v4"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/shopspring/decimal"
)

// Rounding selects how fractional micro-units are resolved.
type Rounding string

const (
	RoundFloor  Rounding = "floor"
	RoundHalfUp Rounding = "half-up"
)

const (
	// MicroUnits per whole token.
	MicroUnits = 1_000_000
	tokenExp   = -6

	DefaultMinScore   = 5.0
	DefaultMinVersion = "3.18.0"
)

// Params configures a reward calculation. Pools are in micro-units.
type Params struct {
	BlockPool  uint64
	HealthPool uint64
	// MinScore is the lowest health score that qualifies a node.
	MinScore float64
	// MinVersion is the lowest node version that qualifies. Empty disables
	// the check.
	MinVersion string
	Rounding   Rounding
}

// DefaultParams returns the production thresholds with floor rounding.
func DefaultParams(blockPool, healthPool uint64) Params {
	return Params{
		BlockPool:  blockPool,
		HealthPool: healthPool,
		MinScore:   DefaultMinScore,
		MinVersion: DefaultMinVersion,
		Rounding:   RoundFloor,
	}
}

// Result is the outcome of Calculate.
type Result struct {
	Lines []model.RewardLine
	// HealthyNodes is the corrected node count the health pool was split by.
	HealthyNodes decimal.Decimal
	Summary      Summary
}

type rewardNote struct {
	BlockRewards  json.Number `json:"blockRewards"`
	HealthRewards json.Number `json:"healthRewards"`
}

type calculator struct {
	params     Params
	minVersion *semver.Version
	blacklist  model.AddressSet
}

// Calculate splits the block pool by block share and the health pool by
// qualifying node. Blacklisted addresses get nothing and do not count toward
// either denominator. Lines are ordered by block count descending, then
// address, and include zero-amount lines.
func Calculate(tally model.Tally, health model.HealthReport, blacklist model.AddressSet, params Params) (Result, error) {
	c, err := newCalculator(params, blacklist)
	if err != nil {
		return Result{}, err
	}

	counts := make(map[string]uint64, len(tally.Entries))
	var totalBlocks uint64
	for _, e := range tally.Entries {
		if c.blacklist.Contains(e.Address) {
			continue
		}
		counts[e.Address] += e.BlockCount
		totalBlocks += e.BlockCount
	}

	healthy := c.healthyNodes(health)
	selected := make(map[string]model.HealthRecord)
	for addr, recs := range health.Addresses {
		if c.blacklist.Contains(addr) {
			continue
		}
		if rec, ok := c.selectNode(recs); ok {
			selected[addr] = rec
		}
		if _, ok := counts[addr]; !ok {
			counts[addr] = 0
		}
	}

	lines := make([]model.RewardLine, 0, len(counts))
	for addr, n := range counts {
		line := model.RewardLine{
			Address:     addr,
			BlockCount:  n,
			BlockReward: c.blockShare(n, totalBlocks),
		}
		if rec, ok := selected[addr]; ok {
			line.HealthReward = c.healthShare(healthy, rec.Divisor)
		}
		note, err := rewardNoteJSON(line)
		if err != nil {
			return Result{}, err
		}
		line.Note = note
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].BlockCount != lines[j].BlockCount {
			return lines[i].BlockCount > lines[j].BlockCount
		}
		return lines[i].Address < lines[j].Address
	})

	return Result{
		Lines:        lines,
		HealthyNodes: healthy,
		Summary:      Summarize(lines, totalBlocks, params),
	}, nil
}

func newCalculator(params Params, blacklist model.AddressSet) (*calculator, error) {
	if params.Rounding == "" {
		params.Rounding = RoundFloor
	}
	if params.Rounding != RoundFloor && params.Rounding != RoundHalfUp {
		return nil, fmt.Errorf("%w: unknown rounding mode %q", model.ErrConfiguration, params.Rounding)
	}
	c := &calculator{params: params, blacklist: blacklist}
	if params.MinVersion != "" {
		v, err := semver.ParseTolerant(params.MinVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: minimum node version: %w", model.ErrConfiguration, err)
		}
		c.minVersion = &v
	}
	return c, nil
}

func (c *calculator) qualifies(rec model.HealthRecord) bool {
	if rec.Score < c.params.MinScore {
		return false
	}
	if c.minVersion == nil {
		return true
	}
	v, err := semver.ParseTolerant(rec.Version)
	if err != nil {
		return false
	}
	return v.GTE(*c.minVersion)
}

// qualifying returns the qualifying nodes ordered by divisor, then host.
func (c *calculator) qualifying(recs []model.HealthRecord) []model.HealthRecord {
	var out []model.HealthRecord
	for _, r := range recs {
		if c.qualifies(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Divisor != out[j].Divisor {
			return out[i].Divisor < out[j].Divisor
		}
		return out[i].Host < out[j].Host
	})
	return out
}

// selectNode picks the qualifying node with the smallest divisor.
func (c *calculator) selectNode(recs []model.HealthRecord) (model.HealthRecord, bool) {
	q := c.qualifying(recs)
	if len(q) == 0 {
		return model.HealthRecord{}, false
	}
	return q[0], true
}

// healthyNodes is the feed's healthy count less empty nodes, less 1/divisor
// for every qualifying node beyond the first behind one address, less
// unshared healthy nodes of blacklisted addresses.
func (c *calculator) healthyNodes(h model.HealthReport) decimal.Decimal {
	count := decimal.NewFromInt(int64(h.HealthyNodeCount - h.EmptyNodeCount))
	for addr, recs := range h.Addresses {
		if c.blacklist.Contains(addr) {
			for _, r := range recs {
				if r.Divisor == 1 && r.Score >= c.params.MinScore {
					count = count.Sub(decimal.NewFromInt(1))
				}
			}
			continue
		}
		q := c.qualifying(recs)
		for _, r := range q[min(1, len(q)):] {
			count = count.Sub(decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(r.Divisor))))
		}
	}
	return count
}

func (c *calculator) blockShare(blocks, total uint64) uint64 {
	if total == 0 || blocks == 0 {
		return 0
	}
	num := decimal.NewFromUint64(blocks).Mul(decimal.NewFromUint64(c.params.BlockPool))
	den := decimal.NewFromUint64(total)
	q, r := num.QuoRem(den, 0)
	if c.params.Rounding == RoundHalfUp && r.Mul(decimal.NewFromInt(2)).GreaterThanOrEqual(den) {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.BigInt().Uint64()
}

func (c *calculator) healthShare(healthy decimal.Decimal, divisor int) uint64 {
	if !healthy.IsPositive() || divisor < 1 || c.params.HealthPool == 0 {
		return 0
	}
	share := decimal.NewFromUint64(c.params.HealthPool).Div(healthy.Mul(decimal.NewFromInt(int64(divisor))))
	if c.params.Rounding == RoundHalfUp {
		share = share.Round(0)
	} else {
		share = share.Floor()
	}
	return share.BigInt().Uint64()
}

func rewardNoteJSON(line model.RewardLine) (string, error) {
	b, err := json.Marshal(rewardNote{
		BlockRewards:  json.Number(Tokens(line.BlockReward).String()),
		HealthRewards: json.Number(Tokens(line.HealthReward).String()),
	})
	if err != nil {
		return "", fmt.Errorf("encode reward note: %w", err)
	}
	return string(b), nil
}

// Tokens converts micro-units to whole tokens.
func Tokens(micro uint64) decimal.Decimal {
	return decimal.NewFromUint64(micro).Shift(tokenExp)
}

// ParseTokens converts a whole-token amount such as "1500.25" to micro-units.
func ParseTokens(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: token amount %q: %w", model.ErrConfiguration, s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: token amount %q is negative", model.ErrConfiguration, s)
	}
	micro := d.Shift(-tokenExp)
	if !micro.Equal(micro.Truncate(0)) {
		return 0, fmt.Errorf("%w: token amount %q has more than 6 decimals", model.ErrConfiguration, s)
	}
	if !micro.BigInt().IsUint64() {
		return 0, fmt.Errorf("%w: token amount %q overflows", model.ErrConfiguration, s)
	}
	return micro.BigInt().Uint64(), nil
}
