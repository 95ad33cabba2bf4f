package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

type proposerDoc struct {
	Proposer   *string   `json:"proposer"`
	BlockCount *uint64   `json:"block_count"`
	Nodes      []nodeDoc `json:"nodes"`
}

type statisticsDoc struct {
	Data         []proposerDoc `json:"data"`
	BlockHeight  *uint64       `json:"block_height"`
	MinimumAlgod string        `json:"minimum_algod"`
	countsDoc
}

// Statistics is a precomputed per-proposer aggregate for a date window,
// with the health snapshot of the nodes behind each proposer.
type Statistics struct {
	Entries []model.ProposerTallyEntry
	Health  model.HealthReport
	// BlockHeight is the highest height the feed has indexed.
	BlockHeight uint64
	// MinimumVersion is the node version floor the feed applied.
	MinimumVersion string
}

// Statistics returns block counts per proposer between two UTC dates,
// inclusive. Addresses in blacklist are excluded by the feed.
func (c *Client) Statistics(ctx context.Context, start, end time.Time, blacklist []string) (stats Statistics, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("feed_statistics", err, started)
	}()

	q := url.Values{
		"start": {start.UTC().Format(clock.DayLayout)},
		"end":   {end.UTC().Format(clock.DayLayout)},
	}
	if len(blacklist) > 0 {
		q.Set("blacklist", strings.Join(blacklist, ","))
	}

	var doc statisticsDoc
	if err := c.get(ctx, c.statsURL, q, &doc); err != nil {
		return Statistics{}, fmt.Errorf("get statistics feed: %w", err)
	}
	if doc.Data == nil {
		return Statistics{}, fmt.Errorf("get statistics feed: %w", missing("data"))
	}

	stats.Health.Addresses = make(map[string][]model.HealthRecord, len(doc.Data))
	for _, p := range doc.Data {
		if p.Proposer == nil {
			return Statistics{}, fmt.Errorf("get statistics feed: %w", missing("proposer"))
		}
		if p.BlockCount == nil {
			return Statistics{}, fmt.Errorf("get statistics feed: %w", missing("block_count"))
		}
		stats.Entries = append(stats.Entries, model.ProposerTallyEntry{Address: *p.Proposer, BlockCount: *p.BlockCount})
		if len(p.Nodes) == 0 {
			continue
		}
		recs, err := convertNodes(*p.Proposer, p.Nodes)
		if err != nil {
			return Statistics{}, fmt.Errorf("get statistics feed: %w", err)
		}
		stats.Health.Addresses[*p.Proposer] = recs
	}
	if err := doc.countsDoc.apply(&stats.Health); err != nil {
		return Statistics{}, fmt.Errorf("get statistics feed: %w", err)
	}
	if doc.BlockHeight != nil {
		stats.BlockHeight = *doc.BlockHeight
	}
	stats.MinimumVersion = doc.MinimumAlgod
	return stats, nil
}
