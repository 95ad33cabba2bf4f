package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

type nodeDoc struct {
	Host    *string  `json:"node_host"`
	Name    *string  `json:"node_name"`
	Score   *float64 `json:"health_score"`
	Divisor *int     `json:"health_divisor"`
	Hours   *int     `json:"health_hours"`
	Version *string  `json:"ver"`
}

type countsDoc struct {
	TotalNodeCount   *int `json:"total_node_count"`
	HealthyNodeCount *int `json:"healthy_node_count"`
	EmptyNodeCount   *int `json:"empty_node_count"`
	QualifyNodeCount *int `json:"qualify_node_count"`
}

type healthDoc struct {
	Addresses map[string][]nodeDoc `json:"addresses"`
	countsDoc
}

func (n nodeDoc) record(address string) (model.HealthRecord, error) {
	switch {
	case n.Host == nil:
		return model.HealthRecord{}, missing("node_host")
	case n.Score == nil:
		return model.HealthRecord{}, missing("health_score")
	case n.Divisor == nil:
		return model.HealthRecord{}, missing("health_divisor")
	case *n.Divisor < 1:
		return model.HealthRecord{}, fmt.Errorf("%w: node %s health_divisor %d < 1", model.ErrConfiguration, *n.Host, *n.Divisor)
	}
	rec := model.HealthRecord{
		Address: address,
		Host:    *n.Host,
		Score:   *n.Score,
		Divisor: *n.Divisor,
	}
	if n.Name != nil {
		rec.Name = *n.Name
	}
	if n.Hours != nil {
		rec.Hours = *n.Hours
	}
	if n.Version != nil {
		rec.Version = *n.Version
	}
	return rec, nil
}

func (c countsDoc) apply(r *model.HealthReport) error {
	switch {
	case c.TotalNodeCount == nil:
		return missing("total_node_count")
	case c.HealthyNodeCount == nil:
		return missing("healthy_node_count")
	case c.EmptyNodeCount == nil:
		return missing("empty_node_count")
	case c.QualifyNodeCount == nil:
		return missing("qualify_node_count")
	}
	r.TotalNodeCount = *c.TotalNodeCount
	r.HealthyNodeCount = *c.HealthyNodeCount
	r.EmptyNodeCount = *c.EmptyNodeCount
	r.QualifyNodeCount = *c.QualifyNodeCount
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: feed field %q missing", model.ErrConfiguration, field)
}

func convertNodes(address string, docs []nodeDoc) ([]model.HealthRecord, error) {
	out := make([]model.HealthRecord, 0, len(docs))
	for _, d := range docs {
		rec, err := d.record(address)
		if err != nil {
			return nil, fmt.Errorf("address %s: %w", address, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Health returns the node health snapshot for the week containing day.
// Addresses in blacklist are forwarded so the feed strips them from node
// address lists.
func (c *Client) Health(ctx context.Context, day time.Time, blacklist []string) (report model.HealthReport, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("feed_health", err, started)
	}()

	q := url.Values{
		"action": {"health"},
		"date":   {day.UTC().Format("20060102")},
	}
	if len(blacklist) > 0 {
		q.Set("blacklist", strings.Join(blacklist, ","))
	}

	var doc healthDoc
	if err := c.get(ctx, c.statsURL, q, &doc); err != nil {
		return model.HealthReport{}, fmt.Errorf("get health feed: %w", err)
	}
	if doc.Addresses == nil {
		return model.HealthReport{}, fmt.Errorf("get health feed: %w", missing("addresses"))
	}

	report.Addresses = make(map[string][]model.HealthRecord, len(doc.Addresses))
	for addr, nodes := range doc.Addresses {
		recs, err := convertNodes(addr, nodes)
		if err != nil {
			return model.HealthReport{}, fmt.Errorf("get health feed: %w", err)
		}
		report.Addresses[addr] = recs
	}
	if err := doc.countsDoc.apply(&report); err != nil {
		return model.HealthReport{}, fmt.Errorf("get health feed: %w", err)
	}
	return report, nil
}
