package feed

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type ballastDoc struct {
	Bparts map[string]any `json:"bparts"`
	Bots   map[string]any `json:"bots"`
}

// Blacklist returns the addresses the statistics service excludes.
func (c *Client) Blacklist(ctx context.Context) (addresses []string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("feed_blacklist", err, started)
	}()

	if err := c.get(ctx, c.statsURL, url.Values{"action": {"blacklist"}}, &addresses); err != nil {
		return nil, fmt.Errorf("get blacklist feed: %w", err)
	}
	return addresses, nil
}

// Ballast returns the consensus ballast and bot addresses. It returns nil
// when no ballast url is configured.
func (c *Client) Ballast(ctx context.Context) (addresses []string, err error) {
	if c.ballast == "" {
		return nil, nil
	}
	started := time.Now()
	defer func() {
		c.metrics.Observe("feed_ballast", err, started)
	}()

	var doc ballastDoc
	if err := c.get(ctx, c.ballast, nil, &doc); err != nil {
		return nil, fmt.Errorf("get ballast feed: %w", err)
	}
	if doc.Bparts == nil && doc.Bots == nil {
		return nil, fmt.Errorf("get ballast feed: %w", missing("bparts"))
	}
	for addr := range doc.Bparts {
		addresses = append(addresses, addr)
	}
	for addr := range doc.Bots {
		addresses = append(addresses, addr)
	}
	return addresses, nil
}
