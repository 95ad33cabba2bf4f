// Package feed reads the statistics, health and blacklist JSON feeds that
// accompany the ledger. Every payload is decoded into a strict schema and
// mismatches surface as model.ErrConfiguration.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

const apiKeyHeader = "X-Api-Key"

type (
	// Metrics records feed call outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client fetches feed documents over HTTP.
type Client struct {
	statsURL string
	ballast  string
	apiKey   string
	http     *http.Client
	metrics  Metrics
}

// Config configures a Client.
type Config struct {
	// StatisticsURL serves statistics, health and blacklist actions.
	StatisticsURL string
	// BallastURL serves the consensus ballast document; empty disables it.
	BallastURL string
	APIKey     string
	Timeout    time.Duration
}

// NewClient constructs a feed client.
func NewClient(cfg Config, metrics Metrics) (*Client, error) {
	if cfg.StatisticsURL == "" {
		return nil, fmt.Errorf("statistics url is required: %w", model.ErrConfiguration)
	}
	if _, err := url.Parse(cfg.StatisticsURL); err != nil {
		return nil, fmt.Errorf("parse statistics url: %w: %w", model.ErrConfiguration, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Client{
		statsURL: cfg.StatisticsURL,
		ballast:  cfg.BallastURL,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
		metrics:  metrics,
	}, nil
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w: %w", model.ErrConfiguration, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransientFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", model.ErrTransientFetch, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", model.ErrTransientFetch, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", model.ErrConfiguration, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode feed: %w", model.ErrConfiguration, err)
	}
	return nil
}
