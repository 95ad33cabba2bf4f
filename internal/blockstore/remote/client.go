package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
)

type (
	// Metrics records store operation outcomes.
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}
)

// Config configures a Client.
type Config struct {
	// URL is the block follower's server, e.g. http://127.0.0.1:2112.
	URL     string
	Timeout time.Duration
	// PageSize bounds the heights asked for per range request.
	PageSize uint64
}

// Client is a read-only BlockStore served by a block follower.
type Client struct {
	base     string
	network  model.Network
	pageSize uint64
	http     *http.Client
	metrics  Metrics
}

// NewClient constructs a Client for network.
func NewClient(cfg Config, network model.Network, metrics Metrics) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: follower url is required", model.ErrConfiguration)
	}
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid follower url %q", model.ErrConfiguration, cfg.URL)
	}
	if metrics == nil {
		return nil, fmt.Errorf("%w: remote store metrics is required", model.ErrConfiguration)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize == 0 || pageSize > MaxRange {
		pageSize = MaxRange
	}
	return &Client{
		base:     strings.TrimRight(cfg.URL, "/"),
		network:  network,
		pageSize: pageSize,
		http:     &http.Client{Timeout: timeout},
		metrics:  metrics,
	}, nil
}

// BlocksInRange returns stored blocks with from <= height <= to in height
// order, paging through the follower.
func (c *Client) BlocksInRange(ctx context.Context, from, to uint64) (blocks []model.BlockRecord, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe("blocks_in_range", c.network, err, start)
	}()

	for lo := from; lo <= to; {
		hi := to
		if hi-lo >= c.pageSize {
			hi = lo + c.pageSize - 1
		}
		q := url.Values{}
		q.Set("from", strconv.FormatUint(lo, 10))
		q.Set("to", strconv.FormatUint(hi, 10))

		var doc rangeDoc
		if err := c.mustGet(ctx, "/blocks?"+q.Encode(), &doc); err != nil {
			return nil, fmt.Errorf("read blocks %d..%d: %w", lo, hi, err)
		}
		for _, d := range doc.Blocks {
			blocks = append(blocks, c.record(d))
		}
		if hi == to {
			break
		}
		lo = hi + 1
	}
	return blocks, nil
}

// BlockByHeight returns the stored block at height and whether it exists.
func (c *Client) BlockByHeight(ctx context.Context, height uint64) (block model.BlockRecord, found bool, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe("block_by_height", c.network, err, start)
	}()

	var doc blockDoc
	found, err = c.get(ctx, "/blocks/"+strconv.FormatUint(height, 10), &doc)
	if err != nil || !found {
		return model.BlockRecord{}, false, err
	}
	return c.record(doc), true, nil
}

// MaxContiguousBlockHeight returns the follower's gap-free stored prefix.
func (c *Client) MaxContiguousBlockHeight(ctx context.Context) (height uint64, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Observe("max_contiguous_block_height", c.network, err, start)
	}()

	var doc heightDoc
	if err := c.mustGet(ctx, "/blocks/contiguous", &doc); err != nil {
		return 0, err
	}
	return doc.Height, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) record(d blockDoc) model.BlockRecord {
	return model.BlockRecord{
		Network:   c.network,
		Height:    d.Height,
		Proposer:  d.Proposer,
		Timestamp: time.Unix(d.Timestamp, 0).UTC(),
	}
}

func (c *Client) mustGet(ctx context.Context, path string, out any) error {
	found, err := c.get(ctx, path, out)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s does not serve block reads", model.ErrConfiguration, c.base)
	}
	return nil
}

// get decodes a 200 response into out. A 404 reports found = false.
func (c *Client) get(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", model.ErrTransientFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: read body: %w", model.ErrTransientFetch, err)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return false, fmt.Errorf("%w: follower status %d", model.ErrTransientFetch, resp.StatusCode)
	default:
		var e errorDoc
		_ = json.Unmarshal(body, &e)
		return false, fmt.Errorf("%w: follower status %d: %s", model.ErrConfiguration, resp.StatusCode, e.Error)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("%w: decode follower response: %w", model.ErrConfiguration, err)
	}
	return true, nil
}
