package algod

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/ratelimit"
)

const tokenHeader = "X-Algo-API-Token"

type (
	// RPCMetrics records metrics for node calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// APIError is a non-2xx node response.
type APIError struct {
	StatusCode int
	// Message is the node supplied reason, empty when the body had none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("algod: status %d", e.StatusCode)
	}
	return fmt.Sprintf("algod: status %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying the call may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Config configures a Client.
type Config struct {
	URL   string
	Token string
	// RPS caps outgoing requests per second; zero disables the limit.
	RPS     int
	Timeout time.Duration
}

// Client is an instrumented node REST client.
type Client struct {
	base    *url.URL
	token   string
	http    *http.Client
	limiter ratelimit.Limiter
	metrics RPCMetrics
}

// NewClient constructs a Client for the node at cfg.URL.
func NewClient(cfg Config, metrics RPCMetrics) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse node url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("node url %q must include scheme and host", cfg.URL)
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:    base,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
		metrics: metrics,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) ([]byte, error) {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.limiter.Take()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, markTemporary(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, markTemporary(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, markTemporary(newAPIError(resp.StatusCode, data))
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) getMsgpack(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, url.Values{"format": {"msgpack"}}, nil, "")
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		return &APIError{StatusCode: status, Message: payload.Message}
	}
	return &APIError{StatusCode: status}
}

// markTemporary tags err with model.ErrTransientFetch when IsTemporary holds.
func markTemporary(err error) error {
	if IsTemporary(err) {
		return fmt.Errorf("%w: %w", model.ErrTransientFetch, err)
	}
	return err
}

// IsTemporary reports whether err is a transport failure or a retryable node response.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}
