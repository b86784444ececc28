// Package graph implements the metadata graph lookup client used to check
// whether corp users already exist before emitting updates.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"corpsync/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRPS     = 10
	defaultBurst   = 20
)

// Client looks up entity aspects over the graph's REST aspect endpoint. It
// implements domain.EntityStore. Outbound lookups go through a rate limiter
// so a large principal list cannot hammer the graph API.
type Client struct {
	server  string
	token   string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ domain.EntityStore = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithRateLimit overrides the outbound lookup rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(cl *Client) { cl.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger overrides the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a graph client for the given server base URL. The token,
// when non-empty, is sent as a bearer credential on every request.
func NewClient(server, token string, opts ...Option) *Client {
	c := &Client{
		server:  strings.TrimRight(server, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LookupAspect fetches the named aspect for urn. A nil result with nil error
// means the entity has no such aspect.
func (c *Client) LookupAspect(ctx context.Context, urn, aspectName string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/aspects/%s?aspect=%s&version=0",
		c.server, url.PathEscape(urn), url.QueryEscape(aspectName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read aspect response: %w", err)
		}
		c.logger.Debug("aspect lookup hit", "urn", urn, "aspect", aspectName)
		return body, nil
	case http.StatusNotFound:
		c.logger.Debug("aspect lookup miss", "urn", urn, "aspect", aspectName)
		return nil, nil
	default:
		return nil, fmt.Errorf("aspect lookup for %s returned status %d", urn, resp.StatusCode)
	}
}
