// Package api is the network boundary: it binds resources to GET requests against
// the metrics API, memoizes raw bodies in the response cache and decodes them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-store/config"
	"github.com/Borislavv/go-ash-store/internal/respcache"
	"github.com/Borislavv/go-ash-store/internal/shared/rate"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

const maxErrBodyLen = 256

var (
	ErrStatus = errors.New("unexpected response status")
	ErrAPI    = errors.New("api error")
	ErrClosed = errors.New("api client closed")
)

// Request is one GET: a path relative to the API root and its query params.
type Request struct {
	Path  string
	Query map[string]string
}

// Signature is the response cache key of the request.
func (r Request) Signature() string { return respcache.Signature(r.Path, r.Query) }

type Getter interface {
	Get(ctx context.Context, req Request) ([]byte, error)
}

type Client struct {
	http     *http.Client
	root     string
	cache    respcache.Cacher
	jitter   *rate.Jitter
	group    singleflight.Group
	logger   zerolog.Logger
	requests atomic.Int64
	failures atomic.Int64
	shared   atomic.Int64
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache injects the response cache; without it every Get goes to the network.
func WithCache(cache respcache.Cacher) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a client for cfg.Root. The rate limiter, if configured, lives until ctx is done.
func New(ctx context.Context, cfg *config.APICfg, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("parse api root %q: %w", cfg.Root, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api root %q must be an absolute url", cfg.Root)
	}

	c := &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		root:   strings.TrimRight(u.String(), "/"),
		cache:  respcache.NoOpCache{},
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if cfg.IsRateLimited() {
		c.jitter = rate.NewJitter(ctx, cfg.RateLimit)
	}
	return c, nil
}

// Get returns the raw body for req, from the response cache when possible.
// Identical requests in flight at the same time share one round trip. The shared
// round trip is detached from every caller's cancellation and bounded by the client
// timeout instead; a caller whose ctx is done returns ctx.Err() without aborting it.
func (c *Client) Get(ctx context.Context, req Request) ([]byte, error) {
	sig := req.Signature()
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(sig, func() (any, error) {
		return c.cache.Load(sig, func() ([]byte, error) {
			return c.do(detached, req)
		})
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.shared.Add(1)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) Metrics() (requests, failures, shared int64) {
	return c.requests.Load(), c.failures.Load(), c.shared.Load()
}

func (c *Client) URL(req Request) string {
	raw := c.root + req.Path
	if len(req.Query) == 0 {
		return raw
	}
	q := make(url.Values, len(req.Query))
	for k, v := range req.Query {
		if v != "" {
			q.Set(k, v)
		}
	}
	if enc := q.Encode(); enc != "" {
		raw += "?" + enc
	}
	return raw
}

func (c *Client) do(ctx context.Context, req Request) ([]byte, error) {
	if c.jitter != nil && !c.jitter.Wait(ctx) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrClosed
	}

	c.requests.Add(1)
	body, err := c.roundTrip(ctx, req)
	if err != nil {
		c.failures.Add(1)
		c.logger.Debug().Err(err).Str("path", req.Path).Msg("api request failed")
		return nil, err
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(req), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of GET %s: %w", req.Path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if len(body) > maxErrBodyLen {
			body = body[:maxErrBodyLen]
		}
		return nil, fmt.Errorf("%w: GET %s: %s: %s", ErrStatus, req.Path, resp.Status, string(body))
	}
	if err = checkBody(body); err != nil {
		return nil, fmt.Errorf("GET %s: %w", req.Path, err)
	}
	return body, nil
}

// checkBody treats a non-empty top-level "error" field as a failure even on HTTP 200.
func checkBody(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return errors.New("response body is not valid json")
		}
		return nil
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	switch string(envelope.Error) {
	case "", "null", "false", `""`:
		return nil
	}

	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err != nil {
		msg = string(envelope.Error)
	}
	return fmt.Errorf("%w: %s", ErrAPI, msg)
}
