// Package notion wraps the Notion API for rate-limited database queries.
package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Notion API operations used by this application.
type Client interface {
	QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// ClientOption configures the Notion client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	limiter *rate.Limiter
	retries int
}

// WithRateLimit overrides the default Notion rate limit (3 req/s). A
// non-positive rps disables client-side throttling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *clientConfig) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// WithRetries sets how often a request rejected with 429 is retried.
func WithRetries(n int) ClientOption {
	return func(c *clientConfig) {
		c.retries = max(n, 0)
	}
}

// notionClient implements Client by wrapping a *notionapi.Client.
type notionClient struct {
	inner   *notionapi.Client
	limiter *rate.Limiter
}

// NewClient creates a new Notion client with the given integration token.
// By default, API calls are throttled to 3 req/s (Notion's rate limit).
func NewClient(token string, opts ...ClientOption) Client {
	cfg := clientConfig{limiter: rate.NewLimiter(3, 1)}
	for _, opt := range opts {
		opt(&cfg)
	}

	var apiOpts []notionapi.ClientOption
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, notionapi.WithRetry(cfg.retries))
	}
	return &notionClient{
		inner:   notionapi.NewClient(notionapi.Token(token), apiOpts...),
		limiter: cfg.limiter,
	}
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *notionClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *notionClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "notion: rate limit")
	}
	resp, err := c.inner.Database.Query(ctx, notionapi.DatabaseID(dbID), req)
	if err != nil {
		return nil, eris.Wrapf(err, "notion: query database %s", dbID)
	}
	return resp, nil
}
