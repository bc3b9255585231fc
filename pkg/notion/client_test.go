package notion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/influencer-matcher/pkg/notion/mocks"
)

func TestMockClientSatisfiesInterface(t *testing.T) {
	t.Parallel()
	var _ Client = (*mocks.MockClient)(nil)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("secret").(*notionClient)
	require.NotNil(t, c.inner)
	require.NotNil(t, c.limiter)
	assert.InDelta(t, 3.0, float64(c.limiter.Limit()), 0.001)
}

func TestWithRateLimit(t *testing.T) {
	c := NewClient("secret", WithRateLimit(10)).(*notionClient)
	require.NotNil(t, c.limiter)
	assert.InDelta(t, 10.0, float64(c.limiter.Limit()), 0.001)
	assert.Equal(t, 10, c.limiter.Burst())

	c = NewClient("secret", WithRateLimit(0)).(*notionClient)
	assert.Nil(t, c.limiter)
}

func TestWithRetries(t *testing.T) {
	cfg := clientConfig{}
	WithRetries(5)(&cfg)
	assert.Equal(t, 5, cfg.retries)

	WithRetries(-1)(&cfg)
	assert.Equal(t, 0, cfg.retries)
}

func TestWait_CancelledContext(t *testing.T) {
	c := NewClient("secret", WithRateLimit(0.001)).(*notionClient)
	// Drain the single burst token.
	require.NoError(t, c.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.wait(ctx))
}

func TestQueryDatabase_RateLimitError(t *testing.T) {
	c := NewClient("secret", WithRateLimit(0.001)).(*notionClient)
	require.NoError(t, c.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.QueryDatabase(ctx, "db-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion: rate limit")
}
