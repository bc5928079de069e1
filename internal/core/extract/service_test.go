package extract

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"recipe-grocery/internal/core/cache"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	lines []string
	err   error
	calls atomic.Int32
	seen  string
}

func (f *fakeExtractor) ExtractLines(_ context.Context, caption string) ([]string, error) {
	f.calls.Add(1)
	f.seen = caption
	return f.lines, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: false},
		Request:   config.RequestConfig{MaxLines: 3},
	}
}

func newCache(t *testing.T) *cache.CacheManager {
	t.Helper()
	m := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute, CleanupInterval: time.Hour})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestService_Disabled(t *testing.T) {
	t.Parallel()

	svc := NewService(testConfig(), nil, nil)
	assert.False(t, svc.Enabled())

	_, err := svc.Extract(context.Background(), "caption")
	assert.ErrorIs(t, err, common.ErrExtractDisabled)
}

func TestService_EmptyCaption(t *testing.T) {
	t.Parallel()

	fake := &fakeExtractor{}
	svc := NewService(testConfig(), fake, nil)

	_, err := svc.Extract(context.Background(), "  <p> </p> ")
	assert.True(t, common.IsValidationError(err))
	assert.Zero(t, fake.calls.Load())
}

func TestService_UsesCache(t *testing.T) {
	t.Parallel()

	fake := &fakeExtractor{lines: []string{"1 egg"}}
	svc := NewService(testConfig(), fake, newCache(t))
	ctx := context.Background()

	first, err := svc.Extract(ctx, "<p>Omelette</p>")
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, "Omelette", fake.seen)

	second, err := svc.Extract(ctx, "Omelette")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, []string{"1 egg"}, second.Lines)
	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestService_TruncatesLines(t *testing.T) {
	t.Parallel()

	fake := &fakeExtractor{lines: []string{"a", "b", "c", "d", "e"}}
	svc := NewService(testConfig(), fake, nil)

	res, err := svc.Extract(context.Background(), "caption")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Lines)
}

func TestService_PropagatesError(t *testing.T) {
	t.Parallel()

	upstream := common.ErrExtractFailed.Wrap(errors.New("status 500"))
	svc := NewService(testConfig(), &fakeExtractor{err: upstream}, newCache(t))

	_, err := svc.Extract(context.Background(), "caption")
	assert.ErrorIs(t, err, common.ErrExtractFailed)
}

func TestService_RequestRate(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}

	fake := &fakeExtractor{lines: []string{"1 egg"}}
	svc := NewService(cfg, fake, nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Extract(ctx, "one")
	require.NoError(t, err)

	_, err = svc.Extract(ctx, "two")
	assert.ErrorIs(t, err, common.ErrTooManyRequests)

	now = now.Add(30 * time.Second)
	_, err = svc.Extract(ctx, "two")
	assert.NoError(t, err)
}
