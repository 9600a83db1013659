package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheKeyDeterministic(t *testing.T) {
	temp := 0.5
	maxTokens := 100

	first := CacheKey("prompt", "system", &temp, &maxTokens)
	second := CacheKey("prompt", "system", &temp, &maxTokens)
	require.Equal(t, first, second)

	// pointer identity must not matter, only values
	temp2 := 0.5
	maxTokens2 := 100
	require.Equal(t, first, CacheKey("prompt", "system", &temp2, &maxTokens2))
}

func TestCacheKeyDistinguishesInputs(t *testing.T) {
	temp := 0.5
	base := CacheKey("prompt", "system", &temp, nil)

	require.NotEqual(t, base, CacheKey("prompt2", "system", &temp, nil))
	require.NotEqual(t, base, CacheKey("prompt", "system2", &temp, nil))
	require.NotEqual(t, base, CacheKey("prompt", "system", nil, nil))

	other := 0.9
	require.NotEqual(t, base, CacheKey("prompt", "system", &other, nil))

	maxTokens := 10
	require.NotEqual(t, base, CacheKey("prompt", "system", &temp, &maxTokens))
}

func TestCacheKeyUnsetFieldsDifferFromZeroValues(t *testing.T) {
	zero := 0.0
	require.NotEqual(t,
		CacheKey("prompt", "", nil, nil),
		CacheKey("prompt", "", &zero, nil))
}

func TestResponseCacheRoundTrip(t *testing.T) {
	cache := NewResponseCache(0)

	_, ok := cache.Get("missing")
	require.False(t, ok)

	cache.Set("key", "value")
	got, ok := cache.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", got)
}

func TestResponseCacheTTLEviction(t *testing.T) {
	cache := NewResponseCache(10 * time.Millisecond)
	cache.Set("key", "value")

	_, ok := cache.Get("key")
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = cache.Get("key")
	require.False(t, ok)
}
