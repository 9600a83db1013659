package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache stores generated text keyed by a canonical request
// fingerprint. The underlying store is mutex-guarded, so concurrent requests
// are safe; eviction is TTL-based when a TTL is configured, otherwise entries
// live for the process lifetime.
type ResponseCache struct {
	store *gocache.Cache
}

// NewResponseCache builds a cache. ttl == 0 disables expiration.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
	}
	return &ResponseCache{store: gocache.New(expiration, cleanup)}
}

func (c *ResponseCache) Get(key string) (string, bool) {
	value, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

func (c *ResponseCache) Set(key, text string) {
	c.store.SetDefault(key, text)
}

// cacheKeyPayload fixes the set and order of cache-relevant fields. Marshaling
// a struct keeps the serialization deterministic regardless of how the caller
// assembled the request, so semantically identical requests always collide.
type cacheKeyPayload struct {
	Prompt       string   `json:"prompt"`
	SystemPrompt string   `json:"system_prompt"`
	Temperature  *float64 `json:"temperature"`
	MaxTokens    *int     `json:"max_tokens"`
}

// CacheKey returns the canonical fingerprint for a single-prompt request.
func CacheKey(prompt, systemPrompt string, temperature *float64, maxTokens *int) string {
	serialized, err := json.Marshal(cacheKeyPayload{
		Prompt:       prompt,
		SystemPrompt: systemPrompt,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		// Marshaling plain strings and numbers cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(serialized)
	return hex.EncodeToString(sum[:])
}
