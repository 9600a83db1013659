package config

import (
	"slices"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"

	"github.com/nanokit/bedrock-relay/common/env"
)

var (
	// ModelID selects the Bedrock model every relay request is sent to.
	ModelID = strings.TrimSpace(env.String("BEDROCK_MODEL_ID", "anthropic.claude-3-sonnet-20240229-v1:0"))
	// Region is the AWS region the Bedrock runtime client is built for.
	Region = strings.TrimSpace(env.String("AWS_REGION", "us-east-1"))

	// AccessKeyID / SecretAccessKey configure static credentials. When both are
	// empty the SDK's default credential chain (instance profile, env, ...) is used.
	AccessKeyID     = strings.TrimSpace(env.String("AWS_ACCESS_KEY_ID", ""))
	SecretAccessKey = strings.TrimSpace(env.String("AWS_SECRET_ACCESS_KEY", ""))
	SessionToken    = strings.TrimSpace(env.String("AWS_SESSION_TOKEN", ""))

	// DefaultTemperature applies when a request leaves temperature unset.
	DefaultTemperature = env.Float64("BEDROCK_TEMPERATURE", 0.0)
	// DefaultMaxTokens applies when a request leaves max_tokens unset.
	DefaultMaxTokens = env.Int("BEDROCK_MAX_TOKENS", 8192)

	// RequestTimeout bounds a single vendor call, streaming excluded.
	RequestTimeout = time.Second * time.Duration(env.Int("BEDROCK_TIMEOUT", 30))
	// MaxRetries is handed to the SDK retryer; this layer never retries itself.
	MaxRetries = env.Int("BEDROCK_MAX_RETRIES", 3)

	// CacheEnabled toggles the in-memory response cache for cache-eligible requests.
	CacheEnabled = env.Bool("BEDROCK_CACHE_RESPONSES", true)
	// CacheTTLMinutes controls cache entry eviction. 0 keeps entries for the
	// process lifetime.
	CacheTTLMinutes = env.Int("CACHE_TTL_MINUTES", 0)

	// ServerPort overrides the listen port when running inside container or PaaS environments.
	ServerPort = strings.TrimSpace(env.String("PORT", "8000"))
	// GinMode allows forcing Gin into release mode (or other modes) without recompiling.
	GinMode = strings.TrimSpace(env.String("GIN_MODE", ""))

	// DebugEnabled toggles verbose structured logging when DEBUG=true.
	DebugEnabled = env.Bool("DEBUG", false)

	// GracefulShutdownTimeout bounds request draining on SIGTERM.
	GracefulShutdownTimeout = time.Second * time.Duration(env.Int("GRACEFUL_SHUTDOWN_TIMEOUT", 30))

	// RequestHeaders are extra HTTP headers sent with every Bedrock call,
	// comma-separated "name: value" pairs. The default opts in to the
	// prompt-caching beta so cache token accounting comes back in usage.
	RequestHeaders = ParseHeaders(env.String("BEDROCK_EXTRA_HEADERS",
		"anthropic-beta: prompt-caching-2024-07-31"))
)

// ParseHeaders decodes comma-separated "name: value" pairs. Pairs without a
// name or value are dropped.
func ParseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		headers[name] = value
	}
	return headers
}

// supportedRegions lists the regions Bedrock's Anthropic models are offered in.
var supportedRegions = []string{
	"us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"eu-west-1", "eu-west-2", "eu-central-1",
	"ap-northeast-1", "ap-southeast-1", "ap-southeast-2",
}

// Validate checks the startup configuration. The model id is checked against
// the registry by the caller (main) to avoid an import cycle with relay/model.
func Validate() error {
	if ModelID == "" {
		return errors.New("BEDROCK_MODEL_ID must not be empty")
	}
	if !slices.Contains(supportedRegions, Region) {
		return errors.Errorf("unsupported AWS region %q, must be one of %v", Region, supportedRegions)
	}
	if DefaultTemperature < 0 || DefaultTemperature > 1 {
		return errors.Errorf("BEDROCK_TEMPERATURE must be within [0, 1], got %f", DefaultTemperature)
	}
	if DefaultMaxTokens <= 0 {
		return errors.Errorf("BEDROCK_MAX_TOKENS must be positive, got %d", DefaultMaxTokens)
	}
	if MaxRetries < 0 {
		return errors.Errorf("BEDROCK_MAX_RETRIES must not be negative, got %d", MaxRetries)
	}
	if CacheTTLMinutes < 0 {
		return errors.Errorf("CACHE_TTL_MINUTES must not be negative, got %d", CacheTTLMinutes)
	}
	return nil
}
