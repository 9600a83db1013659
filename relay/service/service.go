package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nanokit/bedrock-relay/common/config"
	"github.com/nanokit/bedrock-relay/common/logger"
	"github.com/nanokit/bedrock-relay/common/metrics"
	"github.com/nanokit/bedrock-relay/relay/bedrock"
	"github.com/nanokit/bedrock-relay/relay/model"
)

// Invoker is the vendor call collaborator. *bedrock.Client satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, payload *bedrock.Payload) (*model.Response, error)
	InvokeStream(ctx context.Context, payload *bedrock.Payload) (bedrock.ChunkStream, error)
}

// Service coordinates normalization, caching, the vendor call, and response
// translation for the four relay operations.
type Service struct {
	invoker Invoker
	cache   *ResponseCache
	flight  singleflight.Group
	timeout time.Duration
}

func New(invoker Invoker) *Service {
	var cache *ResponseCache
	if config.CacheEnabled {
		cache = NewResponseCache(time.Duration(config.CacheTTLMinutes) * time.Minute)
	}
	return &Service{
		invoker: invoker,
		cache:   cache,
		timeout: config.RequestTimeout,
	}
}

// GenerateRequest carries the single-prompt operation inputs. Temperature and
// MaxTokens left nil fall back to configuration defaults.
type GenerateRequest struct {
	Prompt       string
	SystemPrompt string
	Temperature  *float64
	MaxTokens    *int
	UseCache     bool
}

// ChatOptions tunes a multi-turn request.
type ChatOptions struct {
	Temperature *float64
	MaxTokens   *int
}

// callCtx applies the configured per-call deadline so caller aborts and
// timeouts cancel the in-flight vendor request.
func (s *Service) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// GenerateText produces a text completion for a single prompt. Cache-eligible:
// with UseCache set, identical requests are answered from the cache, and
// concurrent identical misses collapse into one vendor call.
func (s *Service) GenerateText(ctx context.Context, req GenerateRequest) (string, error) {
	if !req.UseCache || s.cache == nil {
		return s.generate(ctx, req)
	}

	key := CacheKey(req.Prompt, req.SystemPrompt, req.Temperature, req.MaxTokens)
	if text, ok := s.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		logger.Logger.Debug("response cache hit", zap.String("key", key[:12]))
		return text, nil
	}
	metrics.CacheMisses.Inc()

	// The shared call is detached from the initiating caller's ctx so one
	// caller's cancellation cannot fail the coalesced waiters; the configured
	// timeout still bounds it. Each waiter honors its own ctx while waiting.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		text, err := s.generate(flightCtx, req)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, text)
		return text, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "await shared generation")
	}
}

func (s *Service) generate(ctx context.Context, req GenerateRequest) (string, error) {
	payload, err := bedrock.BuildGeneratePayload(req.Prompt, req.SystemPrompt, req.Temperature, req.MaxTokens)
	if err != nil {
		return "", err
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.invoker.Invoke(ctx, payload)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Chat runs one non-streaming conversation turn. Never cached: the cache is
// keyed on the single-prompt shape only.
func (s *Service) Chat(ctx context.Context, messages []model.Message, opts ChatOptions) (*model.Response, error) {
	payload, err := bedrock.BuildChatPayload(messages, opts.Temperature, opts.MaxTokens)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	return s.invoker.Invoke(ctx, payload)
}

// ChatStream runs one streaming conversation turn. The caller owns the
// returned stream and must Close it; no deadline is imposed beyond the
// caller's ctx, since the connection stays open for the duration of
// consumption.
func (s *Service) ChatStream(ctx context.Context, messages []model.Message, opts ChatOptions) (bedrock.ChunkStream, error) {
	payload, err := bedrock.BuildChatPayload(messages, opts.Temperature, opts.MaxTokens)
	if err != nil {
		return nil, err
	}
	return s.invoker.InvokeStream(ctx, payload)
}
