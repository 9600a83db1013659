package graceful

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Laisky/zap"

	"github.com/nanokit/bedrock-relay/common/logger"
)

// Lifecycle manager for graceful shutdown and request draining.

var (
	inFlightRequests int64
	draining         atomic.Bool
)

// BeginRequest increments the in-flight request counter and returns a function
// to decrement it. Use with `defer` at the top of request handlers/middlewares.
// Long-running SSE handlers count as in-flight until the stream closes.
func BeginRequest() func() {
	atomic.AddInt64(&inFlightRequests, 1)
	return func() {
		atomic.AddInt64(&inFlightRequests, -1)
	}
}

// SetDraining flips the draining flag to true.
func SetDraining() { draining.Store(true) }

// IsDraining returns whether the server is currently draining.
func IsDraining() bool { return draining.Load() }

// Drain waits for in-flight requests to reach zero after http.Server.Shutdown
// stops accepting new ones, bounded by ctx deadline.
func Drain(ctx context.Context) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		n := atomic.LoadInt64(&inFlightRequests)
		if n == 0 {
			logger.Logger.Info("graceful drain complete")
			return nil
		}
		select {
		case <-ctx.Done():
			logger.Logger.Error("graceful drain timeout",
				zap.Int64("in_flight_requests", n))
			return ctx.Err()
		case <-ticker.C:
			logger.Logger.Debug("draining...",
				zap.Int64("in_flight_requests", n))
		}
	}
}
