package middleware

import (
	"time"

	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/nanokit/bedrock-relay/common/helper"
	"github.com/nanokit/bedrock-relay/common/logger"
)

// AccessLog emits one structured line per finished request. For SSE responses
// the line is written after the stream closes, so elapsed_ms covers the whole
// stream lifetime.
func AccessLog() func(c *gin.Context) {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Logger.Info("request completed",
			zap.String("request_id", c.GetString(helper.RequestIdKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("elapsed_ms", helper.CalcElapsedTime(start)))
	}
}
