package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nanokit/bedrock-relay/common/graceful"
)

// RequestTracker counts in-flight requests for graceful draining and rejects
// new work once the server starts shutting down. SSE handlers stay counted
// until the stream closes.
func RequestTracker() func(c *gin.Context) {
	return func(c *gin.Context) {
		if graceful.IsDraining() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": gin.H{"message": "server is shutting down", "type": "unavailable"},
			})
			return
		}
		done := graceful.BeginRequest()
		defer done()
		c.Next()
	}
}
