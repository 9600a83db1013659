package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nanokit/bedrock-relay/common/helper"
	"github.com/nanokit/bedrock-relay/controller"
	"github.com/nanokit/bedrock-relay/middleware"
)

// SetRouter wires middleware and the relay API routes.
func SetRouter(engine *gin.Engine, llm *controller.LLMController) {
	engine.Use(middleware.RequestId())
	engine.Use(middleware.AccessLog())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RequestTracker())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "timestamp": helper.GetTimestamp()})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/llm")
	// Streaming responses must not pass through gzip buffering, so compression
	// is applied per-route instead of globally.
	api.POST("/generate", gzip.Gzip(gzip.DefaultCompression), llm.Generate)
	api.POST("/chat", llm.Chat)
	api.POST("/analyze-code", gzip.Gzip(gzip.DefaultCompression), llm.AnalyzeCode)
	api.POST("/summarize", gzip.Gzip(gzip.DefaultCompression), llm.Summarize)
	api.GET("/models", llm.ListModels)
}
