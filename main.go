package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/nanokit/bedrock-relay/common/config"
	"github.com/nanokit/bedrock-relay/common/graceful"
	"github.com/nanokit/bedrock-relay/common/logger"
	"github.com/nanokit/bedrock-relay/controller"
	"github.com/nanokit/bedrock-relay/relay/bedrock"
	"github.com/nanokit/bedrock-relay/relay/model"
	"github.com/nanokit/bedrock-relay/relay/service"
	"github.com/nanokit/bedrock-relay/router"
)

func main() {
	ctx := context.Background()

	if err := config.Validate(); err != nil {
		logger.Logger.Fatal("invalid configuration", zap.Error(err))
	}
	if !model.IsSupported(config.ModelID) {
		logger.Logger.Fatal("model id not in registry",
			zap.String("model", config.ModelID))
	}

	if config.GinMode != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := bedrock.NewClient(ctx)
	if err != nil {
		logger.Logger.Fatal("failed to initialize bedrock client", zap.Error(err))
	}

	svc := service.New(client)
	llm := controller.NewLLMController(svc)

	engine := gin.New()
	engine.Use(gin.Recovery())
	router.SetRouter(engine, llm)

	server := &http.Server{
		Addr:    ":" + config.ServerPort,
		Handler: engine,
	}

	go func() {
		logger.Logger.Info("bedrock relay listening",
			zap.String("port", config.ServerPort),
			zap.String("model", config.ModelID),
			zap.String("region", config.Region))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("shutdown signal received, draining")
	graceful.SetDraining()

	shutdownCtx, cancel := context.WithTimeout(ctx, config.GracefulShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("server shutdown", zap.Error(err))
	}
	if err := graceful.Drain(shutdownCtx); err != nil {
		logger.Logger.Error("request drain", zap.Error(err))
	}
	logger.Logger.Info("bedrock relay stopped")
}
