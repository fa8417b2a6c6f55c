package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"newsroom/summaryhub/internal/config"
	"newsroom/summaryhub/internal/extractor"
	"newsroom/summaryhub/internal/handler"
	"newsroom/summaryhub/internal/provider"
	"newsroom/summaryhub/internal/repository"
	"newsroom/summaryhub/internal/service"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Initialize state store (Redis or in-memory)
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		stateStore = repository.NewRedisStateStore(redisClient)
		logger.Info("using Redis state store")
	case "memory":
		stateStore = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store; dedup holds within this instance only")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	summaryStore := repository.NewSummaryStore(stateStore, logger)

	// 4. Initialize inference provider
	var providerClient provider.Client
	switch cfg.Provider.Backend {
	case "http":
		providerClient = provider.NewHTTPClient(provider.HTTPConfig{
			Endpoint: cfg.Provider.HTTP.Endpoint,
			APIKey:   cfg.Provider.HTTP.APIKey,
		})
		logger.Info("using async http inference provider",
			zap.String("endpoint", cfg.Provider.HTTP.Endpoint))
	case "openai":
		providerClient = provider.NewOpenAIClient(provider.OpenAIConfig{
			APIKey: cfg.Provider.OpenAI.APIKey,
			Model:  cfg.Provider.OpenAI.Model,
		}, logger)
		logger.Info("using openai inference provider")
	default:
		logger.Fatal("unknown provider backend", zap.String("backend", cfg.Provider.Backend))
	}

	// 5. Initialize services
	htmlExtractor := extractor.NewHTMLExtractor(logger)
	summaryService := service.NewSummaryService(
		summaryStore, htmlExtractor, providerClient, cfg.Provider.CallbackURL, logger,
	)
	callbackService := service.NewCallbackService(summaryStore, logger)

	// 6. Initialize handlers
	summaryHandler := handler.NewSummaryHandler(summaryService)
	callbackHandler := handler.NewCallbackHandler(callbackService)

	// 7. Setup router
	router := handler.SetupRouter(cfg, logger, summaryHandler, callbackHandler)

	// 8. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 9. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
