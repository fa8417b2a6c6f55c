package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"newsroom/summaryhub/internal/config"
	"newsroom/summaryhub/internal/handler/middleware"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	summaryHandler *SummaryHandler,
	callbackHandler *CallbackHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/summaries/generate", summaryHandler.Generate)
		api.GET("/summaries", summaryHandler.Fetch)

		// Provider-facing completion endpoint. Must stay reachable without
		// browser credentials; the provider has no session.
		api.POST("/callbacks/summary", callbackHandler.Receive)
	}

	return r
}
