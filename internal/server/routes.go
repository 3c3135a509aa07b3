package server

import (
	"net/http"

	"github.com/reaxo/reaxo/internal/server/middleware"
	v1 "github.com/reaxo/reaxo/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Tracing("reaxo-relay"))
	s.router.Use(middleware.ErrorHandler(s.logger))

	limiter := middleware.NewRateLimiter(
		s.config.RateLimit.RequestsPerSecond,
		s.config.RateLimit.Burst,
		s.logger,
	)
	s.router.Use(limiter.Middleware())

	healthHandler := v1.NewHealthHandler(s.deps.Version)
	s.router.GET("/health", healthHandler.Health)

	upstreamClient := &http.Client{}

	chatHandler := v1.NewChatHandler(s.config.Upstream, upstreamClient, s.deps.Ingestor, s.logger)
	s.router.POST("/chat", chatHandler.CreateCompletion)

	modelHandler := v1.NewModelHandler(s.config.Upstream, upstreamClient, s.deps.Cache, s.logger)
	s.router.GET("/models", modelHandler.ListModels)

	if s.deps.Usage != nil {
		usageHandler := v1.NewUsageHandler(s.deps.Usage)
		s.router.GET("/usage", usageHandler.RecentActivity)
	}
}
