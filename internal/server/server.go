package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/analytics"
	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/store/cache"
)

// Deps carries the collaborators the route handlers need. Any of them may
// be nil; the affected routes degrade (no usage endpoint, no cached model
// list) rather than fail.
type Deps struct {
	Cache    cache.CacheService
	Ingestor analytics.Ingestor
	Usage    analytics.Service
	Version  string
}

type Server struct {
	router *gin.Engine
	config *config.Config
	logger *zap.Logger
	deps   Deps
}

func New(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	engine.Use(ginzap.RecoveryWithZap(logger, true))

	s := &Server{
		router: engine,
		config: cfg,
		logger: logger,
		deps:   deps,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
