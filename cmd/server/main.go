package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/analytics"
	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/logger"
	"github.com/reaxo/reaxo/internal/platform/otel"
	"github.com/reaxo/reaxo/internal/server"
	"github.com/reaxo/reaxo/internal/server/validator"
	"github.com/reaxo/reaxo/internal/store/cache"
	"github.com/reaxo/reaxo/internal/store/sqlite"
	"github.com/reaxo/reaxo/internal/version"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Initialize(cfg.Server.Env)
	defer logger.Sync()
	zlog := logger.Get()

	validator.InitValidator()
	go version.CheckForUpdates()

	shutdownTracer, err := otel.InitTracer("reaxo-relay", zlog, os.Stdout)
	if err != nil {
		zlog.Warn("Tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	deps := server.Deps{Version: version.AppVersion}

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zlog.Warn("Redis unreachable, falling back to in-memory cache", zap.Error(err))
			deps.Cache = cache.NewMemoryCache()
		} else {
			deps.Cache = redisCache
			defer func() {
				_ = redisCache.Close()
			}()
		}
	} else {
		deps.Cache = cache.NewMemoryCache()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Analytics.Enabled {
		repo, err := sqlite.NewSQLiteStorage(cfg.Analytics.DSN)
		if err != nil {
			zlog.Warn("Relay log disabled", zap.Error(err))
		} else {
			defer func() {
				_ = repo.Close()
			}()
			ingestor := analytics.NewIngestor(zlog, repo)
			ingestor.Start(ctx)
			defer ingestor.Stop()
			deps.Ingestor = ingestor
			deps.Usage = analytics.NewService(repo)
		}
	}

	srv := server.New(cfg, zlog, deps)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Handler(),
	}

	go func() {
		zlog.Info("Relay listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Forced shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		zlog.Error("Tracer shutdown failed", zap.Error(err))
	}
}
