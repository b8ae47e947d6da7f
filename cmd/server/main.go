package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/client-accounts/internal/config"     // Internal config loader
	"github.com/iliyamo/client-accounts/internal/database"   // MySQL/SQLite connection
	"github.com/iliyamo/client-accounts/internal/handler"    // HTTP handlers
	"github.com/iliyamo/client-accounts/internal/logger"     // zap construction
	"github.com/iliyamo/client-accounts/internal/middleware" // Redis cache and rate limiting
	"github.com/iliyamo/client-accounts/internal/repository" // clients table access
	"github.com/iliyamo/client-accounts/internal/router"     // Internal router setup
	"github.com/iliyamo/client-accounts/internal/service"    // RabbitMQ publisher
)

func main() {
	cfg := config.Load() // Load environment config

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg)
	if err != nil {
		lg.Fatalw("database unavailable", "driver", cfg.DBDriver, "error", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		lg.Fatalw("schema sync failed", "error", err)
	}

	// Redis is optional: without it cache and rate limiting pass through.
	rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if err != nil {
		lg.Warnw("redis unavailable, cache and rate limiting disabled", "error", err)
	} else {
		defer rdb.Close()
	}

	var events handler.EventPublisher = service.NopPublisher{}
	if ec := config.LoadEventsConfig(); ec.URL != "" {
		events = service.NewQueuePublisher(ec.URL, ec.Queue)
	}

	clients := handler.NewClientHandler(repository.NewClientRepo(db), events, lg)
	e := router.New(clients, router.Options{
		Log:       lg,
		BodyLimit: cfg.BodyLimit,
		Health:    handler.Health(db),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb, lg),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, lg),
	})

	addr := ":" + cfg.Port // Address string with port
	go func() {
		lg.Infow("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("shutdown", "error", err)
	}
	lg.Info("server stopped")
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return database.OpenSQLite(cfg.DBPath)
	}
	return database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
