package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/internal/database"
	"github.com/qaforum/qaforum/backend/api/internal/server"
	"github.com/qaforum/qaforum/backend/api/pkg/logger"
	"github.com/qaforum/qaforum/backend/api/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	format := os.Getenv("LOG_FORMAT")
	if format == "" && !cfg.IsDevelopment() {
		format = "json"
	}
	logger.SetFormat(format)
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required (use cmd/devserver for an in-memory store)")
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v rate_limit=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]server.Check{}

	// Redis is optional and only used by the shared rate limiter
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
		defer func() { _ = rdb.Close() }()
	}

	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	checks["mongo"] = database.Pinger(client)

	deps, err := server.MongoDeps(ctx, cfg, client.Database(cfg.MongoDB.Database))
	if err != nil {
		logger.Fatalf("failed to prepare MongoDB collections: %v", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	engine := server.NewEngine(server.Options{Config: cfg, Deps: deps, Redis: rdb, Checks: checks})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting qaforum API on %s (base path %s)", srv.Addr, cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
