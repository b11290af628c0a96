// Command devserver runs the full API against in-memory repositories, for
// local frontend work without MongoDB. Data is lost on exit.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/internal/server"
	"github.com/qaforum/qaforum/backend/api/pkg/logger"
	"github.com/qaforum/qaforum/backend/api/pkg/metrics"
)

const devSecret = "qaforum-devserver-insecure-secret"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	if os.Getenv("SERVER_ENVIRONMENT") == "" {
		_ = os.Setenv("SERVER_ENVIRONMENT", "development")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if !cfg.IsDevelopment() {
		logger.Fatalf("devserver refuses to run with SERVER_ENVIRONMENT=%s", cfg.Server.Environment)
	}
	if cfg.JWT.Secret == "" {
		logger.Warnf("JWT_SECRET not set, using a fixed development secret")
		cfg.JWT.Secret = devSecret
	}
	port := os.Getenv("DEV_SERVER_PORT")
	if port == "" {
		port = "5010"
	}

	gin.SetMode(gin.DebugMode)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	engine := server.NewEngine(server.Options{Config: cfg, Deps: server.MemoryDeps(cfg)})

	logger.Infof("qaforum devserver listening on :%s (in-memory store)", port)
	if err := engine.Run(":" + port); err != nil {
		logger.Fatalf("%v", err)
	}
}
