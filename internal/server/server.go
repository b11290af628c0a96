package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qaforum/qaforum/backend/api/handlers"
	"github.com/qaforum/qaforum/backend/api/internal/config"
	"github.com/qaforum/qaforum/backend/api/pkg/middleware"
	"github.com/qaforum/qaforum/backend/api/pkg/validation"
	"github.com/redis/go-redis/v9"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Options configure NewEngine.
type Options struct {
	Config *config.Config
	Deps   handlers.Deps
	// Redis is optional; it backs the shared rate limiter when configured.
	Redis *redis.Client
	// Checks are evaluated by /ready, keyed by dependency name.
	Checks map[string]Check
}

var startTime = time.Now()

// NewEngine builds the gin engine with the middleware stack, operational
// endpoints and API routes mounted under the configured base path.
func NewEngine(opts Options) *gin.Engine {
	cfg := opts.Config
	validation.Init()

	r := gin.New()
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.ErrorHandler(handlers.MapError))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(opts.Checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r, cfg.Server.BasePath)

	deps := opts.Deps
	deps.RateLimit = rateLimiter(cfg, opts.Redis)
	handlers.RegisterRoutes(r.Group(cfg.Server.BasePath), deps)
	return r
}

// rateLimiter returns nil when limiting is disabled. API routes attach it
// behind auth, so operational endpoints are never limited.
func rateLimiter(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.UseRedis && rdb != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
	}
	return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	cc.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}

// readyHandler answers 200 only when every check passes.
func readyHandler(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		for name, check := range checks {
			ok := check(ctx) == nil
			deps[name] = ok
			ready = ready && ok
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}
