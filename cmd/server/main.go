package main

import (
	"context"   // Shutdown deadlines and pings
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"asset_inventory/internal/api"        // Custom package for API handlers
	"asset_inventory/internal/config"     // Custom package for configuration
	"asset_inventory/internal/db"         // Database connection
	"asset_inventory/internal/middleware" // Custom package for middleware
	"asset_inventory/internal/store"      // Persistence
	"asset_inventory/internal/utils"      // Tokens, hashing, cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := config.ConfigureLogger(cfg); err != nil {
		logrus.Fatalf("invalid logger configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}
	checks := []api.HealthCheck{{Name: "mysql", Ping: sqlDB.PingContext}}

	// Redis only backs the list cache, so it stays optional
	var listCache api.ListCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		cache := utils.NewRedisCache(redisClient)
		if err := cache.Ping(context.Background()); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		listCache = api.NewListCache(cache, cfg.CacheTTL)
		checks = append(checks, api.HealthCheck{Name: "redis", Ping: cache.Ping})
	} else {
		logrus.Warn("REDIS_ADDR not set, list caching disabled")
	}

	tokens, err := utils.NewTokenIssuer(utils.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL})
	if err != nil {
		logrus.Fatalf("failed to set up tokens: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Users:             store.NewUsers(gdb),
		Assets:            store.NewAssets(gdb),
		Hasher:            utils.NewPasswordHasher(cfg.BcryptCost),
		Tokens:            tokens,
		Cache:             listCache,
		LoginLimiter:      middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute),
		AssetsRequireAuth: cfg.AssetsRequireAuth,
		CORSOrigins:       cfg.CORSOrigins,
		HealthChecks:      checks,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 3 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Errorf("closing DB: %v", err)
	}
}
