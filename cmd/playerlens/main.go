package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajeebtech/playerlens/internal/cache"
	"github.com/ajeebtech/playerlens/internal/config"
	"github.com/ajeebtech/playerlens/internal/db"
	"github.com/ajeebtech/playerlens/internal/handlers"
	"github.com/ajeebtech/playerlens/internal/logging"
	"github.com/ajeebtech/playerlens/internal/ratelimit"
	"github.com/ajeebtech/playerlens/internal/retry"
	"github.com/redis/go-redis/v9"
)

func main() {
	fmt.Println("=== PlayerLens API ===")

	// Load configuration
	cfg := config.LoadConfig()
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	source, err := cfg.DataSource()
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Connect to the players data source
	playersDB, err := openDataSource(source, cfg.Database.DSN)
	if err != nil {
		fmt.Printf("❌ Failed to connect to players DB: %v\n", err)
		os.Exit(1)
	}
	defer playersDB.Close()

	if source == config.SourceSynthetic {
		fmt.Println("✓ Using synthetic player data (no PLAYERS_DSN)")
	} else {
		fmt.Println("✓ Connected to players DB")
	}

	// Redis is optional: it backs the response cache and the rate limiter
	var (
		responseCache *cache.Cache
		limiter       *ratelimit.WindowLimiter
	)
	if cfg.Redis.URL != "" {
		redisClient, err := connectRedis(cfg.Redis.URL)
		if err != nil {
			fmt.Printf("⚠️  Redis unavailable, continuing without cache and rate limiting: %v\n", err)
		} else {
			defer redisClient.Close()
			fmt.Println("✓ Connected to Redis")

			responseCache = cache.NewCache(redisClient, cfg.Cache.SearchTTL, cfg.Cache.StatsTTL)
			if cfg.RateLimit.PerMinute > 0 {
				limiter = ratelimit.NewWindowLimiter(redisClient, cfg.RateLimit.PerMinute, time.Minute)
				fmt.Printf("✓ Rate limit: %d requests/minute per client\n", cfg.RateLimit.PerMinute)
			}
		}
	}

	// Initialize handlers
	handler := handlers.NewHandler(playersDB, responseCache, logger)

	routes := routerConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
	}
	if limiter != nil {
		routes.Limiter = limiter
	}

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(handler, routes),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ PlayerLens listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/search?term=")
		fmt.Println("    GET  /api/stats?id=|name=")
		fmt.Println("    GET  /api/v1/search?term=")
		fmt.Println("    GET  /api/v1/stats?id=|name=")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}

// openDataSource connects to Postgres, retrying while it starts up, or
// falls back to invented players when no database is configured
func openDataSource(source, dsn string) (db.PlayersDB, error) {
	if source == config.SourceSynthetic {
		return db.NewSynthetic(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var client *db.Client
	policy := retry.NewRetryPolicy(5, time.Second).WithMaxDelay(5 * time.Second)
	err := policy.Execute(ctx, func(attempt int) error {
		c, err := db.NewClient(dsn)
		if err != nil {
			fmt.Printf("⚠️  Players DB not ready (attempt %d): %v\n", attempt, err)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// connectRedis parses the URL and checks the connection
func connectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}
