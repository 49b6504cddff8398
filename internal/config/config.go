package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ajeebtech/playerlens/pkg/models"
)

// Data source selection values for DATA_SOURCE
const (
	SourceAuto      = "auto"
	SourcePostgres  = models.SourcePostgres
	SourceSynthetic = models.SourceSynthetic
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// DatabaseConfig selects and configures the player data source
type DatabaseConfig struct {
	DSN    string
	Source string // auto, postgres, synthetic
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	URL string
}

// CacheConfig holds TTLs for cached responses
type CacheConfig struct {
	SearchTTL time.Duration
	StatsTTL  time.Duration
}

// RateLimitConfig holds the per-client request budget
type RateLimitConfig struct {
	PerMinute int
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string // debug|info|warn|error
	Format string // json|text
}

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           getEnv("PLAYERLENS_ADDR", ":8080"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Database: DatabaseConfig{
			DSN:    getEnv("PLAYERS_DSN", ""),
			Source: strings.ToLower(getEnv("DATA_SOURCE", SourceAuto)),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Cache: CacheConfig{
			SearchTTL: getEnvDuration("SEARCH_CACHE_TTL", time.Minute),
			StatsTTL:  getEnvDuration("STATS_CACHE_TTL", 10*time.Minute),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// DataSource resolves which backend to use. Auto picks postgres iff a DSN is set.
func (c *Config) DataSource() (string, error) {
	switch c.Database.Source {
	case SourceAuto, "":
		if c.Database.DSN != "" {
			return SourcePostgres, nil
		}
		return SourceSynthetic, nil
	case SourcePostgres:
		if c.Database.DSN == "" {
			return "", fmt.Errorf("DATA_SOURCE=postgres requires PLAYERS_DSN")
		}
		return SourcePostgres, nil
	case SourceSynthetic:
		return SourceSynthetic, nil
	default:
		return "", fmt.Errorf("unknown DATA_SOURCE %q", c.Database.Source)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
