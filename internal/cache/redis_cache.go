package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/redis/go-redis/v9"
)

// Default TTL constants
const (
	DefaultSearchTTL = 1 * time.Minute
	DefaultStatsTTL  = 10 * time.Minute
)

const keyPrefix = "playerlens"

// Cache stores rendered search results and stats payloads in Redis
type Cache struct {
	client    *redis.Client
	searchTTL time.Duration
	statsTTL  time.Duration
}

// NewCache creates a new Redis-backed response cache
func NewCache(client *redis.Client, searchTTL, statsTTL time.Duration) *Cache {
	if searchTTL <= 0 {
		searchTTL = DefaultSearchTTL
	}
	if statsTTL <= 0 {
		statsTTL = DefaultStatsTTL
	}
	return &Cache{
		client:    client,
		searchTTL: searchTTL,
		statsTTL:  statsTTL,
	}
}

// SearchKey returns the cache key for a search term
func SearchKey(term string) string {
	return fmt.Sprintf("%s:search:%s", keyPrefix, normalize(term))
}

// StatsKeyByID returns the cache key for a stats lookup by serial
func StatsKeyByID(id int64) string {
	return fmt.Sprintf("%s:stats:id:%s", keyPrefix, strconv.FormatInt(id, 10))
}

// StatsKeyByName returns the cache key for a stats lookup by name
func StatsKeyByName(name string) string {
	return fmt.Sprintf("%s:stats:name:%s", keyPrefix, normalize(name))
}

// WriteSearch stores search results for a term
func (c *Cache) WriteSearch(ctx context.Context, term string, results []models.SearchResult) error {
	return c.writeJSON(ctx, SearchKey(term), results, c.searchTTL)
}

// ReadSearch returns cached results for a term. A miss returns redis.Nil.
func (c *Cache) ReadSearch(ctx context.Context, term string) ([]models.SearchResult, error) {
	var results []models.SearchResult
	if err := c.readJSON(ctx, SearchKey(term), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteStats stores a stats payload under key
func (c *Cache) WriteStats(ctx context.Context, key string, stats *models.PlayerStats) error {
	return c.writeJSON(ctx, key, stats, c.statsTTL)
}

// ReadStats returns a cached stats payload. A miss returns redis.Nil.
func (c *Cache) ReadStats(ctx context.Context, key string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	if err := c.readJSON(ctx, key, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// IsMiss reports whether err is a cache miss rather than a failure
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (c *Cache) writeJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) readJSON(ctx context.Context, key string, v interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", key, err)
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
