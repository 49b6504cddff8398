package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ajeebtech/playerlens/pkg/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCache(client, time.Minute, 5*time.Minute), mr
}

func TestSearchRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := c.ReadSearch(ctx, "Kohli")
	require.Error(t, err)
	assert.True(t, IsMiss(err))

	results := []models.SearchResult{{ID: "18", Name: "Virat Kohli", Team: "RCB", Country: "India"}}
	require.NoError(t, c.WriteSearch(ctx, "Kohli", results))

	got, err := c.ReadSearch(ctx, "  kohli ")
	require.NoError(t, err)
	assert.Equal(t, results, got)

	assert.Equal(t, time.Minute, mr.TTL(SearchKey("kohli")))
}

func TestSearchExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.WriteSearch(ctx, "pant", []models.SearchResult{}))
	mr.FastForward(2 * time.Minute)

	_, err := c.ReadSearch(ctx, "pant")
	assert.True(t, IsMiss(err))
}

func TestStatsRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	stats := &models.PlayerStats{
		Player: models.PlayerRef{ID: "9", Name: "Deepak Hooda"},
		Source: models.SourcePostgres,
		Stats:  []models.StatBar{{Name: "Matches", Value: 31}},
	}
	require.NoError(t, c.WriteStats(ctx, StatsKeyByID(9), stats))

	got, err := c.ReadStats(ctx, StatsKeyByID(9))
	require.NoError(t, err)
	assert.Equal(t, stats.Player, got.Player)
	assert.Equal(t, stats.Stats, got.Stats)
	assert.Equal(t, 5*time.Minute, mr.TTL(StatsKeyByID(9)))
}

func TestReadStats_CorruptPayload(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set(StatsKeyByName("x"), "{not json"))

	_, err := c.ReadStats(context.Background(), StatsKeyByName("x"))
	require.Error(t, err)
	assert.False(t, IsMiss(err))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "playerlens:search:virat", SearchKey(" Virat "))
	assert.Equal(t, "playerlens:stats:id:42", StatsKeyByID(42))
	assert.Equal(t, "playerlens:stats:name:jos buttler", StatsKeyByName("Jos Buttler"))
}

func TestNewCache_DefaultTTLs(t *testing.T) {
	c := NewCache(nil, 0, -1)
	assert.Equal(t, DefaultSearchTTL, c.searchTTL)
	assert.Equal(t, DefaultStatsTTL, c.statsTTL)
}
