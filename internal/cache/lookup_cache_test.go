package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/straye-as/kontragent-api/internal/cache"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, prefix string) (*cache.RedisLookupCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisLookupCache(client, prefix, 10*time.Minute), mr
}

func TestRedisLookupCache_SetAndGet(t *testing.T) {
	c, mr := newCache(t, "kontragent:lookup:")
	ctx := context.Background()

	regions := []domain.Region{{ID: 1, Name: "Moscow"}, {ID: 2, Name: "Tver"}}
	require.NoError(t, c.Set(ctx, cache.RegionsKey(), regions))

	assert.True(t, mr.Exists("kontragent:lookup:regions"))
	assert.Equal(t, 10*time.Minute, mr.TTL("kontragent:lookup:regions"))

	var got []domain.Region
	found, err := c.Get(ctx, cache.RegionsKey(), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, regions, got)
}

func TestRedisLookupCache_Miss(t *testing.T) {
	c, _ := newCache(t, "")

	var got []domain.City
	found, err := c.Get(context.Background(), cache.CitiesKey(9), &got)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestRedisLookupCache_Expiry(t *testing.T) {
	c, mr := newCache(t, "")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, cache.CitiesKey(1), []domain.City{{ID: 1, Name: "Rzhev"}}))
	mr.FastForward(11 * time.Minute)

	var got []domain.City
	found, err := c.Get(ctx, cache.CitiesKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisLookupCache_CorruptValue(t *testing.T) {
	c, mr := newCache(t, "")
	require.NoError(t, mr.Set("regions", "{"))

	var got []domain.Region
	found, err := c.Get(context.Background(), cache.RegionsKey(), &got)

	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisLookupCache_ServerDown(t *testing.T) {
	c, mr := newCache(t, "")
	mr.Close()

	assert.Error(t, c.Ping(context.Background()))
	assert.Error(t, c.Set(context.Background(), cache.RegionsKey(), []domain.Region{}))
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := cache.NewRedisClient(context.Background(), "http://not-redis")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "regions", cache.RegionsKey())
	assert.Equal(t, "cities:42", cache.CitiesKey(42))
}

func TestNopCache(t *testing.T) {
	var c cache.LookupCache = cache.NopCache{}
	require.NoError(t, c.Set(context.Background(), "k", 1))

	var v int
	found, err := c.Get(context.Background(), "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}
