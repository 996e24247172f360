package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/straye-as/kontragent-api/internal/cache"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/mapper"
	"github.com/straye-as/kontragent-api/internal/repository"
	"github.com/straye-as/kontragent-api/internal/service"
	"github.com/straye-as/kontragent-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLookups(t *testing.T) {
	f := newFixture(t)
	testutil.SeedRegion(t, f.db, 1, "Tver", "Torzhok", "Rzhev")
	testutil.SeedRegion(t, f.db, 2, "Moscow")

	env := f.call(mapper.Params{"action": "get_regions"})
	require.True(t, env.Success, env.Message)
	regions := env.Data.([]domain.Region)
	require.Len(t, regions, 2)
	assert.Equal(t, "Moscow", regions[0].Name)

	env = f.call(mapper.Params{"action": "get_cities_by_region", "id_region": "1"})
	require.True(t, env.Success, env.Message)
	cities := env.Data.([]domain.City)
	require.Len(t, cities, 2)
	assert.Equal(t, "Rzhev", cities[0].Name)

	env = f.call(mapper.Params{"action": "get_cities_by_region", "id_region": "0"})
	require.True(t, env.Success)
	assert.Equal(t, []domain.City{}, env.Data)

	env = f.call(mapper.Params{"action": "get_cities_by_region"})
	require.True(t, env.Success)
	assert.Equal(t, []domain.City{}, env.Data)

	assert.Empty(t, f.tags(t))
}

func TestLookups_FailureMessage(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Migrator().DropTable(&domain.Region{}))

	env := f.call(mapper.Params{"action": "get_regions"})

	assert.False(t, env.Success)
	assert.Contains(t, env.Message, domain.MsgRegionsFailed)
	assert.Empty(t, f.tags(t))
}

func TestLookups_ServedFromRedis(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	testutil.SeedRegion(t, db, 1, "Tver", "Torzhok")

	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc := service.NewLookupService(
		repository.NewLookupRepository(db),
		cache.NewRedisLookupCache(client, "kontragent:", time.Hour),
		zap.NewNop(),
	)
	ctx := context.Background()

	env := svc.CitiesByRegion(ctx, domain.CitiesByRegionRequest{RegionID: 1})
	require.True(t, env.Success)
	assert.True(t, mr.Exists("kontragent:cities:1"))

	require.NoError(t, db.Where("id_region = ?", 1).Delete(&domain.City{}).Error)

	env = svc.CitiesByRegion(ctx, domain.CitiesByRegionRequest{RegionID: 1})
	require.True(t, env.Success)
	cities := env.Data.([]domain.City)
	require.Len(t, cities, 1)
	assert.Equal(t, "Torzhok", cities[0].Name)
}

func TestLookups_BrokenCacheFallsBackToDatabase(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	testutil.SeedRegion(t, db, 1, "Tver")

	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	mr.Set("regions", "not json")

	svc := service.NewLookupService(
		repository.NewLookupRepository(db),
		cache.NewRedisLookupCache(client, "", time.Hour),
		zap.NewNop(),
	)

	env := svc.Regions(context.Background())
	require.True(t, env.Success)
	regions := env.Data.([]domain.Region)
	require.Len(t, regions, 1)
	assert.Equal(t, "Tver", regions[0].Name)
}
