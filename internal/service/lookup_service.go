package service

import (
	"context"

	"github.com/straye-as/kontragent-api/internal/cache"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/repository"
	"go.uber.org/zap"
)

// LookupService serves the region and city reference lists. Reads are not audited.
type LookupService struct {
	lookups *repository.LookupRepository
	cache   cache.LookupCache
	logger  *zap.Logger
}

// NewLookupService creates a new lookup service; a nil cache disables caching
func NewLookupService(lookups *repository.LookupRepository, lookupCache cache.LookupCache, logger *zap.Logger) *LookupService {
	if lookupCache == nil {
		lookupCache = cache.NopCache{}
	}
	return &LookupService{
		lookups: lookups,
		cache:   lookupCache,
		logger:  logger,
	}
}

// Regions returns all regions sorted by name
func (s *LookupService) Regions(ctx context.Context) domain.Envelope {
	regions := []domain.Region{}
	if s.cached(ctx, cache.RegionsKey(), &regions) {
		return domain.OK(regions)
	}

	regions, ex := s.lookups.Regions(ctx)
	if !ex.OK() {
		s.logger.Error("Failed to load regions", zap.Error(ex.Failure))
		return domain.Fail(domain.MsgRegionsFailed + ex.Failure.Detail())
	}
	s.store(ctx, cache.RegionsKey(), regions)
	return domain.OK(regions)
}

// CitiesByRegion returns the cities of a region; region 0 yields an empty list
func (s *LookupService) CitiesByRegion(ctx context.Context, req domain.CitiesByRegionRequest) domain.Envelope {
	if req.RegionID == 0 {
		return domain.OK([]domain.City{})
	}

	key := cache.CitiesKey(req.RegionID)
	cities := []domain.City{}
	if s.cached(ctx, key, &cities) {
		return domain.OK(cities)
	}

	cities, ex := s.lookups.CitiesByRegion(ctx, req.RegionID)
	if !ex.OK() {
		s.logger.Error("Failed to load cities", zap.Int64("region_id", req.RegionID), zap.Error(ex.Failure))
		return domain.Fail(domain.MsgCitiesFailed + ex.Failure.Detail())
	}
	s.store(ctx, key, cities)
	return domain.OK(cities)
}

func (s *LookupService) cached(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Lookup cache read failed, falling back to database", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *LookupService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}
