package repository

import (
	"context"

	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"gorm.io/gorm"
)

// LookupRepository reads the region and city reference tables
type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// Regions returns all regions sorted by name
func (r *LookupRepository) Regions(ctx context.Context) ([]domain.Region, Executed) {
	st := database.NewStatement("SELECT id, name FROM aa_region ORDER BY name", nil)
	regions := []domain.Region{}
	res := database.Query(ctx, r.db, st, &regions)
	return regions, executed(st, res)
}

// CitiesByRegion returns the cities of a region sorted by name
func (r *LookupRepository) CitiesByRegion(ctx context.Context, regionID int64) ([]domain.City, Executed) {
	st := database.NewStatement(
		"SELECT id, name FROM aa_city WHERE id_region = @id_region ORDER BY name",
		map[string]interface{}{"id_region": regionID},
	)
	cities := []domain.City{}
	res := database.Query(ctx, r.db, st, &cities)
	return cities, executed(st, res)
}
