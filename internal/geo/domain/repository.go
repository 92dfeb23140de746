package domain

import (
	"context"

	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	ListCountryAreas(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*CountryArea, error)
	CountCountryAreas(ctx context.Context, db *gorm.DB) (int64, error)
	FindCountryArea(ctx context.Context, db *gorm.DB, id int) (*CountryArea, error)
	ListSitesForCountryArea(ctx context.Context, db *gorm.DB, id int) ([]SiteRef, error)
	FindExistingCountryAreaIDs(ctx context.Context, db *gorm.DB, ids []int) ([]int, error)

	FindCategory(ctx context.Context, db *gorm.DB, id int) (*HeritageSiteCategory, error)
	ListCategories(ctx context.Context, db *gorm.DB) ([]HeritageSiteCategory, error)
	ListRegions(ctx context.Context, db *gorm.DB) ([]Region, error)
	ListSubRegions(ctx context.Context, db *gorm.DB) ([]SubRegion, error)
	ListIntermediateRegions(ctx context.Context, db *gorm.DB) ([]IntermediateRegion, error)
	ListCountryAreaChoices(ctx context.Context, db *gorm.DB) ([]CountryArea, error)
}
