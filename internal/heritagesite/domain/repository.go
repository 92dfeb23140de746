package domain

import (
	"context"

	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, site *HeritageSite) error
	Update(ctx context.Context, db *gorm.DB, site *HeritageSite) error
	Delete(ctx context.Context, db *gorm.DB, id int) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*HeritageSite, error)
	// FindIDBySiteName returns 0 when no site carries name.
	FindIDBySiteName(ctx context.Context, db *gorm.DB, name string) (int, error)

	List(ctx context.Context, db *gorm.DB, filter Filter, page pagination.Pagination) ([]*HeritageSite, error)
	Count(ctx context.Context, db *gorm.DB, filter Filter) (int64, error)
	CountByCategory(ctx context.Context, db *gorm.DB) ([]CategoryCount, error)
	CountJurisdictions(ctx context.Context, db *gorm.DB) (int64, error)

	ListCountryAreaIDs(ctx context.Context, db *gorm.DB, siteID int) ([]int, error)
	InsertJurisdictions(ctx context.Context, db *gorm.DB, siteID int, countryAreaIDs []int) error
	DeleteJurisdictions(ctx context.Context, db *gorm.DB, siteID int, countryAreaIDs []int) (int64, error)
	DeleteAllJurisdictions(ctx context.Context, db *gorm.DB, siteID int) (int64, error)

	CountryLabels(ctx context.Context, db *gorm.DB, siteID int) ([]CountryLabel, error)
	RegionNames(ctx context.Context, db *gorm.DB, siteID int) ([]string, error)
	SubRegionNames(ctx context.Context, db *gorm.DB, siteID int) ([]string, error)
	IntermediateRegionNames(ctx context.Context, db *gorm.DB, siteID int) ([]string, error)
}
