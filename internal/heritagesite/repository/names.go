package repository

import (
	"context"

	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"gorm.io/gorm"
)

func (r *repo) CountryLabels(ctx context.Context, db *gorm.DB, siteID int) ([]domain.CountryLabel, error) {
	var rows []domain.CountryLabel
	err := db.WithContext(ctx).Raw(
		`SELECT ca.country_area_name, ca.iso_alpha3_code
		 FROM heritage_site_jurisdiction hsj
		 JOIN country_area ca ON ca.country_area_id = hsj.country_area_id
		 WHERE hsj.heritage_site_id = ?
		 ORDER BY ca.country_area_name`,
		siteID,
	).Scan(&rows).Error
	return rows, err
}

// The level queries walk the site's countries in country-name order; inner
// joins drop countries with no value at that level.

func (r *repo) RegionNames(ctx context.Context, db *gorm.DB, siteID int) ([]string, error) {
	return r.levelNames(ctx, db, siteID,
		"JOIN region lvl ON lvl.region_id = loc.region_id", "lvl.region_name")
}

func (r *repo) SubRegionNames(ctx context.Context, db *gorm.DB, siteID int) ([]string, error) {
	return r.levelNames(ctx, db, siteID,
		"JOIN sub_region lvl ON lvl.sub_region_id = loc.sub_region_id", "lvl.sub_region_name")
}

func (r *repo) IntermediateRegionNames(ctx context.Context, db *gorm.DB, siteID int) ([]string, error) {
	return r.levelNames(ctx, db, siteID,
		"JOIN intermediate_region lvl ON lvl.intermediate_region_id = loc.intermediate_region_id", "lvl.intermediate_region_name")
}

func (r *repo) levelNames(ctx context.Context, db *gorm.DB, siteID int, levelJoin, column string) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Table("heritage_site_jurisdiction AS hsj").
		Joins("JOIN country_area ca ON ca.country_area_id = hsj.country_area_id").
		Joins("JOIN location loc ON loc.location_id = ca.location_id").
		Joins(levelJoin).
		Where("hsj.heritage_site_id = ?", siteID).
		Order("ca.country_area_name").
		Pluck(column, &names).Error
	return names, err
}
