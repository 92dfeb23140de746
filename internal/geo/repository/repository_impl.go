package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCountryAreas(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.CountryArea, error) {
	var items []*domain.CountryArea
	err := db.WithContext(ctx).
		Model(&domain.CountryArea{}).
		Preload("Location").
		Preload("Location.Region").
		Preload("Location.SubRegion").
		Preload("Location.IntermediateRegion").
		Preload("DevStatus").
		Order("country_area_name asc").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountCountryAreas(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.CountryArea{}).Count(&total).Error
	return total, err
}

func (r *repo) FindCountryArea(ctx context.Context, db *gorm.DB, id int) (*domain.CountryArea, error) {
	var item domain.CountryArea
	err := db.WithContext(ctx).
		Preload("Location").
		Preload("Location.Planet").
		Preload("Location.Region").
		Preload("Location.SubRegion").
		Preload("Location.IntermediateRegion").
		Preload("DevStatus").
		Where("country_area_id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListSitesForCountryArea(ctx context.Context, db *gorm.DB, id int) ([]domain.SiteRef, error) {
	var sites []domain.SiteRef
	err := db.WithContext(ctx).Raw(
		`SELECT hs.heritage_site_id, hs.site_name, hs.date_inscribed
		 FROM heritage_site hs
		 JOIN heritage_site_jurisdiction hsj ON hsj.heritage_site_id = hs.heritage_site_id
		 WHERE hsj.country_area_id = ?
		 ORDER BY hs.site_name`,
		id,
	).Scan(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *repo) FindExistingCountryAreaIDs(ctx context.Context, db *gorm.DB, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int
	err := db.WithContext(ctx).
		Model(&domain.CountryArea{}).
		Where("country_area_id IN ?", ids).
		Pluck("country_area_id", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repo) FindCategory(ctx context.Context, db *gorm.DB, id int) (*domain.HeritageSiteCategory, error) {
	var item domain.HeritageSiteCategory
	err := db.WithContext(ctx).Where("category_id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.HeritageSiteCategory, error) {
	var items []domain.HeritageSiteCategory
	err := db.WithContext(ctx).Order("category_name asc").Find(&items).Error
	return items, err
}

func (r *repo) ListRegions(ctx context.Context, db *gorm.DB) ([]domain.Region, error) {
	var items []domain.Region
	err := db.WithContext(ctx).Order("region_name asc").Find(&items).Error
	return items, err
}

func (r *repo) ListSubRegions(ctx context.Context, db *gorm.DB) ([]domain.SubRegion, error) {
	var items []domain.SubRegion
	err := db.WithContext(ctx).Order("sub_region_name asc").Find(&items).Error
	return items, err
}

func (r *repo) ListIntermediateRegions(ctx context.Context, db *gorm.DB) ([]domain.IntermediateRegion, error) {
	var items []domain.IntermediateRegion
	err := db.WithContext(ctx).Order("intermediate_region_name asc").Find(&items).Error
	return items, err
}

func (r *repo) ListCountryAreaChoices(ctx context.Context, db *gorm.DB) ([]domain.CountryArea, error) {
	var items []domain.CountryArea
	err := db.WithContext(ctx).
		Select("country_area_id", "country_area_name", "iso_alpha3_code", "m49_code", "location_id", "dev_status_id").
		Order("country_area_name asc").
		Find(&items).Error
	return items, err
}
