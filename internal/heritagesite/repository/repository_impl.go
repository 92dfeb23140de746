package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, site *domain.HeritageSite) error {
	return db.WithContext(ctx).Omit("HeritageSiteCategory").Create(site).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, site *domain.HeritageSite) error {
	return db.WithContext(ctx).
		Model(&domain.HeritageSite{}).
		Where("heritage_site_id = ?", site.HeritageSiteID).
		Updates(map[string]any{
			"site_name":                 site.SiteName,
			"description":               site.Description,
			"justification":             site.Justification,
			"date_inscribed":            site.DateInscribed,
			"longitude":                 site.Longitude,
			"latitude":                  site.Latitude,
			"area_hectares":             site.AreaHectares,
			"heritage_site_category_id": site.HeritageSiteCategoryID,
			"transboundary":             site.Transboundary,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).
		Where("heritage_site_id = ?", id).
		Delete(&domain.HeritageSite{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int) (*domain.HeritageSite, error) {
	var site domain.HeritageSite
	err := db.WithContext(ctx).
		Preload("HeritageSiteCategory").
		Where("heritage_site_id = ?", id).
		First(&site).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *repo) FindIDBySiteName(ctx context.Context, db *gorm.DB, name string) (int, error) {
	var ids []int
	err := db.WithContext(ctx).
		Model(&domain.HeritageSite{}).
		Where("site_name = ?", name).
		Limit(1).
		Pluck("heritage_site_id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]*domain.HeritageSite, error) {
	var sites []*domain.HeritageSite
	stmt := db.WithContext(ctx).
		Model(&domain.HeritageSite{}).
		Preload("HeritageSiteCategory")
	stmt = applyFilter(db.WithContext(ctx), stmt, filter)
	err := stmt.
		Order("heritage_site.site_name asc, heritage_site.heritage_site_id asc").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB, filter domain.Filter) (int64, error) {
	var total int64
	stmt := db.WithContext(ctx).Model(&domain.HeritageSite{})
	stmt = applyFilter(db.WithContext(ctx), stmt, filter)
	if err := stmt.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) CountByCategory(ctx context.Context, db *gorm.DB) ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	err := db.WithContext(ctx).Raw(
		`SELECT c.category_name, COUNT(hs.heritage_site_id) AS total
		 FROM heritage_site_category c
		 LEFT JOIN heritage_site hs ON hs.heritage_site_category_id = c.category_id
		 GROUP BY c.category_name
		 ORDER BY c.category_name`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) CountJurisdictions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.HeritageSiteJurisdiction{}).Count(&total).Error
	return total, err
}

func (r *repo) ListCountryAreaIDs(ctx context.Context, db *gorm.DB, siteID int) ([]int, error) {
	var ids []int
	err := db.WithContext(ctx).
		Model(&domain.HeritageSiteJurisdiction{}).
		Where("heritage_site_id = ?", siteID).
		Order("country_area_id asc").
		Pluck("country_area_id", &ids).Error
	return ids, err
}

func (r *repo) InsertJurisdictions(ctx context.Context, db *gorm.DB, siteID int, countryAreaIDs []int) error {
	if len(countryAreaIDs) == 0 {
		return nil
	}
	rows := make([]domain.HeritageSiteJurisdiction, 0, len(countryAreaIDs))
	for _, countryAreaID := range countryAreaIDs {
		rows = append(rows, domain.HeritageSiteJurisdiction{
			HeritageSiteID: siteID,
			CountryAreaID:  countryAreaID,
		})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *repo) DeleteJurisdictions(ctx context.Context, db *gorm.DB, siteID int, countryAreaIDs []int) (int64, error) {
	if len(countryAreaIDs) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Where("heritage_site_id = ? AND country_area_id IN ?", siteID, countryAreaIDs).
		Delete(&domain.HeritageSiteJurisdiction{})
	return res.RowsAffected, res.Error
}

func (r *repo) DeleteAllJurisdictions(ctx context.Context, db *gorm.DB, siteID int) (int64, error) {
	res := db.WithContext(ctx).
		Where("heritage_site_id = ?", siteID).
		Delete(&domain.HeritageSiteJurisdiction{})
	return res.RowsAffected, res.Error
}
