package repository

import (
	"strings"

	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"gorm.io/gorm"
)

// likeEscape is portable across postgres, mysql and sqlite; a backslash is
// not, because mysql treats it as a string-literal escape.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern is lowered in SQL next to the column so both sides fold
// the same way on every dialect.
func containsPattern(value string) string {
	return "%" + likeReplacer.Replace(value) + "%"
}

// applyFilter narrows stmt (rooted at heritage_site) by every criterion set in f.
func applyFilter(db *gorm.DB, stmt *gorm.DB, f domain.Filter) *gorm.DB {
	if name := strings.TrimSpace(f.SiteName); name != "" {
		stmt = stmt.Where("LOWER(heritage_site.site_name) LIKE LOWER(?) ESCAPE '"+likeEscape+"'", containsPattern(name))
	}
	if description := strings.TrimSpace(f.Description); description != "" {
		stmt = stmt.Where("LOWER(heritage_site.description) LIKE LOWER(?) ESCAPE '"+likeEscape+"'", containsPattern(description))
	}
	if f.CategoryID != nil {
		stmt = stmt.Where("heritage_site.heritage_site_category_id = ?", *f.CategoryID)
	}
	if f.DateInscribed != nil {
		stmt = stmt.Where("heritage_site.date_inscribed = ?", *f.DateInscribed)
	}
	if f.HasGeography() {
		stmt = stmt.Where("EXISTS (?)", jurisdictionSubquery(db, f))
	}
	return stmt
}

// jurisdictionSubquery matches when ONE country of the site satisfies every
// geographic criterion at once, so contradictory levels select nothing.
func jurisdictionSubquery(db *gorm.DB, f domain.Filter) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("heritage_site_jurisdiction AS hsj").
		Select("1").
		Joins("JOIN country_area AS ca ON ca.country_area_id = hsj.country_area_id").
		Joins("JOIN location AS loc ON loc.location_id = ca.location_id").
		Where("hsj.heritage_site_id = heritage_site.heritage_site_id")

	if f.CountryAreaID != nil {
		sub = sub.Where("hsj.country_area_id = ?", *f.CountryAreaID)
	}
	if f.RegionID != nil {
		sub = sub.Where("loc.region_id = ?", *f.RegionID)
	}
	if f.SubRegionID != nil {
		sub = sub.Where("loc.sub_region_id = ?", *f.SubRegionID)
	}
	if f.IntermediateRegionID != nil {
		sub = sub.Where("loc.intermediate_region_id = ?", *f.IntermediateRegionID)
	}
	return sub
}
