package domain

import (
	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
)

type HeritageSite struct {
	HeritageSiteID         int      `gorm:"column:heritage_site_id;primaryKey;autoIncrement" json:"heritage_site_id"`
	SiteName               string   `gorm:"column:site_name;size:255;not null;uniqueIndex" json:"site_name"`
	Description            string   `gorm:"column:description;type:text;not null" json:"description"`
	Justification          *string  `gorm:"column:justification;type:text" json:"justification"`
	DateInscribed          *int     `gorm:"column:date_inscribed" json:"date_inscribed"`
	Longitude              *float64 `gorm:"column:longitude;type:decimal(11,8)" json:"longitude"`
	Latitude               *float64 `gorm:"column:latitude;type:decimal(10,8)" json:"latitude"`
	AreaHectares           *float64 `gorm:"column:area_hectares" json:"area_hectares"`
	HeritageSiteCategoryID int      `gorm:"column:heritage_site_category_id;not null" json:"heritage_site_category_id"`
	Transboundary          int      `gorm:"column:transboundary;not null" json:"transboundary"`

	HeritageSiteCategory *geodomain.HeritageSiteCategory `gorm:"foreignKey:HeritageSiteCategoryID;references:CategoryID" json:"heritage_site_category,omitempty"`
}

func (HeritageSite) TableName() string { return "heritage_site" }

// HeritageSiteJurisdiction links a site to one country/area.
type HeritageSiteJurisdiction struct {
	HeritageSiteJurisdictionID int `gorm:"column:heritage_site_jurisdiction_id;primaryKey;autoIncrement" json:"heritage_site_jurisdiction_id"`
	HeritageSiteID             int `gorm:"column:heritage_site_id;not null;index" json:"heritage_site_id"`
	CountryAreaID              int `gorm:"column:country_area_id;not null;index" json:"country_area_id"`
}

func (HeritageSiteJurisdiction) TableName() string { return "heritage_site_jurisdiction" }

// CountryLabel is one row of the country name aggregation.
type CountryLabel struct {
	CountryAreaName string `gorm:"column:country_area_name"`
	IsoAlpha3Code   string `gorm:"column:iso_alpha3_code"`
}

type CategoryCount struct {
	CategoryName string `gorm:"column:category_name"`
	Total        int64  `gorm:"column:total"`
}
