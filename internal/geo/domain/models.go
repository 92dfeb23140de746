package domain

// Reference tables are owned by the UNSD/UNESCO import and never migrated by
// this service. Column tags pin the legacy names.

type Planet struct {
	PlanetID   int     `gorm:"column:planet_id;primaryKey;autoIncrement" json:"planet_id"`
	PlanetName string  `gorm:"column:planet_name;size:50;not null;uniqueIndex" json:"planet_name"`
	UnsdName   *string `gorm:"column:unsd_name;size:50" json:"unsd_name,omitempty"`
}

func (Planet) TableName() string { return "planet" }

type Region struct {
	RegionID   int    `gorm:"column:region_id;primaryKey;autoIncrement" json:"region_id"`
	RegionName string `gorm:"column:region_name;size:100;not null;uniqueIndex" json:"region_name"`
	PlanetID   int    `gorm:"column:planet_id;not null" json:"planet_id"`
}

func (Region) TableName() string { return "region" }

type SubRegion struct {
	SubRegionID   int    `gorm:"column:sub_region_id;primaryKey;autoIncrement" json:"sub_region_id"`
	SubRegionName string `gorm:"column:sub_region_name;size:100;not null;uniqueIndex" json:"sub_region_name"`
	RegionID      int    `gorm:"column:region_id;not null" json:"region_id"`
}

func (SubRegion) TableName() string { return "sub_region" }

type IntermediateRegion struct {
	IntermediateRegionID   int    `gorm:"column:intermediate_region_id;primaryKey;autoIncrement" json:"intermediate_region_id"`
	IntermediateRegionName string `gorm:"column:intermediate_region_name;size:100;not null;uniqueIndex" json:"intermediate_region_name"`
	SubRegionID            int    `gorm:"column:sub_region_id;not null" json:"sub_region_id"`
}

func (IntermediateRegion) TableName() string { return "intermediate_region" }

// Location pins a country to one node of the hierarchy. Only the planet is
// mandatory; lower levels are NULL where UNSD defines none.
type Location struct {
	LocationID           int  `gorm:"column:location_id;primaryKey;autoIncrement" json:"location_id"`
	PlanetID             int  `gorm:"column:planet_id;not null" json:"planet_id"`
	RegionID             *int `gorm:"column:region_id" json:"region_id,omitempty"`
	SubRegionID          *int `gorm:"column:sub_region_id" json:"sub_region_id,omitempty"`
	IntermediateRegionID *int `gorm:"column:intermediate_region_id" json:"intermediate_region_id,omitempty"`

	Planet             *Planet             `gorm:"foreignKey:PlanetID;references:PlanetID" json:"planet,omitempty"`
	Region             *Region             `gorm:"foreignKey:RegionID;references:RegionID" json:"region,omitempty"`
	SubRegion          *SubRegion          `gorm:"foreignKey:SubRegionID;references:SubRegionID" json:"sub_region,omitempty"`
	IntermediateRegion *IntermediateRegion `gorm:"foreignKey:IntermediateRegionID;references:IntermediateRegionID" json:"intermediate_region,omitempty"`
}

func (Location) TableName() string { return "location" }

type DevStatus struct {
	DevStatusID   int    `gorm:"column:dev_status_id;primaryKey;autoIncrement" json:"dev_status_id"`
	DevStatusName string `gorm:"column:dev_status_name;size:25;not null;uniqueIndex" json:"dev_status_name"`
}

func (DevStatus) TableName() string { return "dev_status" }

type CountryArea struct {
	CountryAreaID   int    `gorm:"column:country_area_id;primaryKey;autoIncrement" json:"country_area_id"`
	CountryAreaName string `gorm:"column:country_area_name;size:100;not null;uniqueIndex" json:"country_area_name"`
	M49Code         int16  `gorm:"column:m49_code;not null" json:"m49_code"`
	IsoAlpha3Code   string `gorm:"column:iso_alpha3_code;size:3;not null" json:"iso_alpha3_code"`
	LocationID      int    `gorm:"column:location_id;not null" json:"location_id"`
	DevStatusID     *int   `gorm:"column:dev_status_id" json:"dev_status_id,omitempty"`

	Location  *Location  `gorm:"foreignKey:LocationID;references:LocationID" json:"location,omitempty"`
	DevStatus *DevStatus `gorm:"foreignKey:DevStatusID;references:DevStatusID" json:"dev_status,omitempty"`
}

func (CountryArea) TableName() string { return "country_area" }

type HeritageSiteCategory struct {
	CategoryID   int    `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	CategoryName string `gorm:"column:category_name;size:25;not null;uniqueIndex" json:"category_name"`
}

func (HeritageSiteCategory) TableName() string { return "heritage_site_category" }

// SiteRef is the slice of a heritage site shown on a country page.
type SiteRef struct {
	HeritageSiteID int    `gorm:"column:heritage_site_id" json:"heritage_site_id"`
	SiteName       string `gorm:"column:site_name" json:"site_name"`
	DateInscribed  *int   `gorm:"column:date_inscribed" json:"date_inscribed,omitempty"`
}
