package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/heritage/pkg/db/pagination"
)

// SiteInput carries every editable field of a site plus its country selection.
type SiteInput struct {
	SiteName               string
	Description            string
	Justification          *string
	DateInscribed          *int
	Longitude              *float64
	Latitude               *float64
	AreaHectares           *float64
	HeritageSiteCategoryID int
	Transboundary          int
	CountryAreaIDs         []int
}

type CreateSiteRequest struct {
	SiteInput
}

type UpdateSiteRequest struct {
	ID string
	SiteInput
}

// PatchSiteRequest changes only the fields marked Set. A Set field with a
// nil Value clears a nullable column; on a required column it is a field
// error.
type PatchSiteRequest struct {
	ID                     string
	SiteName               Optional[string]
	Description            Optional[string]
	Justification          Optional[string]
	DateInscribed          Optional[int]
	Longitude              Optional[float64]
	Latitude               Optional[float64]
	AreaHectares           Optional[float64]
	HeritageSiteCategoryID Optional[int]
	Transboundary          Optional[int]
	CountryAreaIDs         Optional[[]int]
}

// Optional is one field of a partial update.
type Optional[T any] struct {
	Set   bool
	Value *T
}

type ListSiteRequest struct {
	Filter   Filter
	Page     int
	PageSize int
}

// SiteNames are the derived, comma-joined geography labels of a site.
type SiteNames struct {
	CountryAreaNames        string `json:"country_area_names"`
	RegionNames             string `json:"region_names"`
	SubRegionNames          string `json:"sub_region_names"`
	IntermediateRegionNames string `json:"intermediate_region_names"`
}

type Site struct {
	HeritageSite
	Slug           string `json:"slug"`
	CountryAreaIDs []int  `json:"country_area"`
	SiteNames
}

type SiteListItem struct {
	HeritageSite
	Slug             string `json:"slug"`
	CountryAreaNames string `json:"country_area_names"`
}

type ListSiteResponse struct {
	pagination.PageInfo
	Sites []SiteListItem `json:"sites"`
}

type CatalogStats struct {
	Sites           int64            `json:"sites"`
	Jurisdictions   int64            `json:"jurisdictions"`
	SitesByCategory map[string]int64 `json:"sites_by_category"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	Create(ctx context.Context, req CreateSiteRequest) (Site, error)
	Get(ctx context.Context, id string) (Site, error)
	List(ctx context.Context, req ListSiteRequest) (ListSiteResponse, error)
	Update(ctx context.Context, req UpdateSiteRequest) (Site, error)
	Patch(ctx context.Context, req PatchSiteRequest) (Site, error)
	Delete(ctx context.Context, id string) error

	Stats(ctx context.Context) (CatalogStats, error)
}

// EditLocker serializes concurrent edits of the same site. The returned
// release func must be called once the write has committed or failed.
type EditLocker interface {
	LockSite(ctx context.Context, siteID int) (func(), error)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
	ErrInvalidSiteName      = errors.New("invalid_site_name")
	ErrDuplicateSiteName    = errors.New("duplicate_site_name")
	ErrInvalidDescription   = errors.New("invalid_description")
	ErrInvalidCategory      = errors.New("invalid_category")
	ErrInvalidDateInscribed = errors.New("invalid_date_inscribed")
	ErrInvalidLongitude     = errors.New("invalid_longitude")
	ErrInvalidLatitude      = errors.New("invalid_latitude")
	ErrInvalidAreaHectares  = errors.New("invalid_area_hectares")
	ErrInvalidTransboundary = errors.New("invalid_transboundary")
	ErrCountryAreaRequired  = errors.New("country_area_required")
	ErrInvalidCountryArea   = errors.New("invalid_country_area")
	ErrSiteLocked           = errors.New("site_locked")
)
