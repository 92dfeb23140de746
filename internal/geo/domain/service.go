package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/heritage/pkg/db/pagination"
)

type ListCountryAreaRequest struct {
	Page     int
	PageSize int
}

type ListCountryAreaResponse struct {
	pagination.PageInfo
	CountryAreas []CountryArea `json:"country_areas"`
}

type CountryAreaDetail struct {
	CountryArea
	Sites []SiteRef `json:"sites"`
}

// Choices are the option lists offered by site forms and the filter page.
type Choices struct {
	Categories          []HeritageSiteCategory `json:"categories"`
	Regions             []Region               `json:"regions,omitempty"`
	SubRegions          []SubRegion            `json:"sub_regions,omitempty"`
	IntermediateRegions []IntermediateRegion   `json:"intermediate_regions,omitempty"`
	CountryAreas        []CountryArea          `json:"country_areas"`
}

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	ListCountryAreas(ctx context.Context, req ListCountryAreaRequest) (ListCountryAreaResponse, error)
	GetCountryArea(ctx context.Context, id string) (CountryAreaDetail, error)
	CountCountryAreas(ctx context.Context) (int64, error)

	GetCategory(ctx context.Context, id int) (HeritageSiteCategory, error)
	// FormChoices lists categories and countries; FilterChoices adds every
	// region level.
	FormChoices(ctx context.Context) (Choices, error)
	FilterChoices(ctx context.Context) (Choices, error)

	// MissingCountryAreaIDs returns the ids in ids that have no country_area row.
	MissingCountryAreaIDs(ctx context.Context, ids []int) ([]int, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidCategory = errors.New("invalid_category")
)
