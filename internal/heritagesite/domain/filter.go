package domain

import "strings"

// Filter is a sparse set of conjunctive criteria. Zero values mean "not set".
type Filter struct {
	SiteName             string
	Description          string
	CategoryID           *int
	RegionID             *int
	SubRegionID          *int
	IntermediateRegionID *int
	CountryAreaID        *int
	DateInscribed        *int
}

// HasGeography reports whether any criterion walks the jurisdiction chain.
func (f Filter) HasGeography() bool {
	return f.RegionID != nil || f.SubRegionID != nil || f.IntermediateRegionID != nil || f.CountryAreaID != nil
}

func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.SiteName) == "" &&
		strings.TrimSpace(f.Description) == "" &&
		f.CategoryID == nil &&
		f.DateInscribed == nil &&
		!f.HasGeography()
}

// Criteria names the criteria in use, sorted and joined with "+", for metric labels.
func (f Filter) Criteria() string {
	var parts []string
	if strings.TrimSpace(f.SiteName) != "" {
		parts = append(parts, "site_name")
	}
	if strings.TrimSpace(f.Description) != "" {
		parts = append(parts, "description")
	}
	if f.CategoryID != nil {
		parts = append(parts, "category")
	}
	if f.DateInscribed != nil {
		parts = append(parts, "date_inscribed")
	}
	if f.HasGeography() {
		parts = append(parts, "geography")
	}
	return strings.Join(parts, "+")
}
