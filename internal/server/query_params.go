package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
)

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalFloat(value string) (*float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// filterQuery is the query string of the filter page and the REST list.
type filterQuery struct {
	SiteName           string `form:"site_name" json:"site_name"`
	Description        string `form:"description" json:"description"`
	Category           string `form:"heritage_site_category" json:"heritage_site_category"`
	Region             string `form:"region" json:"region"`
	SubRegion          string `form:"sub_region" json:"sub_region"`
	IntermediateRegion string `form:"intermediate_region" json:"intermediate_region"`
	CountryArea        string `form:"country_area" json:"country_area"`
	DateInscribed      string `form:"date_inscribed" json:"date_inscribed"`
	Page               int    `form:"page" json:"page"`
	PageSize           int    `form:"page_size" json:"page_size"`
}

// bindFilterQuery reads the criteria; a non-numeric id or year is reported
// on its own field.
func bindFilterQuery(c *gin.Context) (filterQuery, sitedomain.Filter, error) {
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, sitedomain.Filter{}, bindingError(err)
	}

	filter := sitedomain.Filter{
		SiteName:    strings.TrimSpace(q.SiteName),
		Description: strings.TrimSpace(q.Description),
	}

	verrs := &ValidationErrors{}
	ints := []struct {
		field string
		raw   string
		dst   **int
	}{
		{"heritage_site_category", q.Category, &filter.CategoryID},
		{"region", q.Region, &filter.RegionID},
		{"sub_region", q.SubRegion, &filter.SubRegionID},
		{"intermediate_region", q.IntermediateRegion, &filter.IntermediateRegionID},
		{"country_area", q.CountryArea, &filter.CountryAreaID},
		{"date_inscribed", q.DateInscribed, &filter.DateInscribed},
	}
	for _, item := range ints {
		parsed, err := parseOptionalInt(item.raw)
		if err != nil {
			verrs.Errors = append(verrs.Errors, ValidationError{
				Field:   item.field,
				Code:    "invalid",
				Message: "enter a whole number",
			})
			continue
		}
		*item.dst = parsed
	}
	if len(verrs.Errors) > 0 {
		return q, sitedomain.Filter{}, verrs
	}
	return q, filter, nil
}
