package server

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
)

// nullInt is an optional number that binds from a JSON number or a form
// value. Empty input and JSON null leave it unset.
type nullInt struct {
	ptr *int
}

func (n *nullInt) UnmarshalParam(param string) error {
	parsed, err := parseOptionalInt(param)
	if err != nil {
		return err
	}
	n.ptr = parsed
	return nil
}

func (n *nullInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.ptr = nil
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		return n.UnmarshalParam(str)
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.ptr = &v
	return nil
}

func (n nullInt) MarshalJSON() ([]byte, error) {
	if n.ptr == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*n.ptr)), nil
}

type nullFloat struct {
	ptr *float64
}

func (n *nullFloat) UnmarshalParam(param string) error {
	parsed, err := parseOptionalFloat(param)
	if err != nil {
		return err
	}
	n.ptr = parsed
	return nil
}

func (n *nullFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.ptr = nil
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		return n.UnmarshalParam(str)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.ptr = &v
	return nil
}

func (n nullFloat) MarshalJSON() ([]byte, error) {
	if n.ptr == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(*n.ptr, 'f', -1, 64)), nil
}

// siteForm is the create/update payload of both the page form and the
// REST resource. Field rules are enforced by the site service so every
// failing field is reported at once.
type siteForm struct {
	SiteName               string    `form:"site_name" json:"site_name"`
	Description            string    `form:"description" json:"description"`
	Justification          string    `form:"justification" json:"justification"`
	DateInscribed          nullInt   `form:"date_inscribed" json:"date_inscribed"`
	Longitude              nullFloat `form:"longitude" json:"longitude"`
	Latitude               nullFloat `form:"latitude" json:"latitude"`
	AreaHectares           nullFloat `form:"area_hectares" json:"area_hectares"`
	HeritageSiteCategoryID int       `form:"heritage_site_category" json:"heritage_site_category"`
	Transboundary          int       `form:"transboundary" json:"transboundary"`
	CountryAreaIDs         []int     `form:"country_area" json:"country_area"`
}

func (f siteForm) input() sitedomain.SiteInput {
	var justification *string
	if trimmed := strings.TrimSpace(f.Justification); trimmed != "" {
		justification = &trimmed
	}
	return sitedomain.SiteInput{
		SiteName:               f.SiteName,
		Description:            f.Description,
		Justification:          justification,
		DateInscribed:          f.DateInscribed.ptr,
		Longitude:              f.Longitude.ptr,
		Latitude:               f.Latitude.ptr,
		AreaHectares:           f.AreaHectares.ptr,
		HeritageSiteCategoryID: f.HeritageSiteCategoryID,
		Transboundary:          f.Transboundary,
		CountryAreaIDs:         f.CountryAreaIDs,
	}
}

// siteFormFrom fills a form with the stored values of site, for the update page.
func siteFormFrom(site sitedomain.Site) siteForm {
	form := siteForm{
		SiteName:               site.SiteName,
		Description:            site.Description,
		DateInscribed:          nullInt{ptr: site.DateInscribed},
		Longitude:              nullFloat{ptr: site.Longitude},
		Latitude:               nullFloat{ptr: site.Latitude},
		AreaHectares:           nullFloat{ptr: site.AreaHectares},
		HeritageSiteCategoryID: site.HeritageSiteCategoryID,
		Transboundary:          site.Transboundary,
		CountryAreaIDs:         site.CountryAreaIDs,
	}
	if site.Justification != nil {
		form.Justification = *site.Justification
	}
	return form
}

// sitePatch is the PATCH body; absent fields keep their value and an
// explicit null clears a nullable field.
type sitePatch struct {
	SiteName               patchField[string]  `json:"site_name"`
	Description            patchField[string]  `json:"description"`
	Justification          patchField[string]  `json:"justification"`
	DateInscribed          patchField[int]     `json:"date_inscribed"`
	Longitude              patchField[float64] `json:"longitude"`
	Latitude               patchField[float64] `json:"latitude"`
	AreaHectares           patchField[float64] `json:"area_hectares"`
	HeritageSiteCategoryID patchField[int]     `json:"heritage_site_category"`
	Transboundary          patchField[int]     `json:"transboundary"`
	CountryAreaIDs         patchField[[]int]   `json:"country_area"`
}

func (p sitePatch) request(id string) sitedomain.PatchSiteRequest {
	return sitedomain.PatchSiteRequest{
		ID:                     id,
		SiteName:               p.SiteName.optional(),
		Description:            p.Description.optional(),
		Justification:          p.Justification.optional(),
		DateInscribed:          p.DateInscribed.optional(),
		Longitude:              p.Longitude.optional(),
		Latitude:               p.Latitude.optional(),
		AreaHectares:           p.AreaHectares.optional(),
		HeritageSiteCategoryID: p.HeritageSiteCategoryID.optional(),
		Transboundary:          p.Transboundary.optional(),
		CountryAreaIDs:         p.CountryAreaIDs.optional(),
	}
}

// patchField tells an absent key apart from an explicit null.
type patchField[T any] struct {
	set   bool
	value *T
}

// UnmarshalJSON only runs when the key is present, null included.
func (f *patchField[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	f.value = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}

func (f patchField[T]) optional() sitedomain.Optional[T] {
	return sitedomain.Optional[T]{Set: f.set, Value: f.value}
}

type loginForm struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
