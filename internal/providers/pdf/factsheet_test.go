package pdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
)

func sampleSite() sitedomain.Site {
	year := 2000
	lat := 43.0097
	lng := -7.5567
	area := 1.68
	return sitedomain.Site{
		HeritageSite: sitedomain.HeritageSite{
			HeritageSiteID:         42,
			SiteName:               "Roman Walls of Lugo",
			Description:            "The Roman walls of Lugo were built in the later part of the 3rd century.",
			DateInscribed:          &year,
			Latitude:               &lat,
			Longitude:              &lng,
			AreaHectares:           &area,
			HeritageSiteCategoryID: 1,
			HeritageSiteCategory:   &geodomain.HeritageSiteCategory{CategoryID: 1, CategoryName: "Cultural"},
		},
		Slug: "roman-walls-of-lugo",
		SiteNames: sitedomain.SiteNames{
			CountryAreaNames: "Spain (ESP)",
			RegionNames:      "Europe",
			SubRegionNames:   "Southern Europe",
		},
	}
}

func TestGenerateFactSheet(t *testing.T) {
	p := New()

	r, err := p.GenerateFactSheet(context.Background(), sampleSite())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", body[:min(len(body), 8)])
	}
}

func TestGenerateFactSheetEmptySite(t *testing.T) {
	_, err := New().GenerateFactSheet(context.Background(), sitedomain.Site{})
	if !errors.Is(err, ErrEmptySite) {
		t.Fatalf("expected ErrEmptySite, got %v", err)
	}
}

func TestFactRows(t *testing.T) {
	rows := factRows(sampleSite())
	got := map[string]string{}
	for _, row := range rows {
		got[row.label] = row.value
	}

	cases := map[string]string{
		"Category":             "Cultural",
		"Date inscribed":       "2000",
		"Countries/areas":      "Spain (ESP)",
		"Intermediate regions": notRecorded,
		"Transboundary":        "No",
		"Area (hectares)":      "1.68",
		"Latitude":             "43.00970000",
	}
	for label, want := range cases {
		if got[label] != want {
			t.Fatalf("%s: expected %q, got %q", label, want, got[label])
		}
	}
}
