package repository

import (
	"context"
	"testing"

	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/internal/testutil"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func siteNames(t *testing.T, filter domain.Filter) []string {
	t.Helper()

	conn := testutil.NewCatalogDB(t)
	r := Provide()
	ctx := context.Background()

	sites, err := r.List(ctx, conn, filter, pagination.Pagination{Page: 1, PageSize: 50})
	require.NoError(t, err)
	total, err := r.Count(ctx, conn, filter)
	require.NoError(t, err)
	require.Equal(t, int64(len(sites)), total)

	names := make([]string, 0, len(sites))
	for _, site := range sites {
		names = append(names, site.SiteName)
	}
	return names
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{
			name:   "site name is a case-insensitive substring",
			filter: domain.Filter{SiteName: "wall"},
			want:   []string{"Roman Walls of Lugo", "The Great Wall"},
		},
		{
			name:   "description substring",
			filter: domain.Filter{Description: "MUD FLATS"},
			want:   []string{"Wadden Sea"},
		},
		{
			name:   "percent is literal",
			filter: domain.Filter{Description: "100%"},
			want:   []string{"Frontiers of the Roman Empire"},
		},
		{
			name:   "underscore is literal",
			filter: domain.Filter{Description: "limes_line"},
			want:   []string{"Frontiers of the Roman Empire"},
		},
		{
			name:   "underscore does not match any char",
			filter: domain.Filter{SiteName: "Wa_den"},
			want:   []string{},
		},
		{
			name:   "category",
			filter: domain.Filter{CategoryID: intPtr(testutil.CategoryMixed)},
			want:   []string{"Historic Sanctuary of Machu Picchu"},
		},
		{
			name:   "date inscribed",
			filter: domain.Filter{DateInscribed: intPtr(1987)},
			want:   []string{"Frontiers of the Roman Empire", "The Great Wall"},
		},
		{
			name:   "region",
			filter: domain.Filter{RegionID: intPtr(testutil.RegionAmericas)},
			want:   []string{"Historic Sanctuary of Machu Picchu", "Old Havana and its Fortification System"},
		},
		{
			name:   "intermediate region",
			filter: domain.Filter{IntermediateRegionID: intPtr(testutil.IntermediateCaribbean)},
			want:   []string{"Old Havana and its Fortification System"},
		},
		{
			name:   "country listed once for a multi-country site",
			filter: domain.Filter{RegionID: intPtr(testutil.RegionEurope)},
			want:   []string{"Frontiers of the Roman Empire", "Upper Middle Rhine Valley", "Wadden Sea"},
		},
		{
			name:   "country area",
			filter: domain.Filter{CountryAreaID: intPtr(testutil.CountryItaly)},
			want:   []string{"Frontiers of the Roman Empire"},
		},
		{
			name: "levels from different countries do not combine",
			filter: domain.Filter{
				RegionID:    intPtr(testutil.RegionAsia),
				SubRegionID: intPtr(testutil.SubRegionWesternEurope),
			},
			want: []string{},
		},
		{
			name: "text and geography together",
			filter: domain.Filter{
				SiteName:    "roman",
				SubRegionID: intPtr(testutil.SubRegionSouthernEurope),
			},
			want: []string{"Frontiers of the Roman Empire"},
		},
		{
			name:   "empty filter lists everything in name order",
			filter: domain.Filter{},
			want: []string{
				"Frontiers of the Roman Empire",
				"Historic Sanctuary of Machu Picchu",
				"Old Havana and its Fortification System",
				"Roman Walls of Lugo",
				"The Great Wall",
				"Upper Middle Rhine Valley",
				"Wadden Sea",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, siteNames(t, tc.filter))
		})
	}
}

func TestLevelNamesFollowCountryOrder(t *testing.T) {
	conn := testutil.NewCatalogDB(t)
	r := Provide()
	ctx := context.Background()

	labels, err := r.CountryLabels(ctx, conn, testutil.SiteRomanLimes)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "DEU", labels[0].IsoAlpha3Code)
	assert.Equal(t, "ITA", labels[1].IsoAlpha3Code)

	subRegions, err := r.SubRegionNames(ctx, conn, testutil.SiteRomanLimes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Western Europe", "Southern Europe"}, subRegions)

	intermediate, err := r.IntermediateRegionNames(ctx, conn, testutil.SiteRomanLimes)
	require.NoError(t, err)
	assert.Empty(t, intermediate)
}

func TestDeleteJurisdictionsOnlyRemovesListed(t *testing.T) {
	conn := testutil.NewCatalogDB(t)
	r := Provide()
	ctx := context.Background()

	removed, err := r.DeleteJurisdictions(ctx, conn, testutil.SiteRomanLimes, []int{testutil.CountryItaly})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	ids, err := r.ListCountryAreaIDs(ctx, conn, testutil.SiteRomanLimes)
	require.NoError(t, err)
	assert.Equal(t, []int{testutil.CountryGermany}, ids)

	removed, err = r.DeleteJurisdictions(ctx, conn, testutil.SiteRomanLimes, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFilterFoldsNonASCIICase(t *testing.T) {
	conn := testutil.NewCatalogDB(t)
	r := Provide()
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, conn, &domain.HeritageSite{
		SiteName:               "Ödenburg Walls",
		Description:            "Église and ramparts above the lake.",
		HeritageSiteCategoryID: testutil.CategoryCultural,
	}))

	for _, filter := range []domain.Filter{
		{SiteName: "Ödenburg"},
		{SiteName: "ödenburg"},
		{SiteName: "ÖDENBURG WALLS"},
		{Description: "église"},
		{Description: "ÉGLISE"},
	} {
		sites, err := r.List(ctx, conn, filter, pagination.Pagination{Page: 1, PageSize: 50})
		require.NoError(t, err)
		require.Len(t, sites, 1, "%+v", filter)
		assert.Equal(t, "Ödenburg Walls", sites[0].SiteName)
	}
}
