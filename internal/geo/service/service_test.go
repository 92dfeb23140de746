package service

import (
	"context"
	"testing"

	"github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/internal/geo/repository"
	"github.com/smallbiznis/heritage/internal/testutil"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	return New(Params{
		DB:   testutil.NewCatalogDB(t),
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
}

func TestListCountryAreas(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.ListCountryAreas(context.Background(), domain.ListCountryAreaRequest{Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.Total)
	assert.Equal(t, 2, resp.NumPages)
	assert.True(t, resp.HasNext)
	require.Len(t, resp.CountryAreas, 4)
	assert.Equal(t, "China", resp.CountryAreas[0].CountryAreaName)
	assert.Equal(t, "Germany", resp.CountryAreas[3].CountryAreaName)

	cuba := resp.CountryAreas[1]
	require.NotNil(t, cuba.Location)
	require.NotNil(t, cuba.Location.IntermediateRegion)
	assert.Equal(t, "Caribbean", cuba.Location.IntermediateRegion.IntermediateRegionName)
	require.NotNil(t, cuba.DevStatus)
	assert.Equal(t, "Developing", cuba.DevStatus.DevStatusName)
}

func TestListCountryAreasPastLastPage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ListCountryAreas(context.Background(), domain.ListCountryAreaRequest{Page: 9, PageSize: 4})
	assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)

	_, err = svc.ListCountryAreas(context.Background(), domain.ListCountryAreaRequest{Page: 1 << 62, PageSize: 4})
	assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)

	resp, err := svc.ListCountryAreas(context.Background(), domain.ListCountryAreaRequest{Page: 2, PageSize: 4})
	require.NoError(t, err)
	assert.Len(t, resp.CountryAreas, 2)
	assert.False(t, resp.HasNext)
}

func TestGetCountryArea(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	detail, err := svc.GetCountryArea(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "DEU", detail.IsoAlpha3Code)
	require.NotNil(t, detail.Location)
	require.NotNil(t, detail.Location.Planet)
	assert.Equal(t, "Earth", detail.Location.Planet.PlanetName)
	assert.Nil(t, detail.Location.IntermediateRegion)

	names := make([]string, 0, len(detail.Sites))
	for _, site := range detail.Sites {
		names = append(names, site.SiteName)
	}
	assert.Equal(t, []string{"Frontiers of the Roman Empire", "Upper Middle Rhine Valley", "Wadden Sea"}, names)

	peru, err := svc.GetCountryArea(ctx, "6")
	require.NoError(t, err)
	assert.Nil(t, peru.DevStatus)
}

func TestGetCountryAreaErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetCountryArea(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetCountryArea(ctx, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetCountryArea(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.GetCategory(ctx, testutil.CategoryNatural)
	require.NoError(t, err)
	assert.Equal(t, "Natural", category.CategoryName)

	_, err = svc.GetCategory(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestChoices(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	form, err := svc.FormChoices(ctx)
	require.NoError(t, err)
	assert.Len(t, form.Categories, 3)
	assert.Len(t, form.CountryAreas, 6)
	assert.Empty(t, form.Regions)

	filter, err := svc.FilterChoices(ctx)
	require.NoError(t, err)
	require.Len(t, filter.Regions, 3)
	assert.Equal(t, "Americas", filter.Regions[0].RegionName)
	assert.Len(t, filter.SubRegions, 4)
	assert.Len(t, filter.IntermediateRegions, 2)
}

func TestMissingCountryAreaIDs(t *testing.T) {
	svc := newTestService(t)

	missing, err := svc.MissingCountryAreaIDs(context.Background(), []int{testutil.CountryFrance, 77, testutil.CountryItaly, 78})
	require.NoError(t, err)
	assert.Equal(t, []int{77, 78}, missing)

	missing, err = svc.MissingCountryAreaIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
