package service

import (
	"context"
	"errors"
	"testing"

	georepo "github.com/smallbiznis/heritage/internal/geo/repository"
	geoservice "github.com/smallbiznis/heritage/internal/geo/service"
	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/internal/heritagesite/repository"
	"github.com/smallbiznis/heritage/internal/testutil"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	repo domain.Repository
	svc  domain.Service
}

// jurisdictions returns the stored link rows for a site.
func (f fixture) jurisdictions(ctx context.Context, siteID int) ([]domain.HeritageSiteJurisdiction, error) {
	var rows []domain.HeritageSiteJurisdiction
	err := f.db.WithContext(ctx).
		Where("heritage_site_id = ?", siteID).
		Order("country_area_id asc").
		Find(&rows).Error
	return rows, err
}

func (f fixture) names(ctx context.Context, siteID int) (domain.SiteNames, error) {
	return f.svc.(*Service).names(ctx, f.db, siteID)
}

func newFixture(t *testing.T, locker domain.EditLocker) fixture {
	t.Helper()

	conn := testutil.NewCatalogDB(t)
	log := zaptest.NewLogger(t)
	repo := repository.Provide()
	geoSvc := geoservice.New(geoservice.Params{
		DB:   conn,
		Log:  log,
		Repo: georepo.Provide(),
	})

	return fixture{
		db:   conn,
		repo: repo,
		svc: New(Params{
			DB:     conn,
			Log:    log,
			Repo:   repo,
			GeoSvc: geoSvc,
			Locker: locker,
		}),
	}
}

func reefInput(countries ...int) domain.SiteInput {
	return domain.SiteInput{
		SiteName:               "Test Reef",
		Description:            "A reef used in tests.",
		HeritageSiteCategoryID: testutil.CategoryNatural,
		CountryAreaIDs:         countries,
	}
}

func TestCreateUpdateReconcilesJurisdictions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, domain.CreateSiteRequest{
		SiteInput: reefInput(testutil.CountryGermany, testutil.CountryFrance),
	})
	require.NoError(t, err)
	assert.Equal(t, "test-reef", created.Slug)
	assert.ElementsMatch(t, []int{testutil.CountryGermany, testutil.CountryFrance}, created.CountryAreaIDs)

	before, err := f.jurisdictions(ctx, created.HeritageSiteID)
	require.NoError(t, err)
	require.Len(t, before, 2)
	var franceRowID int
	for _, row := range before {
		if row.CountryAreaID == testutil.CountryFrance {
			franceRowID = row.HeritageSiteJurisdictionID
		}
	}
	require.NotZero(t, franceRowID)

	updated, err := f.svc.Update(ctx, domain.UpdateSiteRequest{
		ID:        itoa(created.HeritageSiteID),
		SiteInput: reefInput(testutil.CountryFrance, testutil.CountryItaly),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{testutil.CountryFrance, testutil.CountryItaly}, updated.CountryAreaIDs)

	after, err := f.jurisdictions(ctx, created.HeritageSiteID)
	require.NoError(t, err)
	require.Len(t, after, 2)
	for _, row := range after {
		assert.NotEqual(t, testutil.CountryGermany, row.CountryAreaID)
		if row.CountryAreaID == testutil.CountryFrance {
			assert.Equal(t, franceRowID, row.HeritageSiteJurisdictionID, "kept row must not be recreated")
		}
	}
	assert.Equal(t, "France (FRA), Italy (ITA)", updated.CountryAreaNames)
	assert.Equal(t, "Europe", updated.RegionNames)
	assert.Equal(t, "Western Europe, Southern Europe", updated.SubRegionNames)
}

func TestCreateDeduplicatesCountries(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, domain.CreateSiteRequest{
		SiteInput: reefInput(testutil.CountryFrance, testutil.CountryFrance, testutil.CountryItaly),
	})
	require.NoError(t, err)

	rows, err := f.jurisdictions(ctx, created.HeritageSiteID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCreateDuplicateNameWritesNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	before, err := f.repo.CountJurisdictions(ctx, f.db)
	require.NoError(t, err)

	input := reefInput(testutil.CountryFrance)
	input.SiteName = "Wadden Sea"
	_, err = f.svc.Create(ctx, domain.CreateSiteRequest{SiteInput: input})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateSiteName))

	after, err := f.repo.CountJurisdictions(ctx, f.db)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	total, err := f.repo.Count(ctx, f.db, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

func TestCreateReportsEveryInvalidField(t *testing.T) {
	f := newFixture(t, nil)

	lon := 200.0
	_, err := f.svc.Create(context.Background(), domain.CreateSiteRequest{
		SiteInput: domain.SiteInput{
			SiteName:               "  ",
			HeritageSiteCategoryID: 99,
			Longitude:              &lon,
			Transboundary:          3,
		},
	})
	require.Error(t, err)
	for _, want := range []error{
		domain.ErrInvalidSiteName,
		domain.ErrInvalidDescription,
		domain.ErrInvalidCategory,
		domain.ErrInvalidLongitude,
		domain.ErrInvalidTransboundary,
		domain.ErrCountryAreaRequired,
	} {
		assert.ErrorIs(t, err, want)
	}
}

func TestCreateRejectsUnknownCountry(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Create(context.Background(), domain.CreateSiteRequest{
		SiteInput: reefInput(testutil.CountryFrance, 999),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCountryArea)
}

func TestUpdateKeepsOwnName(t *testing.T) {
	f := newFixture(t, nil)

	input := reefInput(testutil.CountryGermany)
	input.SiteName = "Wadden Sea"
	input.Description = "Updated description."
	site, err := f.svc.Update(context.Background(), domain.UpdateSiteRequest{
		ID:        itoa(testutil.SiteWaddenSea),
		SiteInput: input,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated description.", site.Description)
}

func TestPatchKeepsOmittedFields(t *testing.T) {
	f := newFixture(t, nil)

	year := 2014
	site, err := f.svc.Patch(context.Background(), domain.PatchSiteRequest{
		ID:            itoa(testutil.SiteRomanLimes),
		DateInscribed: domain.Optional[int]{Set: true, Value: &year},
	})
	require.NoError(t, err)
	assert.Equal(t, "Frontiers of the Roman Empire", site.SiteName)
	require.NotNil(t, site.DateInscribed)
	assert.Equal(t, 2014, *site.DateInscribed)
	assert.ElementsMatch(t, []int{testutil.CountryGermany, testutil.CountryItaly}, site.CountryAreaIDs)
	assert.Equal(t, 1, site.Transboundary)
}

func TestPatchNullClearsNullableFields(t *testing.T) {
	f := newFixture(t, nil)

	site, err := f.svc.Patch(context.Background(), domain.PatchSiteRequest{
		ID:            itoa(testutil.SiteGreatWall),
		DateInscribed: domain.Optional[int]{Set: true},
		Longitude:     domain.Optional[float64]{Set: true},
		Latitude:      domain.Optional[float64]{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, site.DateInscribed)
	assert.Nil(t, site.Longitude)
	assert.Nil(t, site.Latitude)
	assert.Equal(t, "The Great Wall", site.SiteName)

	stored, err := f.svc.Get(context.Background(), itoa(testutil.SiteGreatWall))
	require.NoError(t, err)
	assert.Nil(t, stored.Longitude)
	assert.Nil(t, stored.DateInscribed)
}

func TestPatchNullOnRequiredFieldIsRejected(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Patch(context.Background(), domain.PatchSiteRequest{
		ID:             itoa(testutil.SiteRomanLimes),
		SiteName:       domain.Optional[string]{Set: true},
		CountryAreaIDs: domain.Optional[[]int]{Set: true},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSiteName)
	assert.ErrorIs(t, err, domain.ErrCountryAreaRequired)

	stored, err := f.svc.Get(context.Background(), itoa(testutil.SiteRomanLimes))
	require.NoError(t, err)
	assert.Equal(t, "Frontiers of the Roman Empire", stored.SiteName)
}

func TestDeleteRemovesJurisdictions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, itoa(testutil.SiteRomanLimes)))

	rows, err := f.jurisdictions(ctx, testutil.SiteRomanLimes)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = f.svc.Get(ctx, itoa(testutil.SiteRomanLimes))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, itoa(testutil.SiteRomanLimes)), domain.ErrNotFound)
}

func TestGetInvalidID(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestNamesForSiteWithoutCountries(t *testing.T) {
	f := newFixture(t, nil)

	names, err := f.names(context.Background(), testutil.SiteWallsOfLugo)
	require.NoError(t, err)
	assert.Equal(t, domain.SiteNames{}, names)
}

func TestNamesSkipMissingLevels(t *testing.T) {
	f := newFixture(t, nil)

	names, err := f.names(context.Background(), testutil.SiteGreatWall)
	require.NoError(t, err)
	assert.Equal(t, "China (CHN)", names.CountryAreaNames)
	assert.Equal(t, "Asia", names.RegionNames)
	assert.Equal(t, "Eastern Asia", names.SubRegionNames)
	assert.Equal(t, "", names.IntermediateRegionNames)
}

func TestListPaginatesInNameOrder(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := f.svc.List(context.Background(), domain.ListSiteRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Total)
	assert.Equal(t, 3, resp.NumPages)
	require.Len(t, resp.Sites, 3)
	assert.Equal(t, "Roman Walls of Lugo", resp.Sites[0].SiteName)
	assert.Equal(t, "The Great Wall", resp.Sites[1].SiteName)
	assert.Equal(t, "China (CHN)", resp.Sites[1].CountryAreaNames)
}

func TestListRejectsPagePastEnd(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.List(ctx, domain.ListSiteRequest{Page: 4, PageSize: 3})
	assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)

	_, err = f.svc.List(ctx, domain.ListSiteRequest{Page: 1 << 62, PageSize: 3})
	assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)

	resp, err := f.svc.List(ctx, domain.ListSiteRequest{Page: 1, Filter: domain.Filter{SiteName: "atlantis"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Sites)
	assert.Equal(t, 1, resp.NumPages)
}

func TestStats(t *testing.T) {
	f := newFixture(t, nil)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.Sites)
	assert.Equal(t, int64(7), stats.Jurisdictions)
	assert.Equal(t, int64(5), stats.SitesByCategory["Cultural"])
	assert.Equal(t, int64(1), stats.SitesByCategory["Natural"])
}

type stubLocker struct {
	err      error
	released int
}

func (l *stubLocker) LockSite(ctx context.Context, siteID int) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	return func() { l.released++ }, nil
}

func TestUpdateConflictsWhenLocked(t *testing.T) {
	f := newFixture(t, &stubLocker{err: domain.ErrSiteLocked})

	_, err := f.svc.Update(context.Background(), domain.UpdateSiteRequest{
		ID:        itoa(testutil.SiteWaddenSea),
		SiteInput: reefInput(testutil.CountryGermany),
	})
	assert.ErrorIs(t, err, domain.ErrSiteLocked)
}

func TestLockReleasedAfterDelete(t *testing.T) {
	locker := &stubLocker{}
	f := newFixture(t, locker)

	require.NoError(t, f.svc.Delete(context.Background(), itoa(testutil.SiteWaddenSea)))
	assert.Equal(t, 1, locker.released)
}

func TestLockBackendFailureFailsOpen(t *testing.T) {
	f := newFixture(t, &stubLocker{err: errors.New("redis down")})

	require.NoError(t, f.svc.Delete(context.Background(), itoa(testutil.SiteWaddenSea)))
}

func TestDiffIDs(t *testing.T) {
	add, remove := diffIDs([]int{4, 3}, []int{3, 5, 5})
	assert.Equal(t, []int{5}, add)
	assert.Equal(t, []int{4}, remove)

	add, remove = diffIDs(nil, nil)
	assert.Empty(t, add)
	assert.Empty(t, remove)
}

func TestJoinDistinct(t *testing.T) {
	assert.Equal(t, "Europe, Asia", joinDistinct([]string{"Europe", "", "Asia", "Europe"}))
	assert.Equal(t, "", joinDistinct(nil))
}
