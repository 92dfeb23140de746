// Package testutil builds small in-memory catalogs for package tests.
package testutil

import (
	"testing"

	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fixture ids.
const (
	PlanetEarth = 1

	RegionAmericas = 1
	RegionAsia     = 2
	RegionEurope   = 3

	SubRegionEasternAsia    = 1
	SubRegionLatinAmerica   = 2
	SubRegionSouthernEurope = 3
	SubRegionWesternEurope  = 4

	IntermediateCaribbean    = 1
	IntermediateSouthAmerica = 2

	DevStatusDeveloped  = 1
	DevStatusDeveloping = 2

	CountryChina   = 1
	CountryCuba    = 2
	CountryFrance  = 3
	CountryGermany = 4
	CountryItaly   = 5
	CountryPeru    = 6

	CategoryCultural = 1
	CategoryMixed    = 2
	CategoryNatural  = 3

	SiteGreatWall   = 1
	SiteMachuPicchu = 2
	SiteOldHavana   = 3
	SiteRhineValley = 4
	SiteWallsOfLugo = 5
	SiteWaddenSea   = 6
	SiteRomanLimes  = 7
)

// Migrate creates the catalog tables. Production never migrates them.
func Migrate(t testing.TB, conn *gorm.DB) {
	t.Helper()
	require.NoError(t, conn.AutoMigrate(
		&geodomain.Planet{},
		&geodomain.Region{},
		&geodomain.SubRegion{},
		&geodomain.IntermediateRegion{},
		&geodomain.Location{},
		&geodomain.DevStatus{},
		&geodomain.CountryArea{},
		&geodomain.HeritageSiteCategory{},
		&domain.HeritageSite{},
		&domain.HeritageSiteJurisdiction{},
	))
}

// NewCatalogDB returns an isolated database holding the fixture catalog.
func NewCatalogDB(t testing.TB) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	Migrate(t, conn)
	Seed(t, conn)
	return conn
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

// Seed inserts the reference hierarchy and a handful of sites:
//
//	Americas > Latin America and the Caribbean > {Caribbean: Cuba, South America: Peru}
//	Asia > Eastern Asia > China
//	Europe > Southern Europe > Italy
//	Europe > Western Europe > {France, Germany}
func Seed(t testing.TB, conn *gorm.DB) {
	t.Helper()

	create := func(value any) {
		require.NoError(t, conn.Create(value).Error)
	}

	create(&geodomain.Planet{PlanetID: PlanetEarth, PlanetName: "Earth", UnsdName: strPtr("World")})
	create(&[]geodomain.Region{
		{RegionID: RegionAmericas, RegionName: "Americas", PlanetID: PlanetEarth},
		{RegionID: RegionAsia, RegionName: "Asia", PlanetID: PlanetEarth},
		{RegionID: RegionEurope, RegionName: "Europe", PlanetID: PlanetEarth},
	})
	create(&[]geodomain.SubRegion{
		{SubRegionID: SubRegionEasternAsia, SubRegionName: "Eastern Asia", RegionID: RegionAsia},
		{SubRegionID: SubRegionLatinAmerica, SubRegionName: "Latin America and the Caribbean", RegionID: RegionAmericas},
		{SubRegionID: SubRegionSouthernEurope, SubRegionName: "Southern Europe", RegionID: RegionEurope},
		{SubRegionID: SubRegionWesternEurope, SubRegionName: "Western Europe", RegionID: RegionEurope},
	})
	create(&[]geodomain.IntermediateRegion{
		{IntermediateRegionID: IntermediateCaribbean, IntermediateRegionName: "Caribbean", SubRegionID: SubRegionLatinAmerica},
		{IntermediateRegionID: IntermediateSouthAmerica, IntermediateRegionName: "South America", SubRegionID: SubRegionLatinAmerica},
	})
	create(&[]geodomain.DevStatus{
		{DevStatusID: DevStatusDeveloped, DevStatusName: "Developed"},
		{DevStatusID: DevStatusDeveloping, DevStatusName: "Developing"},
	})

	// one location per country, same id as the country
	create(&[]geodomain.Location{
		{LocationID: CountryChina, PlanetID: PlanetEarth, RegionID: intPtr(RegionAsia), SubRegionID: intPtr(SubRegionEasternAsia)},
		{LocationID: CountryCuba, PlanetID: PlanetEarth, RegionID: intPtr(RegionAmericas), SubRegionID: intPtr(SubRegionLatinAmerica), IntermediateRegionID: intPtr(IntermediateCaribbean)},
		{LocationID: CountryFrance, PlanetID: PlanetEarth, RegionID: intPtr(RegionEurope), SubRegionID: intPtr(SubRegionWesternEurope)},
		{LocationID: CountryGermany, PlanetID: PlanetEarth, RegionID: intPtr(RegionEurope), SubRegionID: intPtr(SubRegionWesternEurope)},
		{LocationID: CountryItaly, PlanetID: PlanetEarth, RegionID: intPtr(RegionEurope), SubRegionID: intPtr(SubRegionSouthernEurope)},
		{LocationID: CountryPeru, PlanetID: PlanetEarth, RegionID: intPtr(RegionAmericas), SubRegionID: intPtr(SubRegionLatinAmerica), IntermediateRegionID: intPtr(IntermediateSouthAmerica)},
	})
	create(&[]geodomain.CountryArea{
		{CountryAreaID: CountryChina, CountryAreaName: "China", M49Code: 156, IsoAlpha3Code: "CHN", LocationID: CountryChina, DevStatusID: intPtr(DevStatusDeveloping)},
		{CountryAreaID: CountryCuba, CountryAreaName: "Cuba", M49Code: 192, IsoAlpha3Code: "CUB", LocationID: CountryCuba, DevStatusID: intPtr(DevStatusDeveloping)},
		{CountryAreaID: CountryFrance, CountryAreaName: "France", M49Code: 250, IsoAlpha3Code: "FRA", LocationID: CountryFrance, DevStatusID: intPtr(DevStatusDeveloped)},
		{CountryAreaID: CountryGermany, CountryAreaName: "Germany", M49Code: 276, IsoAlpha3Code: "DEU", LocationID: CountryGermany, DevStatusID: intPtr(DevStatusDeveloped)},
		{CountryAreaID: CountryItaly, CountryAreaName: "Italy", M49Code: 380, IsoAlpha3Code: "ITA", LocationID: CountryItaly, DevStatusID: intPtr(DevStatusDeveloped)},
		{CountryAreaID: CountryPeru, CountryAreaName: "Peru", M49Code: 604, IsoAlpha3Code: "PER", LocationID: CountryPeru},
	})
	create(&[]geodomain.HeritageSiteCategory{
		{CategoryID: CategoryCultural, CategoryName: "Cultural"},
		{CategoryID: CategoryMixed, CategoryName: "Mixed"},
		{CategoryID: CategoryNatural, CategoryName: "Natural"},
	})

	create(&[]domain.HeritageSite{
		{HeritageSiteID: SiteGreatWall, SiteName: "The Great Wall", Description: "Fortifications built across northern China.", DateInscribed: intPtr(1987), Longitude: floatPtr(117.23194), Latitude: floatPtr(40.68194), HeritageSiteCategoryID: CategoryCultural},
		{HeritageSiteID: SiteMachuPicchu, SiteName: "Historic Sanctuary of Machu Picchu", Description: "Inca citadel in a cloud forest.", DateInscribed: intPtr(1983), AreaHectares: floatPtr(32592), HeritageSiteCategoryID: CategoryMixed},
		{HeritageSiteID: SiteOldHavana, SiteName: "Old Havana and its Fortification System", Description: "Colonial city core and harbour forts.", DateInscribed: intPtr(1982), HeritageSiteCategoryID: CategoryCultural},
		{HeritageSiteID: SiteRhineValley, SiteName: "Upper Middle Rhine Valley", Description: "Castles and vineyards along the river.", DateInscribed: intPtr(2002), HeritageSiteCategoryID: CategoryCultural},
		{HeritageSiteID: SiteWallsOfLugo, SiteName: "Roman Walls of Lugo", Description: "Intact late Roman city walls.", DateInscribed: intPtr(2000), HeritageSiteCategoryID: CategoryCultural},
		{HeritageSiteID: SiteWaddenSea, SiteName: "Wadden Sea", Description: "Largest unbroken system of intertidal sand and mud flats.", DateInscribed: intPtr(2009), HeritageSiteCategoryID: CategoryNatural},
		{HeritageSiteID: SiteRomanLimes, SiteName: "Frontiers of the Roman Empire", Description: "Remains of the 100% Roman limes_line.", DateInscribed: intPtr(1987), HeritageSiteCategoryID: CategoryCultural, Transboundary: 1},
	})

	// Roman Walls of Lugo deliberately has no country.
	create(&[]domain.HeritageSiteJurisdiction{
		{HeritageSiteID: SiteGreatWall, CountryAreaID: CountryChina},
		{HeritageSiteID: SiteMachuPicchu, CountryAreaID: CountryPeru},
		{HeritageSiteID: SiteOldHavana, CountryAreaID: CountryCuba},
		{HeritageSiteID: SiteRhineValley, CountryAreaID: CountryGermany},
		{HeritageSiteID: SiteWaddenSea, CountryAreaID: CountryGermany},
		{HeritageSiteID: SiteRomanLimes, CountryAreaID: CountryGermany},
		{HeritageSiteID: SiteRomanLimes, CountryAreaID: CountryItaly},
	})
}
