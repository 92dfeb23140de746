package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/heritage/internal/config"
	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/internal/observability/metrics"
	"github.com/smallbiznis/heritage/pkg/db"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	GeoSvc  geodomain.Service
	Catalog *config.CatalogConfigHolder `optional:"true"`
	Metrics *metrics.Metrics            `optional:"true"`
	Locker  domain.EditLocker           `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	geoSvc  geodomain.Service
	catalog *config.CatalogConfigHolder
	metrics *metrics.Metrics
	locker  domain.EditLocker
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("heritagesite.service"),
		repo:    p.Repo,
		geoSvc:  p.GeoSvc,
		catalog: p.Catalog,
		metrics: p.Metrics,
		locker:  p.Locker,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSiteRequest) (domain.Site, error) {
	input, countryIDs, err := s.validateInput(ctx, req.SiteInput, 0)
	if err != nil {
		return domain.Site{}, err
	}

	site := toModel(input)
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &site); err != nil {
			return err
		}
		return s.createJurisdictions(ctx, tx, site.HeritageSiteID, countryIDs)
	}); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Site{}, domain.ErrDuplicateSiteName
		}
		return domain.Site{}, err
	}

	s.metrics.RecordSiteWrite(ctx, "create")
	s.log.Info("heritage site created",
		zap.Int("site_id", site.HeritageSiteID),
		zap.Int("countries", len(countryIDs)),
	)
	return s.load(ctx, site.HeritageSiteID)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Site, error) {
	siteID, err := parseID(id)
	if err != nil {
		return domain.Site{}, err
	}
	return s.load(ctx, siteID)
}

func (s *Service) List(ctx context.Context, req domain.ListSiteRequest) (domain.ListSiteResponse, error) {
	settings := s.catalog.Get()
	page := pagination.Pagination{
		Page:     req.Page,
		PageSize: req.PageSize,
	}.Normalize(settings.SitePageSize, settings.MaxPageSize)

	if !req.Filter.IsEmpty() {
		s.metrics.RecordSiteFilter(ctx, req.Filter.Criteria())
	}

	total, err := s.repo.Count(ctx, s.db, req.Filter)
	if err != nil {
		return domain.ListSiteResponse{}, err
	}
	if err := page.Check(total); err != nil {
		return domain.ListSiteResponse{}, err
	}

	items, err := s.repo.List(ctx, s.db, req.Filter, page)
	if err != nil {
		return domain.ListSiteResponse{}, err
	}

	sites := make([]domain.SiteListItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		countryNames, err := s.countryAreaNames(ctx, s.db, item.HeritageSiteID)
		if err != nil {
			return domain.ListSiteResponse{}, err
		}
		sites = append(sites, domain.SiteListItem{
			HeritageSite:     *item,
			Slug:             slug.Make(item.SiteName),
			CountryAreaNames: countryNames,
		})
	}

	return domain.ListSiteResponse{
		PageInfo: pagination.BuildPageInfo(page, total),
		Sites:    sites,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSiteRequest) (domain.Site, error) {
	siteID, err := parseID(req.ID)
	if err != nil {
		return domain.Site{}, err
	}
	return s.update(ctx, siteID, req.SiteInput)
}

func (s *Service) Patch(ctx context.Context, req domain.PatchSiteRequest) (domain.Site, error) {
	siteID, err := parseID(req.ID)
	if err != nil {
		return domain.Site{}, err
	}

	current, err := s.repo.FindByID(ctx, s.db, siteID)
	if err != nil {
		return domain.Site{}, err
	}
	if current == nil {
		return domain.Site{}, domain.ErrNotFound
	}
	countryIDs, err := s.repo.ListCountryAreaIDs(ctx, s.db, siteID)
	if err != nil {
		return domain.Site{}, err
	}

	input := domain.SiteInput{
		SiteName:               current.SiteName,
		Description:            current.Description,
		Justification:          current.Justification,
		DateInscribed:          current.DateInscribed,
		Longitude:              current.Longitude,
		Latitude:               current.Latitude,
		AreaHectares:           current.AreaHectares,
		HeritageSiteCategoryID: current.HeritageSiteCategoryID,
		Transboundary:          current.Transboundary,
		CountryAreaIDs:         countryIDs,
	}
	var nullErrs []error
	patchRequired(&input.SiteName, req.SiteName, domain.ErrInvalidSiteName, &nullErrs)
	patchRequired(&input.Description, req.Description, domain.ErrInvalidDescription, &nullErrs)
	patchRequired(&input.HeritageSiteCategoryID, req.HeritageSiteCategoryID, domain.ErrInvalidCategory, &nullErrs)
	patchRequired(&input.Transboundary, req.Transboundary, domain.ErrInvalidTransboundary, &nullErrs)
	patchRequired(&input.CountryAreaIDs, req.CountryAreaIDs, domain.ErrCountryAreaRequired, &nullErrs)
	if len(nullErrs) > 0 {
		return domain.Site{}, errors.Join(nullErrs...)
	}

	patchNullable(&input.Justification, req.Justification)
	patchNullable(&input.DateInscribed, req.DateInscribed)
	patchNullable(&input.Longitude, req.Longitude)
	patchNullable(&input.Latitude, req.Latitude)
	patchNullable(&input.AreaHectares, req.AreaHectares)

	return s.update(ctx, siteID, input)
}

func (s *Service) update(ctx context.Context, siteID int, req domain.SiteInput) (domain.Site, error) {
	existing, err := s.repo.FindByID(ctx, s.db, siteID)
	if err != nil {
		return domain.Site{}, err
	}
	if existing == nil {
		return domain.Site{}, domain.ErrNotFound
	}

	input, countryIDs, err := s.validateInput(ctx, req, siteID)
	if err != nil {
		return domain.Site{}, err
	}

	release, err := s.lockSite(ctx, siteID)
	if err != nil {
		return domain.Site{}, err
	}
	defer release()

	site := toModel(input)
	site.HeritageSiteID = siteID

	var added, removed int
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, &site); err != nil {
			return err
		}
		var err error
		added, removed, err = s.reconcileJurisdictions(ctx, tx, siteID, countryIDs)
		return err
	}); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Site{}, domain.ErrDuplicateSiteName
		}
		return domain.Site{}, err
	}

	s.metrics.RecordSiteWrite(ctx, "update")
	s.log.Info("heritage site updated",
		zap.Int("site_id", siteID),
		zap.Int("countries_added", added),
		zap.Int("countries_removed", removed),
	)
	return s.load(ctx, siteID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	siteID, err := parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, siteID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	release, err := s.lockSite(ctx, siteID)
	if err != nil {
		return err
	}
	defer release()

	var removed int64
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = s.deleteJurisdictions(ctx, tx, siteID)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, siteID)
	}); err != nil {
		return err
	}

	s.metrics.RecordSiteWrite(ctx, "delete")
	s.log.Info("heritage site deleted",
		zap.Int("site_id", siteID),
		zap.Int64("jurisdictions_removed", removed),
	)
	return nil
}

func (s *Service) Stats(ctx context.Context) (domain.CatalogStats, error) {
	sites, err := s.repo.Count(ctx, s.db, domain.Filter{})
	if err != nil {
		return domain.CatalogStats{}, err
	}
	jurisdictions, err := s.repo.CountJurisdictions(ctx, s.db)
	if err != nil {
		return domain.CatalogStats{}, err
	}
	rows, err := s.repo.CountByCategory(ctx, s.db)
	if err != nil {
		return domain.CatalogStats{}, err
	}
	byCategory := make(map[string]int64, len(rows))
	for _, row := range rows {
		byCategory[row.CategoryName] = row.Total
	}
	return domain.CatalogStats{
		Sites:           sites,
		Jurisdictions:   jurisdictions,
		SitesByCategory: byCategory,
	}, nil
}

func (s *Service) load(ctx context.Context, siteID int) (domain.Site, error) {
	site, err := s.repo.FindByID(ctx, s.db, siteID)
	if err != nil {
		return domain.Site{}, err
	}
	if site == nil {
		return domain.Site{}, domain.ErrNotFound
	}

	countryIDs, err := s.repo.ListCountryAreaIDs(ctx, s.db, siteID)
	if err != nil {
		return domain.Site{}, err
	}
	if countryIDs == nil {
		countryIDs = []int{}
	}

	names, err := s.names(ctx, s.db, siteID)
	if err != nil {
		return domain.Site{}, err
	}

	return domain.Site{
		HeritageSite:   *site,
		Slug:           slug.Make(site.SiteName),
		CountryAreaIDs: countryIDs,
		SiteNames:      names,
	}, nil
}

func (s *Service) lockSite(ctx context.Context, siteID int) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, err := s.locker.LockSite(ctx, siteID)
	if err != nil {
		if errors.Is(err, domain.ErrSiteLocked) {
			return nil, err
		}
		// a broken lock backend must not block edits; the transaction still holds
		s.log.Warn("site lock unavailable", zap.Int("site_id", siteID), zap.Error(err))
		return func() {}, nil
	}
	return release, nil
}

func toModel(input domain.SiteInput) domain.HeritageSite {
	return domain.HeritageSite{
		SiteName:               input.SiteName,
		Description:            input.Description,
		Justification:          input.Justification,
		DateInscribed:          input.DateInscribed,
		Longitude:              input.Longitude,
		Latitude:               input.Latitude,
		AreaHectares:           input.AreaHectares,
		HeritageSiteCategoryID: input.HeritageSiteCategoryID,
		Transboundary:          input.Transboundary,
	}
}

// patchRequired records nullErr when a non-nullable field is sent as null.
func patchRequired[T any](dst *T, field domain.Optional[T], nullErr error, errs *[]error) {
	if !field.Set {
		return
	}
	if field.Value == nil {
		*errs = append(*errs, nullErr)
		return
	}
	*dst = *field.Value
}

func patchNullable[T any](dst **T, field domain.Optional[T]) {
	if field.Set {
		*dst = field.Value
	}
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
