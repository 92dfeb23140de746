package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/smallbiznis/heritage/internal/config"
	"github.com/smallbiznis/heritage/internal/geo/domain"
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
	Catalog *config.CatalogConfigHolder `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	catalog *config.CatalogConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("geo.service"),
		repo:    p.Repo,
		catalog: p.Catalog,
	}
}

func (s *Service) ListCountryAreas(ctx context.Context, req domain.ListCountryAreaRequest) (domain.ListCountryAreaResponse, error) {
	settings := s.catalog.Get()
	page := pagination.Pagination{
		Page:     req.Page,
		PageSize: req.PageSize,
	}.Normalize(settings.CountryAreaPageSize, settings.MaxPageSize)

	total, err := s.repo.CountCountryAreas(ctx, s.db)
	if err != nil {
		return domain.ListCountryAreaResponse{}, err
	}
	if err := page.Check(total); err != nil {
		return domain.ListCountryAreaResponse{}, err
	}

	items, err := s.repo.ListCountryAreas(ctx, s.db, page)
	if err != nil {
		return domain.ListCountryAreaResponse{}, err
	}

	countries := make([]domain.CountryArea, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		countries = append(countries, *item)
	}

	return domain.ListCountryAreaResponse{
		PageInfo:     pagination.BuildPageInfo(page, total),
		CountryAreas: countries,
	}, nil
}

func (s *Service) GetCountryArea(ctx context.Context, id string) (domain.CountryAreaDetail, error) {
	countryID, err := parseID(id)
	if err != nil {
		return domain.CountryAreaDetail{}, err
	}

	item, err := s.repo.FindCountryArea(ctx, s.db, countryID)
	if err != nil {
		return domain.CountryAreaDetail{}, err
	}
	if item == nil {
		return domain.CountryAreaDetail{}, domain.ErrNotFound
	}

	sites, err := s.repo.ListSitesForCountryArea(ctx, s.db, countryID)
	if err != nil {
		return domain.CountryAreaDetail{}, err
	}
	if sites == nil {
		sites = []domain.SiteRef{}
	}

	return domain.CountryAreaDetail{CountryArea: *item, Sites: sites}, nil
}

func (s *Service) CountCountryAreas(ctx context.Context) (int64, error) {
	return s.repo.CountCountryAreas(ctx, s.db)
}

func (s *Service) GetCategory(ctx context.Context, id int) (domain.HeritageSiteCategory, error) {
	if id <= 0 {
		return domain.HeritageSiteCategory{}, domain.ErrInvalidCategory
	}
	item, err := s.repo.FindCategory(ctx, s.db, id)
	if err != nil {
		return domain.HeritageSiteCategory{}, err
	}
	if item == nil {
		return domain.HeritageSiteCategory{}, domain.ErrInvalidCategory
	}
	return *item, nil
}

func (s *Service) FormChoices(ctx context.Context) (domain.Choices, error) {
	categories, err := s.repo.ListCategories(ctx, s.db)
	if err != nil {
		return domain.Choices{}, err
	}
	countries, err := s.repo.ListCountryAreaChoices(ctx, s.db)
	if err != nil {
		return domain.Choices{}, err
	}
	return domain.Choices{
		Categories:   categories,
		CountryAreas: countries,
	}, nil
}

func (s *Service) FilterChoices(ctx context.Context) (domain.Choices, error) {
	choices, err := s.FormChoices(ctx)
	if err != nil {
		return domain.Choices{}, err
	}
	if choices.Regions, err = s.repo.ListRegions(ctx, s.db); err != nil {
		return domain.Choices{}, err
	}
	if choices.SubRegions, err = s.repo.ListSubRegions(ctx, s.db); err != nil {
		return domain.Choices{}, err
	}
	if choices.IntermediateRegions, err = s.repo.ListIntermediateRegions(ctx, s.db); err != nil {
		return domain.Choices{}, err
	}
	return choices, nil
}

func (s *Service) MissingCountryAreaIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.repo.FindExistingCountryAreaIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	var missing []int
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
