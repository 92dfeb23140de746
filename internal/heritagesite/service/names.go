package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"gorm.io/gorm"
)

const nameSeparator = ", "

// names runs one query per aggregation on every call.
func (s *Service) names(ctx context.Context, db *gorm.DB, siteID int) (domain.SiteNames, error) {
	countries, err := s.countryAreaNames(ctx, db, siteID)
	if err != nil {
		return domain.SiteNames{}, err
	}
	regions, err := s.repo.RegionNames(ctx, db, siteID)
	if err != nil {
		return domain.SiteNames{}, err
	}
	subRegions, err := s.repo.SubRegionNames(ctx, db, siteID)
	if err != nil {
		return domain.SiteNames{}, err
	}
	intermediateRegions, err := s.repo.IntermediateRegionNames(ctx, db, siteID)
	if err != nil {
		return domain.SiteNames{}, err
	}

	return domain.SiteNames{
		CountryAreaNames:        countries,
		RegionNames:             joinDistinct(regions),
		SubRegionNames:          joinDistinct(subRegions),
		IntermediateRegionNames: joinDistinct(intermediateRegions),
	}, nil
}

func (s *Service) countryAreaNames(ctx context.Context, db *gorm.DB, siteID int) (string, error) {
	labels, err := s.repo.CountryLabels(ctx, db, siteID)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%s (%s)", label.CountryAreaName, label.IsoAlpha3Code))
	}
	return strings.Join(parts, nameSeparator), nil
}

// joinDistinct keeps the first occurrence of each non-empty name.
func joinDistinct(names []string) string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return strings.Join(out, nameSeparator)
}
