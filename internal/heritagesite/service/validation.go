package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	"github.com/smallbiznis/heritage/internal/heritagesite/domain"
)

const maxSiteNameLength = 255

// validateInput normalizes req and checks it against the catalog. Every
// failed rule is reported; the result wraps the matching sentinels with
// errors.Join so callers can map each one to its form field.
// excludeID is the site being edited, 0 on create.
func (s *Service) validateInput(ctx context.Context, req domain.SiteInput, excludeID int) (domain.SiteInput, []int, error) {
	var errs []error

	req.SiteName = strings.TrimSpace(req.SiteName)
	req.Description = strings.TrimSpace(req.Description)
	if req.Justification != nil {
		trimmed := strings.TrimSpace(*req.Justification)
		if trimmed == "" {
			req.Justification = nil
		} else {
			req.Justification = &trimmed
		}
	}

	if req.SiteName == "" || utf8.RuneCountInString(req.SiteName) > maxSiteNameLength {
		errs = append(errs, domain.ErrInvalidSiteName)
	} else {
		existingID, err := s.repo.FindIDBySiteName(ctx, s.db, req.SiteName)
		if err != nil {
			return domain.SiteInput{}, nil, err
		}
		if existingID != 0 && existingID != excludeID {
			errs = append(errs, domain.ErrDuplicateSiteName)
		}
	}

	if req.Description == "" {
		errs = append(errs, domain.ErrInvalidDescription)
	}

	if req.HeritageSiteCategoryID <= 0 {
		errs = append(errs, domain.ErrInvalidCategory)
	} else if _, err := s.geoSvc.GetCategory(ctx, req.HeritageSiteCategoryID); err != nil {
		if !errors.Is(err, geodomain.ErrInvalidCategory) {
			return domain.SiteInput{}, nil, err
		}
		errs = append(errs, domain.ErrInvalidCategory)
	}

	if req.DateInscribed != nil && *req.DateInscribed < 0 {
		errs = append(errs, domain.ErrInvalidDateInscribed)
	}
	if !inRange(req.Longitude, 180) {
		errs = append(errs, domain.ErrInvalidLongitude)
	}
	if !inRange(req.Latitude, 90) {
		errs = append(errs, domain.ErrInvalidLatitude)
	}
	if req.AreaHectares != nil && (*req.AreaHectares < 0 || math.IsNaN(*req.AreaHectares) || math.IsInf(*req.AreaHectares, 0)) {
		errs = append(errs, domain.ErrInvalidAreaHectares)
	}
	if req.Transboundary != 0 && req.Transboundary != 1 {
		errs = append(errs, domain.ErrInvalidTransboundary)
	}

	countryIDs, err := s.validateCountryAreas(ctx, req.CountryAreaIDs)
	if err != nil {
		if !isCountryAreaError(err) {
			return domain.SiteInput{}, nil, err
		}
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return domain.SiteInput{}, nil, errors.Join(errs...)
	}
	req.CountryAreaIDs = countryIDs
	return req, countryIDs, nil
}

// validateCountryAreas de-duplicates ids preserving first occurrence and
// checks that each one names an existing country/area.
func (s *Service) validateCountryAreas(ctx context.Context, ids []int) ([]int, error) {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, domain.ErrInvalidCountryArea
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, domain.ErrCountryAreaRequired
	}

	missing, err := s.geoSvc.MissingCountryAreaIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, domain.ErrInvalidCountryArea
	}
	return unique, nil
}

func isCountryAreaError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCountryArea) || errors.Is(err, domain.ErrCountryAreaRequired)
}

func inRange(value *float64, limit float64) bool {
	if value == nil {
		return true
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= -limit && v <= limit
}
