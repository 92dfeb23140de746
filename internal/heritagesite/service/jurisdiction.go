package service

import (
	"context"

	"gorm.io/gorm"
)

func (s *Service) createJurisdictions(ctx context.Context, tx *gorm.DB, siteID int, countryIDs []int) error {
	if err := s.repo.InsertJurisdictions(ctx, tx, siteID, countryIDs); err != nil {
		return err
	}
	s.metrics.RecordJurisdictionChange(ctx, "added", len(countryIDs))
	return nil
}

// reconcileJurisdictions makes the site's country set equal to countryIDs.
// Rows for countries kept in both sets are left untouched.
func (s *Service) reconcileJurisdictions(ctx context.Context, tx *gorm.DB, siteID int, countryIDs []int) (int, int, error) {
	oldIDs, err := s.repo.ListCountryAreaIDs(ctx, tx, siteID)
	if err != nil {
		return 0, 0, err
	}

	toAdd, toRemove := diffIDs(oldIDs, countryIDs)

	if err := s.repo.InsertJurisdictions(ctx, tx, siteID, toAdd); err != nil {
		return 0, 0, err
	}
	if _, err := s.repo.DeleteJurisdictions(ctx, tx, siteID, toRemove); err != nil {
		return 0, 0, err
	}

	s.metrics.RecordJurisdictionChange(ctx, "added", len(toAdd))
	s.metrics.RecordJurisdictionChange(ctx, "removed", len(toRemove))
	return len(toAdd), len(toRemove), nil
}

func (s *Service) deleteJurisdictions(ctx context.Context, tx *gorm.DB, siteID int) (int64, error) {
	removed, err := s.repo.DeleteAllJurisdictions(ctx, tx, siteID)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordJurisdictionChange(ctx, "removed", int(removed))
	return removed, nil
}

// diffIDs returns the ids of next missing from prev, and of prev missing from
// next, each in input order.
func diffIDs(prev, next []int) ([]int, []int) {
	prevSet := make(map[int]struct{}, len(prev))
	for _, id := range prev {
		prevSet[id] = struct{}{}
	}
	nextSet := make(map[int]struct{}, len(next))
	for _, id := range next {
		nextSet[id] = struct{}{}
	}

	var toAdd []int
	for _, id := range next {
		if _, ok := prevSet[id]; !ok {
			toAdd = append(toAdd, id)
			prevSet[id] = struct{}{}
		}
	}
	var toRemove []int
	for _, id := range prev {
		if _, ok := nextSet[id]; !ok {
			toRemove = append(toRemove, id)
			nextSet[id] = struct{}{}
		}
	}
	return toAdd, toRemove
}
