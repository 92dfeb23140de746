package scheduler

import (
	"context"

	obsmetrics "github.com/smallbiznis/heritage/internal/observability/metrics"
	"go.uber.org/zap"
)

// PurgeSessionsJob deletes expired and revoked login sessions.
func (s *Scheduler) PurgeSessionsJob(ctx context.Context) error {
	r := runFrom(ctx)

	removed, err := s.authSvc.PurgeSessions(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	r.addProcessed(removed)
	s.metrics.AddItemsProcessed(JobSessionPurge, "sessions", removed)
	return nil
}

// CatalogSnapshotJob refreshes the catalog gauges and pushes them when a
// pusher is configured. A failed push is logged; the gauges stay updated.
func (s *Scheduler) CatalogSnapshotJob(ctx context.Context) error {
	r := runFrom(ctx)

	stats, err := s.siteSvc.Stats(ctx)
	if err != nil {
		return err
	}
	countryAreas, err := s.geoSvc.CountCountryAreas(ctx)
	if err != nil {
		return err
	}

	s.metrics.SetCatalogSnapshot(obsmetrics.CatalogSnapshot{
		Sites:           stats.Sites,
		CountryAreas:    countryAreas,
		Jurisdictions:   stats.Jurisdictions,
		SitesByCategory: stats.SitesByCategory,
	})
	r.addProcessed(stats.Sites)

	if s.pusher == nil {
		return nil
	}
	if err := s.pusher.Push(ctx, s.metrics.Gatherer()); err != nil {
		r.fail("scheduler.metrics.push.failed", err, zap.Int64("sites", stats.Sites))
	}
	return nil
}
