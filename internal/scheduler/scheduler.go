package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/clock"
	"github.com/smallbiznis/heritage/internal/cloudmetrics"
	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
	obsmetrics "github.com/smallbiznis/heritage/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	Log     *zap.Logger
	Config  Config
	AuthSvc authdomain.Service
	SiteSvc sitedomain.Service
	GeoSvc  geodomain.Service
	GenID   *snowflake.Node

	Pusher  cloudmetrics.Pusher          `optional:"true"`
	Metrics *obsmetrics.SchedulerMetrics `optional:"true"`
	Clock   clock.Clock                  `optional:"true"`
}

// Scheduler runs the background jobs on cron specs. Jobs never overlap
// with themselves; a run that is still going when the next tick fires is
// skipped.
type Scheduler struct {
	log     *zap.Logger
	cfg     Config
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *obsmetrics.SchedulerMetrics
	pusher  cloudmetrics.Pusher

	authSvc authdomain.Service
	siteSvc sitedomain.Service
	geoSvc  geodomain.Service

	cron *cron.Cron
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.AuthSvc == nil || p.SiteSvc == nil || p.GeoSvc == nil || p.GenID == nil {
		return nil, ErrInvalidConfig
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	metrics := p.Metrics
	if metrics == nil {
		metrics = obsmetrics.Scheduler()
	}
	log := p.Log.Named("scheduler").With(zap.String("component", "scheduler"))
	return &Scheduler{
		log:     log,
		cfg:     p.Config.withDefaults(),
		genID:   p.GenID,
		clock:   clk,
		metrics: metrics,
		pusher:  p.Pusher,
		authSvc: p.AuthSvc,
		siteSvc: p.SiteSvc,
		geoSvc:  p.GeoSvc,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}, nil
}

// Register adds every job with a non-empty spec to the cron table.
func (s *Scheduler) Register(ctx context.Context) error {
	jobs := []struct {
		name string
		spec string
		fn   func(context.Context) error
	}{
		{JobSessionPurge, s.cfg.SessionPurgeSchedule, s.PurgeSessionsJob},
		{JobCatalogSnapshot, s.cfg.CatalogSnapshotSchedule, s.CatalogSnapshotJob},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			if err := s.runJob(ctx, job.name, job.fn); err != nil {
				s.log.Warn("scheduler run failed", zap.String("job", job.name), zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("schedule %s %q: %w", job.name, job.spec, err)
		}
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce runs every job immediately, in order.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return errors.Join(
		s.runJob(ctx, JobSessionPurge, s.PurgeSessionsJob),
		s.runJob(ctx, JobCatalogSnapshot, s.CatalogSnapshotJob),
	)
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	ctx, r := s.beginRun(ctx, name)
	s.metrics.IncJobRun(name)

	err := fn(ctx)
	s.metrics.ObserveJobDuration(name, r.finish(s.clock.Now(), err))
	if err == nil {
		return nil
	}

	s.metrics.IncJobError(name, err)
	if errors.Is(err, context.DeadlineExceeded) {
		r.log.Warn("job timed out", zap.Duration("timeout", s.cfg.JobTimeout))
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
