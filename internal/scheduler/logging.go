package scheduler

import (
	"context"
	"time"

	obscontext "github.com/smallbiznis/heritage/internal/observability/context"
	obslogger "github.com/smallbiznis/heritage/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/heritage/internal/observability/metrics"
	"go.uber.org/zap"
)

// run tracks a single job execution. Its logger carries the job name and a
// run id that also becomes the request id of everything the job logs.
type run struct {
	job       string
	id        string
	startedAt time.Time
	log       *zap.Logger

	processed int64
	failures  int
}

type runKey struct{}

func (s *Scheduler) beginRun(ctx context.Context, job string) (context.Context, *run) {
	r := &run{
		job:       job,
		id:        s.genID.Generate().String(),
		startedAt: s.clock.Now(),
	}
	ctx = obscontext.WithActor(ctx, "system", "scheduler")
	ctx = obscontext.WithRequestID(ctx, r.id)
	r.log = obslogger.WithContext(ctx, s.log).With(zap.String("job", job))
	ctx = context.WithValue(ctx, runKey{}, r)

	r.log.Debug("scheduler.job.start")
	return ctx, r
}

// runFrom returns the run stored by beginRun. Jobs called outside the
// scheduler get a detached run so their bookkeeping is a no-op.
func runFrom(ctx context.Context) *run {
	if r, ok := ctx.Value(runKey{}).(*run); ok {
		return r
	}
	return &run{log: zap.NewNop()}
}

func (r *run) addProcessed(n int64) {
	if n > 0 {
		r.processed += n
	}
}

// fail logs a non-fatal problem; the job keeps going.
func (r *run) fail(msg string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	r.failures++
	r.log.Error(msg, append(fields,
		zap.String("reason", obsmetrics.ClassifySchedulerJobReason(err)),
		zap.Error(err),
	)...)
}

func (r *run) finish(now time.Time, err error) time.Duration {
	elapsed := now.Sub(r.startedAt)
	if err != nil && r.failures == 0 {
		r.failures = 1
	}
	level := zap.InfoLevel
	if r.failures > 0 {
		level = zap.WarnLevel
	}
	r.log.Log(level, "scheduler.job.finish",
		zap.Int64("duration_ms", elapsed.Milliseconds()),
		zap.Int64("processed_count", r.processed),
		zap.Int("error_count", r.failures),
	)
	return elapsed
}
