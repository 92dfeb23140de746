package scheduler

import (
	"time"

	"github.com/smallbiznis/heritage/internal/config"
)

const (
	JobSessionPurge    = "session_purge"
	JobCatalogSnapshot = "catalog_snapshot"
)

// Config holds the cron specs of each job. An empty spec disables the job.
type Config struct {
	Enabled                 bool
	SessionPurgeSchedule    string
	CatalogSnapshotSchedule string
	JobTimeout              time.Duration
}

func DefaultConfig() Config {
	return Config{
		Enabled:                 true,
		SessionPurgeSchedule:    "@every 1h",
		CatalogSnapshotSchedule: "@every 5m",
		JobTimeout:              30 * time.Second,
	}
}

func ProvideConfig(cfg config.Config) Config {
	return Config{
		Enabled:                 cfg.Scheduler.Enabled,
		SessionPurgeSchedule:    cfg.Scheduler.SessionPurgeSchedule,
		CatalogSnapshotSchedule: cfg.Scheduler.SnapshotSchedule,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.JobTimeout <= 0 {
		c.JobTimeout = DefaultConfig().JobTimeout
	}
	return c
}
