package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/heritage/internal/authorization"
	"gorm.io/gorm"
)

const (
	SchedulerJobReasonDeadlineExceeded     = "deadline_exceeded"
	SchedulerJobReasonDBLockTimeout        = "db_lock_timeout"
	SchedulerJobReasonSerializationFailure = "serialization_failure"
	SchedulerJobReasonUniqueViolation      = "unique_violation"
	SchedulerJobReasonForbidden            = "forbidden"
	SchedulerJobReasonUnknown              = "unknown"
)

// SchedulerMetrics captures background job health and the catalog gauges
// refreshed by the scheduler.
type SchedulerMetrics struct {
	jobRuns        *prometheus.CounterVec
	jobDuration    *prometheus.HistogramVec
	jobErrors      *prometheus.CounterVec
	itemsProcessed *prometheus.CounterVec

	sitesTotal         prometheus.Gauge
	countryAreasTotal  prometheus.Gauge
	jurisdictionsTotal prometheus.Gauge
	sitesByCategory    *prometheus.GaugeVec

	registry prometheus.Gatherer
}

var (
	schedulerMetricsOnce sync.Once
	schedulerMetrics     *SchedulerMetrics
)

// Scheduler returns the singleton scheduler metrics registry.
func Scheduler() *SchedulerMetrics {
	return SchedulerWithConfig(Config{})
}

// SchedulerWithConfig returns the singleton scheduler metrics registry using config labels.
func SchedulerWithConfig(cfg Config) *SchedulerMetrics {
	schedulerMetricsOnce.Do(func() {
		schedulerMetrics = newSchedulerMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer, cfg)
	})
	return schedulerMetrics
}

// NewSchedulerMetrics registers an independent set of instruments on registry.
func NewSchedulerMetrics(registry *prometheus.Registry, cfg Config) *SchedulerMetrics {
	return newSchedulerMetrics(registry, registry, cfg)
}

func newSchedulerMetrics(registerer prometheus.Registerer, gatherer prometheus.Gatherer, cfg Config) *SchedulerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	labels := prometheus.Labels{
		"service": valueOr(cfg.ServiceName, "heritage"),
		"env":     valueOr(cfg.Environment, "unknown"),
	}
	counter := func(name, help string, vars ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help, ConstLabels: labels}, vars)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: labels})
	}

	m := &SchedulerMetrics{
		jobRuns: counter("heritage_scheduler_job_runs_total", "Scheduler job runs by name.", "job"),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "heritage_scheduler_job_duration_seconds",
			Help:        "Scheduler job latency.",
			Buckets:     []float64{0.01, 0.05, 0.25, 1, 5, 30, 120},
			ConstLabels: labels,
		}, []string{"job"}),
		jobErrors:          counter("heritage_scheduler_job_errors_total", "Scheduler job errors by low-cardinality reason.", "job", "reason"),
		itemsProcessed:     counter("heritage_scheduler_items_processed_total", "Rows touched by scheduler jobs.", "job", "resource"),
		sitesTotal:         gauge("heritage_sites", "Heritage sites in the catalog."),
		countryAreasTotal:  gauge("heritage_country_areas", "Countries and areas in the catalog."),
		jurisdictionsTotal: gauge("heritage_site_jurisdictions", "Site to country associations."),
		sitesByCategory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "heritage_sites_by_category",
			Help:        "Heritage sites per category.",
			ConstLabels: labels,
		}, []string{"category"}),
		registry: gatherer,
	}
	registerer.MustRegister(
		m.jobRuns, m.jobDuration, m.jobErrors, m.itemsProcessed,
		m.sitesTotal, m.countryAreasTotal, m.jurisdictionsTotal, m.sitesByCategory,
	)
	return m
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// Gatherer returns the registry holding these instruments.
func (m *SchedulerMetrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.DefaultGatherer
	}
	return m.registry
}

// IncJobRun increments the run counter for a scheduler job.
func (m *SchedulerMetrics) IncJobRun(job string) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job).Inc()
}

// ObserveJobDuration records scheduler job latency in seconds.
func (m *SchedulerMetrics) ObserveJobDuration(job string, duration time.Duration) {
	if m == nil {
		return
	}
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// IncJobError increments the scheduler job error counter with classification.
func (m *SchedulerMetrics) IncJobError(job string, err error) {
	if m == nil || err == nil {
		return
	}
	m.jobErrors.WithLabelValues(job, ClassifySchedulerJobReason(err)).Inc()
}

// AddItemsProcessed adds count rows handled by job for resource.
func (m *SchedulerMetrics) AddItemsProcessed(job, resource string, count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.itemsProcessed.WithLabelValues(job, resource).Add(float64(count))
}

// CatalogSnapshot is a point-in-time count of catalog rows.
type CatalogSnapshot struct {
	Sites           int64
	CountryAreas    int64
	Jurisdictions   int64
	SitesByCategory map[string]int64
}

// SetCatalogSnapshot replaces the catalog gauges with snapshot.
func (m *SchedulerMetrics) SetCatalogSnapshot(snapshot CatalogSnapshot) {
	if m == nil {
		return
	}
	m.sitesTotal.Set(float64(snapshot.Sites))
	m.countryAreasTotal.Set(float64(snapshot.CountryAreas))
	m.jurisdictionsTotal.Set(float64(snapshot.Jurisdictions))
	m.sitesByCategory.Reset()
	for category, count := range snapshot.SitesByCategory {
		m.sitesByCategory.WithLabelValues(category).Set(float64(count))
	}
}

// pgReasons maps Postgres SQLSTATE codes to job error reasons.
var pgReasons = map[string]string{
	"55P03": SchedulerJobReasonDBLockTimeout,
	"40001": SchedulerJobReasonSerializationFailure,
	"23505": SchedulerJobReasonUniqueViolation,
}

// ClassifySchedulerJobReason maps scheduler job errors to low-cardinality reasons.
func ClassifySchedulerJobReason(err error) string {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return SchedulerJobReasonUnknown
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return SchedulerJobReasonDeadlineExceeded
	case errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authorization.ErrInvalidActor),
		errors.Is(err, authorization.ErrInvalidObject),
		errors.Is(err, authorization.ErrInvalidAction):
		return SchedulerJobReasonForbidden
	case errors.As(err, &pgErr):
		if reason, ok := pgReasons[pgErr.Code]; ok {
			return reason
		}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return SchedulerJobReasonUniqueViolation
	}
	return SchedulerJobReasonUnknown
}
