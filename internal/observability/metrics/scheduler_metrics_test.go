package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smallbiznis/heritage/internal/authorization"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifySchedulerJobReason(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: SchedulerJobReasonDeadlineExceeded},
		{name: "forbidden", err: authorization.ErrForbidden, want: SchedulerJobReasonForbidden},
		{name: "db_lock_timeout", err: &pgconn.PgError{Code: "55P03"}, want: SchedulerJobReasonDBLockTimeout},
		{name: "serialization_failure", err: &pgconn.PgError{Code: "40001"}, want: SchedulerJobReasonSerializationFailure},
		{name: "unique_violation", err: gorm.ErrDuplicatedKey, want: SchedulerJobReasonUniqueViolation},
		{name: "unknown", err: errors.New("boom"), want: SchedulerJobReasonUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifySchedulerJobReason(tc.err))
		})
	}
}

func TestSetCatalogSnapshot(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewSchedulerMetrics(registry, Config{ServiceName: "heritage", Environment: "test"})

	m.SetCatalogSnapshot(CatalogSnapshot{
		Sites:         3,
		CountryAreas:  5,
		Jurisdictions: 4,
		SitesByCategory: map[string]int64{
			"Cultural": 2,
			"Natural":  1,
		},
	})

	assert.Equal(t, float64(3), testutil.ToFloat64(m.sitesTotal))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.countryAreasTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.sitesByCategory.WithLabelValues("Cultural")))

	m.SetCatalogSnapshot(CatalogSnapshot{SitesByCategory: map[string]int64{"Natural": 1}})
	assert.Equal(t, 1, testutil.CollectAndCount(m.sitesByCategory))
}

func TestAddItemsProcessed(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewSchedulerMetrics(registry, Config{})

	m.AddItemsProcessed("purge_sessions", "sessions", 3)
	m.AddItemsProcessed("purge_sessions", "sessions", 0)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.itemsProcessed.WithLabelValues("purge_sessions", "sessions")))
}
