package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const exportInterval = 10 * time.Second

type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics holds the catalog counters exported over OTLP. A nil *Metrics
// records nothing.
type Metrics struct {
	siteWrites          metric.Int64Counter
	jurisdictionChanges metric.Int64Counter
	siteFilters         metric.Int64Counter
	rateLimitAllowed    metric.Int64Counter
	rateLimitDenied     metric.Int64Counter
}

// NewProvider installs the global meter provider: a periodic OTLP exporter
// when enabled, otherwise a no-op.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.StopHook(provider.Shutdown))
	}
	if log != nil {
		log.Info("otlp metrics enabled",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}
	return provider, nil
}

// New creates the catalog instruments on provider.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	scope := strings.TrimSpace(cfg.ServiceName)
	if scope == "" {
		scope = "heritage"
	}
	meter := provider.Meter(scope)

	m := &Metrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.siteWrites, "heritage_site_writes_total", "Heritage site creates, updates and deletes."},
		{&m.jurisdictionChanges, "heritage_jurisdiction_changes_total", "Jurisdiction rows added or removed by reconciliation."},
		{&m.siteFilters, "heritage_site_filter_requests_total", "Site list requests by criteria in use."},
		{&m.rateLimitAllowed, "heritage_rate_limit_allowed_total", "Throttled requests let through."},
		{&m.rateLimitDenied, "heritage_rate_limit_denied_total", "Throttled requests rejected."},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}
	return m, nil
}

func add(ctx context.Context, counter metric.Int64Counter, n int64, attrs ...attribute.KeyValue) {
	counter.Add(ctx, n, metric.WithAttributes(FilterAttributes(attrs...)...))
}

// RecordSiteWrite counts one create, update or delete.
func (m *Metrics) RecordSiteWrite(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	add(ctx, m.siteWrites, 1, attribute.String("operation", strings.TrimSpace(operation)))
}

// RecordJurisdictionChange counts jurisdiction rows "added" or "removed".
func (m *Metrics) RecordJurisdictionChange(ctx context.Context, change string, count int) {
	if m == nil || count <= 0 {
		return
	}
	add(ctx, m.jurisdictionChanges, int64(count), attribute.String("change", strings.TrimSpace(change)))
}

// RecordSiteFilter counts a list request; criteria is Filter.Criteria().
func (m *Metrics) RecordSiteFilter(ctx context.Context, criteria string) {
	if m == nil {
		return
	}
	if criteria = strings.TrimSpace(criteria); criteria == "" {
		criteria = "none"
	}
	add(ctx, m.siteFilters, 1, attribute.String("criteria", criteria))
}

func (m *Metrics) RecordRateLimitAllowed(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	add(ctx, m.rateLimitAllowed, 1, attribute.String("endpoint", strings.TrimSpace(endpoint)))
}

func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	add(ctx, m.rateLimitDenied, 1,
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(ctx, opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

// labelKeys are the only attribute keys catalog metrics may carry; site
// names, ids and emails would explode cardinality.
var labelKeys = map[attribute.Key]bool{
	"endpoint":    true,
	"status_code": true,
	"method":      true,
	"route":       true,
	"operation":   true,
	"change":      true,
	"criteria":    true,
	"reason":      true,
}

func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	kept := attrs[:0:0]
	for _, attr := range attrs {
		if labelKeys[attr.Key] {
			kept = append(kept, attr)
		}
	}
	return kept
}
