package cloudmetrics

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/heritage/internal/config"
	"go.uber.org/zap"
)

const (
	exporterRemoteWrite = "prometheus_remote_write"
	exporterPushgateway = "prometheus_pushgateway"

	// only catalog series leave the process; runtime metrics stay on /metrics
	catalogMetricPrefix = "heritage_"
)

// Pusher ships one snapshot of a registry. The scheduler decides when.
type Pusher interface {
	Push(ctx context.Context, registry prometheus.Gatherer) error
}

// NewPusher returns nil when pushing is off or misconfigured; problems are
// logged and never block startup.
func NewPusher(cfg config.Config, log *zap.Logger) Pusher {
	if log == nil {
		log = zap.NewNop()
	}
	push := cfg.MetricsPush
	if !push.Enabled {
		return nil
	}

	pusher, err := newPusher(cfg)
	if err != nil {
		log.Warn("metrics push disabled", zap.String("exporter", push.Exporter), zap.Error(err))
		return nil
	}
	log.Info("metrics push enabled", zap.String("exporter", push.Exporter))
	return pusher
}

func newPusher(cfg config.Config) (Pusher, error) {
	push := cfg.MetricsPush
	endpoint := strings.TrimSpace(push.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("METRICS_PUSH_ENDPOINT is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid METRICS_PUSH_ENDPOINT: %w", err)
	}

	labels := map[string]string{
		"service":     strings.TrimSpace(cfg.AppName),
		"environment": strings.TrimSpace(cfg.Environment),
	}
	switch strings.ToLower(strings.TrimSpace(push.Exporter)) {
	case exporterRemoteWrite:
		return NewRemoteWrite(endpoint, push.AuthToken, labels), nil
	case exporterPushgateway:
		return NewPushgateway(endpoint, labels), nil
	default:
		return nil, fmt.Errorf("unknown METRICS_PUSH_EXPORTER %q", push.Exporter)
	}
}

func isCatalogMetric(name string) bool {
	return strings.HasPrefix(name, catalogMetricPrefix)
}
