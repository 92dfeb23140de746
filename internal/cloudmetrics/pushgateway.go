package cloudmetrics

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	dto "github.com/prometheus/client_model/go"
)

const pushgatewayJob = "heritage_catalog"

// Pushgateway replaces the catalog group on a Prometheus Pushgateway.
type Pushgateway struct {
	endpoint string
	grouping map[string]string
}

func NewPushgateway(endpoint string, grouping map[string]string) *Pushgateway {
	clean := make(map[string]string, len(grouping))
	for k, v := range grouping {
		if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
			clean[k] = v
		}
	}
	return &Pushgateway{endpoint: endpoint, grouping: clean}
}

func (p *Pushgateway) Push(ctx context.Context, registry prometheus.Gatherer) error {
	if p == nil || registry == nil {
		return nil
	}
	pusher := push.New(p.endpoint, pushgatewayJob).Gatherer(catalogOnly{registry})
	for k, v := range p.grouping {
		pusher = pusher.Grouping(k, v)
	}
	return pusher.PushContext(ctx)
}

// catalogOnly narrows a gatherer to the heritage_ families.
type catalogOnly struct {
	inner prometheus.Gatherer
}

func (g catalogOnly) Gather() ([]*dto.MetricFamily, error) {
	families, err := g.inner.Gather()
	kept := families[:0]
	for _, f := range families {
		if isCatalogMetric(f.GetName()) {
			kept = append(kept, f)
		}
	}
	return kept, err
}
