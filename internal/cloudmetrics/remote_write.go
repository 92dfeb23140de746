package cloudmetrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/prometheus/prompb"
	obstracing "github.com/smallbiznis/heritage/internal/observability/tracing"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

const remoteWriteTimeout = 5 * time.Second

// RemoteWrite posts catalog counters and gauges to a Prometheus
// remote_write endpoint as one snappy-compressed WriteRequest.
type RemoteWrite struct {
	endpoint string
	token    string
	external []prompb.Label
	client   *http.Client
	now      func() time.Time
}

func NewRemoteWrite(endpoint, token string, externalLabels map[string]string) *RemoteWrite {
	var external []prompb.Label
	for name, value := range externalLabels {
		if value = strings.TrimSpace(value); value != "" {
			external = append(external, prompb.Label{Name: name, Value: value})
		}
	}
	return &RemoteWrite{
		endpoint: endpoint,
		token:    strings.TrimSpace(token),
		external: external,
		client:   obstracing.WrapHTTPClient(&http.Client{Timeout: remoteWriteTimeout}),
		now:      time.Now,
	}
}

func (r *RemoteWrite) Push(ctx context.Context, registry prometheus.Gatherer) error {
	if r == nil || registry == nil {
		return nil
	}
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	series := toTimeSeries(families, r.external, r.now().UnixMilli())
	if len(series) == 0 {
		return nil
	}

	raw, err := proto.Marshal(protoadapt.MessageV2Of(&prompb.WriteRequest{Timeseries: series}))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(snappy.Encode(nil, raw)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-protobuf")
	req.Header.Set("Content-Encoding", "snappy")
	req.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("remote write to %s: %s", r.endpoint, resp.Status)
	}
	return nil
}

// toTimeSeries converts the catalog counters and gauges of families into one
// sample each at ts. Labels are sorted by name as remote_write requires.
func toTimeSeries(families []*dto.MetricFamily, external []prompb.Label, ts int64) []prompb.TimeSeries {
	var out []prompb.TimeSeries
	for _, family := range families {
		if !isCatalogMetric(family.GetName()) {
			continue
		}
		for _, m := range family.GetMetric() {
			value, ok := sampleValue(family.GetType(), m)
			if !ok {
				continue
			}
			labels := []prompb.Label{{Name: "__name__", Value: family.GetName()}}
			for _, pair := range m.GetLabel() {
				labels = append(labels, prompb.Label{Name: pair.GetName(), Value: pair.GetValue()})
			}
			labels = mergeExternal(labels, external)
			sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })

			out = append(out, prompb.TimeSeries{
				Labels:  labels,
				Samples: []prompb.Sample{{Value: value, Timestamp: ts}},
			})
		}
	}
	return out
}

// mergeExternal adds external labels the series does not set itself.
func mergeExternal(labels, external []prompb.Label) []prompb.Label {
	for _, ext := range external {
		present := false
		for _, l := range labels {
			if l.Name == ext.Name {
				present = true
				break
			}
		}
		if !present {
			labels = append(labels, ext)
		}
	}
	return labels
}

func sampleValue(kind dto.MetricType, m *dto.Metric) (float64, bool) {
	switch {
	case m == nil:
		return 0, false
	case kind == dto.MetricType_COUNTER && m.GetCounter() != nil:
		return m.GetCounter().GetValue(), true
	case kind == dto.MetricType_GAUGE && m.GetGauge() != nil:
		return m.GetGauge().GetValue(), true
	}
	return 0, false
}
