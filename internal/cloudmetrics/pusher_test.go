package cloudmetrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/prometheus/prompb"
	"github.com/smallbiznis/heritage/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

func catalogRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()

	registry := prometheus.NewRegistry()
	sites := prometheus.NewGauge(prometheus.GaugeOpts{Name: "heritage_sites", Help: "sites"})
	byCategory := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "heritage_sites_by_category", Help: "sites"}, []string{"category"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "heritage_ignored_seconds", Help: "ignored"})
	foreign := prometheus.NewCounter(prometheus.CounterOpts{Name: "go_custom_total", Help: "not catalog"})
	registry.MustRegister(sites, byCategory, latency, foreign)

	sites.Set(7)
	byCategory.WithLabelValues("Cultural").Set(5)
	latency.Observe(0.2)
	foreign.Inc()
	return registry
}

func labelMap(ts prompb.TimeSeries) map[string]string {
	out := map[string]string{}
	for _, l := range ts.Labels {
		out[l.Name] = l.Value
	}
	return out
}

func TestToTimeSeriesKeepsCatalogCountersAndGauges(t *testing.T) {
	families, err := catalogRegistry(t).Gather()
	require.NoError(t, err)

	external := []prompb.Label{{Name: "environment", Value: "test"}, {Name: "category", Value: "overridden"}}
	series := toTimeSeries(families, external, 1000)
	require.Len(t, series, 2)

	byName := map[string]prompb.TimeSeries{}
	for _, ts := range series {
		byName[labelMap(ts)["__name__"]] = ts
	}
	require.Contains(t, byName, "heritage_sites")
	assert.Equal(t, 7.0, byName["heritage_sites"].Samples[0].Value)
	assert.Equal(t, int64(1000), byName["heritage_sites"].Samples[0].Timestamp)

	category := byName["heritage_sites_by_category"]
	labels := labelMap(category)
	assert.Equal(t, "Cultural", labels["category"], "series label wins over external")
	assert.Equal(t, "test", labels["environment"])
	for i := 1; i < len(category.Labels); i++ {
		assert.Less(t, category.Labels[i-1].Name, category.Labels[i].Name)
	}
}

func TestRemoteWritePush(t *testing.T) {
	var received prompb.WriteRequest
	var auth, encoding string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		encoding = r.Header.Get("Content-Encoding")
		body, err := io.ReadAll(r.Body)
		if !assert.NoError(t, err) {
			return
		}
		decoded, err := snappy.Decode(nil, body)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, proto.Unmarshal(decoded, protoadapt.MessageV2Of(&received)))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher := NewRemoteWrite(server.URL, " secret ", map[string]string{"service": "heritage", "environment": ""})
	pusher.now = func() time.Time { return time.UnixMilli(42) }
	require.NoError(t, pusher.Push(context.Background(), catalogRegistry(t)))

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "snappy", encoding)
	require.Len(t, received.Timeseries, 2)
	labels := labelMap(received.Timeseries[0])
	assert.Equal(t, "heritage", labels["service"])
	assert.NotContains(t, labels, "environment")
	assert.Equal(t, int64(42), received.Timeseries[0].Samples[0].Timestamp)
}

func TestRemoteWriteReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewRemoteWrite(server.URL, "", nil).Push(context.Background(), catalogRegistry(t))
	assert.ErrorContains(t, err, "502")
}

func TestPushgatewayPushesCatalogGroup(t *testing.T) {
	var path, body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gateway := NewPushgateway(server.URL, map[string]string{"environment": "test", "blank": " "})
	require.NoError(t, gateway.Push(context.Background(), catalogRegistry(t)))

	assert.Equal(t, "/metrics/job/heritage_catalog/environment/test", path)
	assert.NotContains(t, body, "go_custom_total")
	assert.True(t, strings.Contains(body, "heritage_sites"))
}

func TestNewPusher(t *testing.T) {
	log := zap.NewNop()

	assert.Nil(t, NewPusher(config.Config{}, log))
	assert.Nil(t, NewPusher(config.Config{MetricsPush: config.MetricsPushConfig{Enabled: true, Exporter: "statsd", Endpoint: "http://x"}}, log))
	assert.Nil(t, NewPusher(config.Config{MetricsPush: config.MetricsPushConfig{Enabled: true, Exporter: exporterRemoteWrite}}, log))
	assert.Nil(t, NewPusher(config.Config{MetricsPush: config.MetricsPushConfig{Enabled: true, Exporter: exporterRemoteWrite, Endpoint: "not a url"}}, log))

	remote := NewPusher(config.Config{MetricsPush: config.MetricsPushConfig{
		Enabled:  true,
		Exporter: exporterRemoteWrite,
		Endpoint: "https://metrics.example/api/v1/write",
	}}, log)
	assert.IsType(t, &RemoteWrite{}, remote)

	gateway := NewPusher(config.Config{AppName: "heritage", MetricsPush: config.MetricsPushConfig{
		Enabled:  true,
		Exporter: "Prometheus_Pushgateway",
		Endpoint: "http://pushgateway:9091",
	}}, log)
	assert.IsType(t, &Pushgateway{}, gateway)
}
