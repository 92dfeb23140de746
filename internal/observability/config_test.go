package observability

import (
	"testing"

	"github.com/smallbiznis/heritage/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(config.Config{
		Environment: " production ",
		AppVersion:  "1.2.0",
		Telemetry: config.TelemetryConfig{
			LogLevel:          "info",
			OtelEnabled:       true,
			OtelSamplingRatio: 3,
		},
	})

	assert.Equal(t, "heritage", cfg.ServiceName)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.OtelEnabled, "otel needs an endpoint")
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestDebug(t *testing.T) {
	assert.True(t, Config{LogLevel: "DEBUG", Environment: "production"}.Debug())
	assert.True(t, Config{LogLevel: "info", Environment: "local"}.Debug())
	assert.False(t, Config{LogLevel: "warn", Environment: "staging"}.Debug())
}
