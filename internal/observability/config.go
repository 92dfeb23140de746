package observability

import (
	"strings"

	"github.com/smallbiznis/heritage/internal/config"
)

// Config is the slice of the application config the telemetry providers
// need, with service identity defaults applied.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "heritage"
	}
	tel := cfg.Telemetry
	ratio := tel.OtelSamplingRatio
	if ratio < 0 || ratio > 1 {
		ratio = 0.1
	}
	return Config{
		ServiceName:          serviceName,
		Environment:          strings.TrimSpace(cfg.Environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             tel.LogLevel,
		LogFormat:            tel.LogFormat,
		OtelEnabled:          tel.OtelEnabled && tel.OtelEndpoint != "",
		OtelExporterEndpoint: tel.OtelEndpoint,
		OtelExporterProtocol: tel.OtelProtocol,
		OtelSamplingRatio:    ratio,
	}
}

// Debug is on for debug logging or any non-shared environment.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}
