package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	AuthCookieSecure bool
	AuthJWTSecret    string
	AuthJWTTTL       time.Duration

	Telemetry TelemetryConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	CatalogConfigPath string

	Bootstrap   BootstrapConfig
	RateLimit   RateLimitConfig
	MetricsPush MetricsPushConfig
	Scheduler   SchedulerConfig
}

// TelemetryConfig drives logging, tracing and OTLP metrics export.
type TelemetryConfig struct {
	LogLevel  string
	LogFormat string

	OtelEnabled       bool
	OtelEndpoint      string
	OtelProtocol      string
	OtelSamplingRatio float64
}

type BootstrapConfig struct {
	EnsureAdmin   bool
	AdminEmail    string
	AdminPassword string
}

type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginRate   float64
	LoginBurst  int
	SiteLockTTL time.Duration
}

type SchedulerConfig struct {
	Enabled              bool
	SessionPurgeSchedule string
	SnapshotSchedule     string
}

type MetricsPushConfig struct {
	Enabled   bool
	Exporter  string
	Endpoint  string
	AuthToken string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "heritage"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       environment,
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure:  authCookieSecure,
		AuthJWTSecret:     strings.TrimSpace(getenv("AUTH_JWT_SECRET", "")),
		AuthJWTTTL:        getenvDuration("AUTH_JWT_TTL", time.Hour),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "unesco_heritage_sites"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		CatalogConfigPath: strings.TrimSpace(getenv("CATALOG_CONFIG_PATH", "")),
		Telemetry: TelemetryConfig{
			LogLevel:          strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
			LogFormat:         strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
			OtelEnabled:       getenvBool("OTEL_ENABLED", false),
			OtelEndpoint:      strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")),
			OtelProtocol:      otlpProtocol(),
			OtelSamplingRatio: getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		},
		Bootstrap: BootstrapConfig{
			EnsureAdmin:   getenvBool("BOOTSTRAP_ENSURE_ADMIN", true),
			AdminEmail:    strings.TrimSpace(getenv("BOOTSTRAP_ADMIN_EMAIL", "admin@heritage.local")),
			AdminPassword: getenv("BOOTSTRAP_ADMIN_PASSWORD", "admin"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getenvBool("REDIS_ENABLED", false),
			RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "localhost:6379")),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
			RedisDB:       getenvInt("REDIS_DB", 0),
			LoginRate:     getenvFloat("LOGIN_RATE", 0.1),
			LoginBurst:    getenvInt("LOGIN_BURST", 5),
			SiteLockTTL:   getenvDuration("SITE_LOCK_TTL", 30*time.Second),
		},
		MetricsPush: MetricsPushConfig{
			Enabled:   getenvBool("METRICS_PUSH_ENABLED", false),
			Exporter:  strings.ToLower(getenv("METRICS_PUSH_EXPORTER", "")),
			Endpoint:  strings.TrimSpace(getenv("METRICS_PUSH_ENDPOINT", "")),
			AuthToken: strings.TrimSpace(getenv("METRICS_PUSH_AUTH_TOKEN", "")),
		},
		Scheduler: SchedulerConfig{
			Enabled:              getenvBool("SCHEDULER_ENABLED", true),
			SessionPurgeSchedule: strings.TrimSpace(getenv("SCHEDULER_SESSION_PURGE", "@every 1h")),
			SnapshotSchedule:     strings.TrimSpace(getenv("SCHEDULER_CATALOG_SNAPSHOT", "@every 5m")),
		},
	}

	return cfg
}

// otlpProtocol prefers the trace-specific OTLP protocol variable.
func otlpProtocol() string {
	protocol := getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"))
	return strings.ToLower(strings.TrimSpace(protocol))
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
