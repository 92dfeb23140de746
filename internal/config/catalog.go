package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CatalogConfig carries display settings that can change without a restart.
type CatalogConfig struct {
	HomeTitle           string `mapstructure:"homeTitle"`
	AboutText           string `mapstructure:"aboutText"`
	SitePageSize        int    `mapstructure:"sitePageSize"`
	CountryAreaPageSize int    `mapstructure:"countryAreaPageSize"`
	MaxPageSize         int    `mapstructure:"maxPageSize"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		HomeTitle:           "UNESCO Heritage Sites",
		AboutText:           "A catalog of UNESCO World Heritage Sites and the countries and areas responsible for them.",
		SitePageSize:        50,
		CountryAreaPageSize: 20,
		MaxPageSize:         250,
	}
}

type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

// NewStaticCatalogConfigHolder returns a holder that never reloads.
func NewStaticCatalogConfigHolder(cfg CatalogConfig) *CatalogConfigHolder {
	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// NewCatalogConfigHolder loads catalog.yml and keeps watching it for changes.
func NewCatalogConfigHolder(cfg Config, log *zap.Logger) (*CatalogConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("catalog.config")

	v := viper.New()
	if path := strings.TrimSpace(cfg.CatalogConfigPath); path != "" {
		v.SetConfigFile(filepath.Clean(path))
	} else {
		v.SetConfigName("catalog")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/heritage")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HERITAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCatalogConfig()
	v.SetDefault("catalog.homeTitle", defaults.HomeTitle)
	v.SetDefault("catalog.aboutText", defaults.AboutText)
	v.SetDefault("catalog.sitePageSize", defaults.SitePageSize)
	v.SetDefault("catalog.countryAreaPageSize", defaults.CountryAreaPageSize)
	v.SetDefault("catalog.maxPageSize", defaults.MaxPageSize)

	watch := true
	if err := readCatalogFile(v, cfg.CatalogConfigPath); err != nil {
		if !errors.Is(err, errCatalogFileMissing) {
			return nil, err
		}
		watch = false
		log.Info("catalog config file not found, using defaults")
	}

	catalog, err := decodeCatalog(v)
	if err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(catalog); err != nil {
		return nil, err
	}

	holder := NewStaticCatalogConfigHolder(catalog)
	if !watch {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeCatalog(v)
		if err != nil {
			log.Warn("catalog config reload failed", zap.Error(err))
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Warn("invalid catalog config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("catalog config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// decodeCatalog goes through AllSettings so file values merge with defaults per key.
func decodeCatalog(v *viper.Viper) (CatalogConfig, error) {
	var wrapper struct {
		Catalog CatalogConfig `mapstructure:"catalog"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return CatalogConfig{}, err
	}
	return wrapper.Catalog, nil
}

var errCatalogFileMissing = errors.New("catalog config file not found")

func readCatalogFile(v *viper.Viper, path string) error {
	if path = strings.TrimSpace(path); path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return errCatalogFileMissing
			}
			return err
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return errCatalogFileMissing
		}
		return err
	}
	return nil
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	if h == nil {
		return DefaultCatalogConfig()
	}
	cfg, ok := h.current.Load().(CatalogConfig)
	if !ok {
		return DefaultCatalogConfig()
	}
	return cfg
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if cfg.SitePageSize <= 0 {
		return errors.New("catalog.sitePageSize must be positive")
	}
	if cfg.CountryAreaPageSize <= 0 {
		return errors.New("catalog.countryAreaPageSize must be positive")
	}
	if cfg.MaxPageSize < cfg.SitePageSize || cfg.MaxPageSize < cfg.CountryAreaPageSize {
		return errors.New("catalog.maxPageSize must not be smaller than the default page sizes")
	}
	return nil
}
