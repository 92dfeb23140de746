package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCatalogConfigDefaultsWhenFileMissing(t *testing.T) {
	holder, err := NewCatalogConfigHolder(Config{
		CatalogConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogConfig(), holder.Get())
}

func TestCatalogConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	content := []byte("catalog:\n  homeTitle: World Heritage\n  sitePageSize: 25\n  countryAreaPageSize: 10\n  maxPageSize: 100\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	holder, err := NewCatalogConfigHolder(Config{CatalogConfigPath: path}, zaptest.NewLogger(t))
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, "World Heritage", cfg.HomeTitle)
	assert.Equal(t, 25, cfg.SitePageSize)
	assert.Equal(t, 10, cfg.CountryAreaPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, DefaultCatalogConfig().AboutText, cfg.AboutText)
}

func TestCatalogConfigRejectsInvalidPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  sitePageSize: 0\n"), 0o600))

	_, err := NewCatalogConfigHolder(Config{CatalogConfigPath: path}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestNilHolderFallsBackToDefaults(t *testing.T) {
	var holder *CatalogConfigHolder
	assert.Equal(t, DefaultCatalogConfig(), holder.Get())
}
