package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPostgresDuplicateKey(t *testing.T) {
	if os.Getenv("HERITAGE_CONTAINER_TESTS") == "" {
		t.Skip("set HERITAGE_CONTAINER_TESTS=1 to run container-backed tests")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("unesco_heritage_sites"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE heritage_site_category (
		category_id SERIAL PRIMARY KEY,
		category_name VARCHAR(25) NOT NULL UNIQUE
	)`).Error)

	require.NoError(t, conn.Exec(`INSERT INTO heritage_site_category (category_name) VALUES ('Natural')`).Error)
	err = conn.Exec(`INSERT INTO heritage_site_category (category_name) VALUES ('Natural')`).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKeyErr(err))
}
