package migration

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups++
		case strings.HasSuffix(name, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, 2, ups)
	assert.Equal(t, ups, downs)

	_, err = newSource()
	assert.NoError(t, err)
}

func TestRunAutoMigratesOutsidePostgres(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), conn, zap.NewNop()))
	assert.True(t, conn.Migrator().HasTable(&authdomain.User{}))
	assert.True(t, conn.Migrator().HasTable(&authdomain.Session{}))
	assert.False(t, conn.Migrator().HasTable("heritage_site"))
}
