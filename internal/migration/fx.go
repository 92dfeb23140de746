package migration

import (
	"context"

	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/config"
	"github.com/smallbiznis/heritage/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, authsvc authdomain.Service, log *zap.Logger) error {
		ctx := context.Background()
		if err := Run(ctx, conn, log); err != nil {
			return err
		}
		if !cfg.Bootstrap.EnsureAdmin {
			return nil
		}
		return seed.EnsureBootstrapAdmin(ctx, authsvc, cfg.Bootstrap, log)
	}),
)
