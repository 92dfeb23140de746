// @title                       Heritage Sites API
// @version                     1.0
// @description                 Catalog of UNESCO World Heritage Sites.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/smallbiznis/heritage/internal/auth"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/clock"
	"github.com/smallbiznis/heritage/internal/config"
	"github.com/smallbiznis/heritage/internal/migration"
	"github.com/smallbiznis/heritage/internal/observability"
	"github.com/smallbiznis/heritage/internal/seed"
	"github.com/smallbiznis/heritage/internal/server"
	"github.com/smallbiznis/heritage/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const oneShotTimeout = 2 * time.Minute

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "heritage",
		Short:         "UNESCO heritage sites catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), userCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				infrastructure(),
				clock.Module,
				server.Module,
				migration.Module,
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending auth-table migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(),
				fx.Invoke(func(conn *gorm.DB, log *zap.Logger) error {
					return migration.Run(cmd.Context(), conn, log)
				}),
			)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the bootstrap admin user if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(),
				auth.Module,
				fx.Invoke(func(cfg config.Config, authsvc authdomain.Service, log *zap.Logger) error {
					return seed.EnsureBootstrapAdmin(cmd.Context(), authsvc, cfg.Bootstrap, log)
				}),
			)
		},
	}
}

func userCmd() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage catalog accounts",
	}
	user.AddCommand(userCreateCmd())
	return user
}

func userCreateCmd() *cobra.Command {
	var req authdomain.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a catalog account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(),
				auth.Module,
				fx.Invoke(func(authsvc authdomain.Service, log *zap.Logger) error {
					user, err := seed.CreateUser(cmd.Context(), authsvc, req, log)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s, role %s)\n", user.ID, user.Email, user.Role)
					return nil
				}),
			)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.Email, "email", "", "account email")
	flags.StringVar(&req.Password, "password", "", "account password")
	flags.StringVar(&req.DisplayName, "display-name", "", "display name (defaults to the email local part)")
	flags.StringVar(&req.Role, "role", "", "viewer, editor or admin (defaults to editor)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func infrastructure() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		db.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
}

// runOnce builds an app whose invokes do the work, then starts and stops it
// so lifecycle hooks (db pool, exporters) are released.
func runOnce(ctx context.Context, opts ...fx.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app := fx.New(append([]fx.Option{infrastructure()}, opts...)...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, oneShotTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer stopCancel()
	return app.Stop(stopCtx)
}
