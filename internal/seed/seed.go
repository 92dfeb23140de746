package seed

import (
	"context"
	"errors"

	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/config"
	"go.uber.org/zap"
)

// EnsureBootstrapAdmin creates the configured admin account on first start.
// An existing account with the same email is left as is.
func EnsureBootstrapAdmin(ctx context.Context, authsvc authdomain.Service, cfg config.BootstrapConfig, log *zap.Logger) error {
	if authsvc == nil {
		return errors.New("seed auth service is required")
	}

	user, created, err := authsvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Warn("bootstrap admin uses the configured default password; change it after first login",
			zap.String("email", user.Email),
		)
	}
	return nil
}

// CreateUser adds a catalog account from the command line. An empty role
// falls back to the service default.
func CreateUser(ctx context.Context, authsvc authdomain.Service, req authdomain.CreateUserRequest, log *zap.Logger) (*authdomain.User, error) {
	if authsvc == nil {
		return nil, errors.New("seed auth service is required")
	}

	user, err := authsvc.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)
	return user, nil
}
