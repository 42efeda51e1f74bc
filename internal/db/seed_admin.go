package db

import (
	"context"

	"github.com/cataloghub/cataloghub/internal/config"
	"github.com/cataloghub/cataloghub/internal/domain/user"
	"github.com/cataloghub/cataloghub/internal/security"
)

type adminUserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, u *user.User) error
}

// EnsureAdminUser creates the configured admin account on startup if it is not
// there yet. A blank ADMIN_EMAIL/ADMIN_PASSWORD disables seeding.
func EnsureAdminUser(ctx context.Context, users adminUserStore, hasher *security.Hasher, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	exists, err := users.ExistsByEmail(ctx, cfg.AdminEmail)

	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	hash, err := hasher.Hash(cfg.AdminPassword)

	if err != nil {
		return err
	}

	u := user.User{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.NormalizeRole(cfg.AdminRole),
	}

	return users.Save(ctx, &u)
}
