package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/security"
	"gorm.io/gorm"
)

// EnsureAdmin provisions the configured admin account when it does not exist
// yet. Returns true when a row was created, false when the username was
// already taken (the stored hash is left untouched, so reruns are safe).
func EnsureAdmin(ctx context.Context, repo *Repository, admin config.AdminConfig, passwordCfg config.PasswordConfig) (bool, error) {
	username := strings.TrimSpace(admin.Username)
	if username == "" {
		return false, fmt.Errorf("admin username is required")
	}
	if admin.Password == "" {
		return false, fmt.Errorf("admin password is required (set FFO_ADMIN_PASSWORD)")
	}

	_, err := repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("looking up admin account: %w", err)
	}

	hash, err := security.HashPassword(admin.Password, passwordCfg)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err := repo.Create(ctx, &models.User{Username: username, PasswordHash: hash}); err != nil {
		return false, fmt.Errorf("creating admin account: %w", err)
	}
	return true, nil
}
