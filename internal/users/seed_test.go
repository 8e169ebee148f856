package users

import (
	"context"
	"testing"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/security"
)

func fastHashConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestEnsureAdminCreatesVerifiableAccount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := EnsureAdmin(ctx, repo, config.AdminConfig{Username: "admin", Password: "s3cret"}, fastHashConfig())
	if err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if !created {
		t.Fatal("expected account to be created")
	}

	row, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	ok, err := security.VerifyPassword("s3cret", row.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify (ok=%v err=%v)", ok, err)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := EnsureAdmin(ctx, repo, config.AdminConfig{Username: "admin", Password: "first"}, fastHashConfig()); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	before, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}

	created, err := EnsureAdmin(ctx, repo, config.AdminConfig{Username: "admin", Password: "second"}, fastHashConfig())
	if err != nil {
		t.Fatalf("EnsureAdmin rerun: %v", err)
	}
	if created {
		t.Fatal("rerun must not create a second account")
	}

	after, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Fatal("rerun must not rewrite the stored hash")
	}
}

func TestEnsureAdminRejectsMissingCredentials(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := EnsureAdmin(ctx, repo, config.AdminConfig{Username: "  ", Password: "pw"}, fastHashConfig()); err == nil {
		t.Fatal("expected error for blank username")
	}
	if _, err := EnsureAdmin(ctx, repo, config.AdminConfig{Username: "admin"}, fastHashConfig()); err == nil {
		t.Fatal("expected error for missing password")
	}
}
