package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db"
)

func TestMigrationDirsAreValid(t *testing.T) {
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		dir := filepath.Join("migrations", filepath.Base(DirForDialect(dialect)))
		if err := ValidateDir(dir); err != nil {
			t.Fatalf("%s migrations invalid: %v", dialect, err)
		}
	}
}

// Every migration version must exist for both dialects, or one of the two
// paths silently falls behind.
func TestMigrationDirsCarrySameVersions(t *testing.T) {
	versions := func(dir string) []string {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read %s: %v", dir, err)
		}
		var out []string
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".sql") {
				out = append(out, e.Name())
			}
		}
		return out
	}

	pg := versions(filepath.Join("migrations", "postgres"))
	lite := versions(filepath.Join("migrations", "sqlite"))
	if len(pg) != len(lite) {
		t.Fatalf("dialect dirs out of sync: postgres=%v sqlite=%v", pg, lite)
	}
	for i := range pg {
		if pg[i] != lite[i] {
			t.Fatalf("migration %q has no sqlite counterpart (found %q)", pg[i], lite[i])
		}
	}
}

func TestSQLiteMigrationsApplyCleanly(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		Driver: "sqlite",
		DSN:    "file:migrate-sqlite-up?mode=memory&cache=shared",
	}, nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}

	dir := filepath.Join("migrations", "sqlite")
	if err := Run(ctx, sqlDB, DialectSQLite, dir, "up"); err != nil {
		t.Fatalf("goose up on sqlite: %v", err)
	}
	for _, table := range []string{"users", "products", "media"} {
		var count int64
		if err := client.DB().Table(table).Count(&count).Error; err != nil {
			t.Fatalf("table %s missing after up: %v", table, err)
		}
	}
	if err := Run(ctx, sqlDB, DialectSQLite, dir, "down"); err != nil {
		t.Fatalf("goose down on sqlite: %v", err)
	}
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Click Index!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration invalid: %v (path %s)", err, path)
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := CreateSQLMigration(t.TempDir(), "   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
