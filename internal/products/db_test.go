package product

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
)

// newTestClient opens a per-test in-memory SQLite database with the catalog
// schema applied. The DSN is derived from the test name so parallel tests
// never share state.
func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  shopee_link TEXT NOT NULL DEFAULT '',
  views_count INTEGER NOT NULL DEFAULT 0,
  shopee_clicks INTEGER NOT NULL DEFAULT 0,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS media (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  file_path TEXT NOT NULL,
  media_type TEXT NOT NULL,
  is_main INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	}
	for _, stmt := range schema {
		if err := client.DB().Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return client
}

func mustCreateProduct(t *testing.T, client *db.Client, p *models.Product) *models.Product {
	t.Helper()
	if err := client.DB().Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func mustInsertMedia(t *testing.T, client *db.Client, m *models.Media) *models.Media {
	t.Helper()
	if err := client.DB().Create(m).Error; err != nil {
		t.Fatalf("insert media: %v", err)
	}
	return m
}
