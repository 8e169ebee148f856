package media

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

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
  product_id INTEGER NOT NULL,
  file_path TEXT NOT NULL,
  media_type TEXT NOT NULL,
  is_main INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func mustCreateProduct(t *testing.T, conn *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{Name: "Lamp", Price: "19.90"}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustInsertMedia(t *testing.T, conn *gorm.DB, productID uint, path string, isMain bool) *models.Media {
	t.Helper()
	row := &models.Media{
		ProductID: productID,
		FilePath:  path,
		MediaType: models.MediaTypeImage,
		IsMain:    isMain,
	}
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("insert media: %v", err)
	}
	return row
}
