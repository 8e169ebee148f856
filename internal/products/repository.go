package product

import (
	"context"
	"errors"

	"github.com/Viniciusgrn/forFunOrganizado/internal/repo"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes catalog persistence operations for products.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// orderedMedia keeps the per-product media sequence stable: the main item
// first, then insertion order.
func orderedMedia(db *gorm.DB) *gorm.DB {
	return db.Order("is_main DESC, id ASC")
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateDetails rewrites the four editable columns. A missing product
// surfaces as gorm.ErrRecordNotFound rather than a silent no-op.
func (r *Repository) UpdateDetails(ctx context.Context, id uint, name, price, description, shopeeLink string) error {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"price":       price,
			"description": description,
			"shopee_link": shopeeLink,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetFeatured flips the featured flag on a single product.
func (r *Repository) SetFeatured(ctx context.Context, id uint, featured bool) error {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the product row; the FK cascade takes the media rows with it.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews bumps the view counter in a single statement so concurrent
// hits never lose updates.
func (r *Repository) IncrementViews(ctx context.Context, id uint) error {
	return r.incrementCounter(ctx, id, "views_count")
}

// IncrementClicks bumps the outbound click counter.
func (r *Repository) IncrementClicks(ctx context.Context, id uint) error {
	return r.incrementCounter(ctx, id, "shopee_clicks")
}

func (r *Repository) incrementCounter(ctx context.Context, id uint, column string) error {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAll returns every product with its media preloaded in display order.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.DB(ctx).
		Preload("Media", orderedMedia).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListFeatured returns the featured subset with media preloaded.
func (r *Repository) ListFeatured(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.DB(ctx).
		Preload("Media", orderedMedia).
		Where("is_featured = ?", true).
		Order("id ASC").
		Find(&rows).
		Error
	return rows, err
}

// IsNotFoundErr reports whether err is the driver-level missing-row error.
func IsNotFoundErr(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
