package media

import (
	"context"
	"errors"

	"github.com/Viniciusgrn/forFunOrganizado/internal/repo"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes media row persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a media repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// ListByProduct returns the product's media ordered main-first, then by
// ascending id. Unknown products yield an empty slice, not an error.
func (r *Repository) ListByProduct(ctx context.Context, productID uint) ([]models.Media, error) {
	var rows []models.Media
	err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("is_main DESC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID retrieves a single media row.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Media, error) {
	var m models.Media
	if err := r.DB(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert appends one media row. One-main enforcement across a product's rows
// is the creation workflow's responsibility, not this method's.
func (r *Repository) Insert(ctx context.Context, row *models.Media) (*models.Media, error) {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteByProduct removes every media row owned by the product. The FK
// cascade covers product deletion; this explicit path keeps the rows
// removable when the cascade is unavailable.
func (r *Repository) DeleteByProduct(ctx context.Context, productID uint) error {
	return r.DB(ctx).Where("product_id = ?", productID).Delete(&models.Media{}).Error
}

// ClearMain resets is_main across the product's rows.
func (r *Repository) ClearMain(ctx context.Context, productID uint) error {
	return r.DB(ctx).
		Model(&models.Media{}).
		Where("product_id = ?", productID).
		Update("is_main", false).
		Error
}

// MarkMain flags a single row as the product's main media.
func (r *Repository) MarkMain(ctx context.Context, mediaID uint) error {
	res := r.DB(ctx).
		Model(&models.Media{}).
		Where("id = ?", mediaID).
		Update("is_main", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFoundErr reports whether err is the driver-level missing-row error.
func IsNotFoundErr(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
