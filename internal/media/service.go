package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/db"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	pkgerrors "github.com/Viniciusgrn/forFunOrganizado/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes media listing and main-media selection.
type Service interface {
	ListByProduct(ctx context.Context, productID uint) ([]models.Media, error)
	SetMain(ctx context.Context, mediaID uint) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a media service backed by the shared DB client.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListByProduct returns the ordered media sequence for a product.
func (s *service) ListByProduct(ctx context.Context, productID uint) ([]models.Media, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	return rows, nil
}

// SetMain promotes mediaID to its product's single main item. Clear-then-set
// runs inside one transaction so a crash cannot strand a product with zero
// or two main rows.
func (s *service) SetMain(ctx context.Context, mediaID uint) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row, err := txRepo.FindByID(ctx, mediaID)
		if err != nil {
			if IsNotFoundErr(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
		}

		if err := txRepo.ClearMain(ctx, row.ProductID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear main media")
		}
		if err := txRepo.MarkMain(ctx, mediaID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark main media")
		}
		return nil
	})
	return err
}

// TypeForMime derives the stored media type from a declared MIME type.
func TypeForMime(mimeType string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "video") {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}
