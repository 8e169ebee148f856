package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/Viniciusgrn/forFunOrganizado/internal/media"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	pkgerrors "github.com/Viniciusgrn/forFunOrganizado/pkg/errors"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// MaxUploads caps the media files accepted on product creation.
const MaxUploads = 5

// Service exposes catalog management and engagement tracking.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*CreateResult, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) error
	SetFeatured(ctx context.Context, id uint, featured bool) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]ProductDTO, error)
	ListFeatured(ctx context.Context) ([]ProductDTO, error)
	RecordView(ctx context.Context, id uint) error
	RecordClick(ctx context.Context, id uint) error
}

// UploadInput describes one received file awaiting registration.
type UploadInput struct {
	TempPath     string
	OriginalName string
	MimeType     string
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Price       string
	Description string
	ShopeeLink  string
	Uploads     []UploadInput
}

// UpdateProductInput rewrites the editable product fields as a whole.
type UpdateProductInput struct {
	Name        string
	Price       string
	Description string
	ShopeeLink  string
}

type mediaStore interface {
	Insert(ctx context.Context, row *models.Media) (*models.Media, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.Media, error)
}

type uploadStore interface {
	Save(ctx context.Context, tempPath, originalName string) (string, error)
	Remove(ctx context.Context, servedPath string) error
	Discard(ctx context.Context, tempPath string) error
}

// service implements the catalog service.
type service struct {
	repo      *Repository
	mediaRepo mediaStore
	store     uploadStore
	dbClient  *db.Client
	logg      *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, mediaRepo mediaStore, store uploadStore, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if mediaRepo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("upload store required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, mediaRepo: mediaRepo, store: store, dbClient: dbClient, logg: logg}, nil
}

// Create runs the two-phase creation workflow: persist the files first, then
// the product row, then the media rows. The first upload becomes the main
// media. Media-row failures after the product row exists leave the product in
// place and surface as a partial failure.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*CreateResult, error) {
	if err := validateCreateInput(input); err != nil {
		s.discardUploads(ctx, input.Uploads)
		return nil, err
	}

	saved, err := s.storeUploads(ctx, input.Uploads)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Price:       strings.TrimSpace(input.Price),
		Description: input.Description,
		ShopeeLink:  strings.TrimSpace(input.ShopeeLink),
	})
	if err != nil {
		s.removeFiles(ctx, saved)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	ctx = s.logg.WithProductID(ctx, created.ID)

	inserted := 0
	for i, servedPath := range saved {
		row := &models.Media{
			ProductID: created.ID,
			FilePath:  servedPath,
			MediaType: media.TypeForMime(input.Uploads[i].MimeType),
			IsMain:    i == 0,
		}
		if _, err := s.mediaRepo.Insert(ctx, row); err != nil {
			s.logg.Error(ctx, "media row insert failed after product creation", err)
			return nil, pkgerrors.Wrap(pkgerrors.CodePartial, err, "product created but media registration failed").
				WithDetails(map[string]any{
					"productId":  created.ID,
					"mediaSaved": inserted,
				})
		}
		inserted++
	}

	return &CreateResult{ProductID: created.ID, MediaCount: inserted}, nil
}

// Update rewrites the editable fields of an existing product.
func (s *service) Update(ctx context.Context, id uint, input UpdateProductInput) error {
	name := strings.TrimSpace(input.Name)
	price := strings.TrimSpace(input.Price)
	if name == "" || price == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name and price are required")
	}

	err := s.repo.UpdateDetails(ctx, id, name, price, input.Description, strings.TrimSpace(input.ShopeeLink))
	if err != nil {
		if IsNotFoundErr(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return nil
}

// SetFeatured flips the homepage highlight flag.
func (s *service) SetFeatured(ctx context.Context, id uint, featured bool) error {
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		if IsNotFoundErr(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set featured flag")
	}
	return nil
}

// Delete removes the product row and then sweeps its files from disk. File
// removal is compensation, not part of the transaction: once the row is gone
// the delete has succeeded, and leftover files are only logged.
func (s *service) Delete(ctx context.Context, id uint) error {
	ctx = s.logg.WithProductID(ctx, id)

	rows, err := s.mediaRepo.ListByProduct(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media before delete")
	}

	// Product row first, then its media rows, one transaction. The explicit
	// media delete keeps the rows removable when the FK cascade is not
	// enabled, and the shared transaction means a failure on either side
	// rolls back the other instead of stranding a product with no media.
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			if IsNotFoundErr(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
		}
		if err := media.NewRepository(tx).DeleteByProduct(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product media")
		}
		return nil
	})
	if err != nil {
		return err
	}

	var sweepErr error
	for _, row := range rows {
		if err := s.store.Remove(ctx, row.FilePath); err != nil {
			sweepErr = multierr.Append(sweepErr, err)
		}
	}
	if sweepErr != nil {
		s.logg.Error(ctx, "media files left behind after product delete", sweepErr)
	}
	return nil
}

// ListAll returns the full catalog with ordered media.
func (s *service) ListAll(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewProductDTOs(rows), nil
}

// ListFeatured returns the featured subset with ordered media.
func (s *service) ListFeatured(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return NewProductDTOs(rows), nil
}

// RecordView bumps the product view counter.
func (s *service) RecordView(ctx context.Context, id uint) error {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		if IsNotFoundErr(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment views")
	}
	return nil
}

// RecordClick bumps the outbound link counter.
func (s *service) RecordClick(ctx context.Context, id uint) error {
	if err := s.repo.IncrementClicks(ctx, id); err != nil {
		if IsNotFoundErr(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment clicks")
	}
	return nil
}

// storeUploads persists every temp file into the store. Any failure rolls the
// batch back: already-stored files are removed, untouched temps discarded.
func (s *service) storeUploads(ctx context.Context, uploads []UploadInput) ([]string, error) {
	saved := make([]string, 0, len(uploads))
	for i, upload := range uploads {
		servedPath, err := s.store.Save(ctx, upload.TempPath, upload.OriginalName)
		if err != nil {
			s.removeFiles(ctx, saved)
			s.discardUploads(ctx, uploads[i+1:])
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store upload")
		}
		saved = append(saved, servedPath)
	}
	return saved, nil
}

func (s *service) removeFiles(ctx context.Context, servedPaths []string) {
	var sweepErr error
	for _, servedPath := range servedPaths {
		if err := s.store.Remove(ctx, servedPath); err != nil {
			sweepErr = multierr.Append(sweepErr, err)
		}
	}
	if sweepErr != nil {
		s.logg.Error(ctx, "upload rollback left files behind", sweepErr)
	}
}

func (s *service) discardUploads(ctx context.Context, uploads []UploadInput) {
	for _, upload := range uploads {
		if err := s.store.Discard(ctx, upload.TempPath); err != nil {
			s.logg.Warn(ctx, "temp upload not discarded")
		}
	}
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Price) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name and price are required")
	}
	if len(input.Uploads) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one media file is required")
	}
	if len(input.Uploads) > MaxUploads {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("at most %d media files are allowed", MaxUploads))
	}
	return nil
}
