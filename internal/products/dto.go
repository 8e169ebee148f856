package product

import (
	"time"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
)

// ProductDTO represents the catalog product payload returned to clients.
type ProductDTO struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Price        string     `json:"price"`
	Description  string     `json:"description"`
	ShopeeLink   string     `json:"shopee_link"`
	ViewsCount   int64      `json:"views_count"`
	ShopeeClicks int64      `json:"shopee_clicks"`
	IsFeatured   bool       `json:"is_featured"`
	Media        []MediaDTO `json:"media"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MediaDTO captures one stored media item in display order.
type MediaDTO struct {
	ID        uint   `json:"id"`
	FilePath  string `json:"file_path"`
	MediaType string `json:"media_type"`
	IsMain    bool   `json:"is_main"`
}

// CreateResult reports the outcome of the creation workflow.
type CreateResult struct {
	ProductID  uint `json:"productId"`
	MediaCount int  `json:"mediaCount"`
}

// NewProductDTO builds a DTO from the persisted model. The media slice is
// expected preloaded in display order; it is copied, never aliased.
func NewProductDTO(product *models.Product) *ProductDTO {
	media := make([]MediaDTO, 0, len(product.Media))
	for _, row := range product.Media {
		media = append(media, MediaDTO{
			ID:        row.ID,
			FilePath:  row.FilePath,
			MediaType: row.MediaType,
			IsMain:    row.IsMain,
		})
	}
	return &ProductDTO{
		ID:           product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Description:  product.Description,
		ShopeeLink:   product.ShopeeLink,
		ViewsCount:   product.ViewsCount,
		ShopeeClicks: product.ShopeeClicks,
		IsFeatured:   product.IsFeatured,
		Media:        media,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

// NewProductDTOs maps a listing query result.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}
