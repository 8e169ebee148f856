package product

import (
	"testing"

	"github.com/Viniciusgrn/forFunOrganizado/pkg/db/models"
	"github.com/stretchr/testify/require"
)

func TestNewProductDTOCopiesMedia(t *testing.T) {
	model := &models.Product{
		ID:    3,
		Name:  "Lamp",
		Price: "5.00",
		Media: []models.Media{
			{ID: 11, FilePath: "/uploads/b.png", MediaType: models.MediaTypeImage, IsMain: true},
			{ID: 10, FilePath: "/uploads/a.png", MediaType: models.MediaTypeImage},
		},
	}

	dto := NewProductDTO(model)
	require.Equal(t, uint(3), dto.ID)
	require.Len(t, dto.Media, 2)
	require.True(t, dto.Media[0].IsMain)

	// The DTO must not alias the model's backing array.
	dto.Media[0].FilePath = "mutated"
	require.Equal(t, "/uploads/b.png", model.Media[0].FilePath)
}

func TestNewProductDTOsKeepsEmptyMediaSlice(t *testing.T) {
	dtos := NewProductDTOs([]models.Product{{ID: 1, Name: "Bare", Price: "1.00"}})
	require.Len(t, dtos, 1)
	require.NotNil(t, dtos[0].Media)
	require.Empty(t, dtos[0].Media)
}
