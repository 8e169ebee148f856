package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/Viniciusgrn/forFunOrganizado/api/responses"
	"github.com/Viniciusgrn/forFunOrganizado/api/validators"
	productsvc "github.com/Viniciusgrn/forFunOrganizado/internal/products"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	pkgerrors "github.com/Viniciusgrn/forFunOrganizado/pkg/errors"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
)

const mediaFilesField = "mediaFiles"

// multipartMemoryLimit is the in-memory threshold before form parts spill to
// disk, not the request size cap.
const multipartMemoryLimit = 32 << 20

// ListProducts returns the whole catalog with ordered media.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ListFeaturedProducts returns the featured subset for the homepage.
func ListFeaturedProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListFeatured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// CreateProduct handles the multipart creation request: text fields plus one
// to five files under the mediaFiles field.
func CreateProduct(svc productsvc.Service, uploadsCfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// One slot of slack so an oversize request fails with a clear
		// validation error instead of a socket reset mid-upload.
		limit := uploadsCfg.MaxFileBytes()*int64(uploadsCfg.MaxFiles+1) + multipartMemoryLimit
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := r.MultipartForm.File[mediaFilesField]
		if len(files) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "at least one media file is required"))
			return
		}
		if len(files) > uploadsCfg.MaxFiles {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "too many media files"))
			return
		}

		uploads, err := spoolUploads(files, uploadsCfg.MaxFileBytes())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.CreateProductInput{
			Name:        r.FormValue("name"),
			Price:       r.FormValue("price"),
			Description: r.FormValue("description"),
			ShopeeLink:  r.FormValue("shopeeLink"),
			Uploads:     uploads,
		}

		result, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type updateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Description string `json:"description"`
	ShopeeLink  string `json:"shopeeLink" validate:"omitempty,url"`
}

// UpdateProduct rewrites the editable fields of one product.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err = svc.Update(r.Context(), id, productsvc.UpdateProductInput{
			Name:        payload.Name,
			Price:       payload.Price,
			Description: payload.Description,
			ShopeeLink:  payload.ShopeeLink,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": id})
	}
}

type featureProductRequest struct {
	IsFeatured *bool `json:"is_featured" validate:"required"`
}

// FeatureProduct sets or clears the homepage highlight flag.
func FeatureProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload featureProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetFeatured(r.Context(), id, *payload.IsFeatured); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": id, "is_featured": *payload.IsFeatured})
	}
}

// DeleteProduct removes the product row and sweeps its files.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": id, "deleted": true})
	}
}

// spoolUploads copies each multipart part to a temp file so the service can
// move it into the store without holding the form open.
func spoolUploads(files []*multipart.FileHeader, maxFileBytes int64) ([]productsvc.UploadInput, error) {
	uploads := make([]productsvc.UploadInput, 0, len(files))

	cleanup := func() {
		for _, u := range uploads {
			os.Remove(u.TempPath)
		}
	}

	for _, header := range files {
		if maxFileBytes > 0 && header.Size > maxFileBytes {
			cleanup()
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "media file exceeds the size limit").
				WithDetails(map[string]any{"file": header.Filename})
		}

		part, err := header.Open()
		if err != nil {
			cleanup()
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open upload part")
		}

		tmp, err := os.CreateTemp("", "upload-*")
		if err != nil {
			part.Close()
			cleanup()
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "spool upload")
		}

		_, copyErr := io.Copy(tmp, part)
		part.Close()
		closeErr := tmp.Close()
		if copyErr != nil || closeErr != nil {
			os.Remove(tmp.Name())
			cleanup()
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, errors.Join(copyErr, closeErr), "spool upload")
		}

		uploads = append(uploads, productsvc.UploadInput{
			TempPath:     tmp.Name(),
			OriginalName: header.Filename,
			MimeType:     strings.TrimSpace(header.Header.Get("Content-Type")),
		})
	}
	return uploads, nil
}
