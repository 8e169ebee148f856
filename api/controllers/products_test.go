package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	productsvc "github.com/Viniciusgrn/forFunOrganizado/internal/products"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	pkgerrors "github.com/Viniciusgrn/forFunOrganizado/pkg/errors"
	"github.com/go-chi/chi/v5"
)

type stubProductService struct {
	createInput  *productsvc.CreateProductInput
	createResult *productsvc.CreateResult
	createErr    error

	updated   map[uint]productsvc.UpdateProductInput
	featured  map[uint]bool
	deleted   []uint
	views     []uint
	clicks    []uint
	listErr   error
	viewErr   error
	notFound  bool
	listAll   []productsvc.ProductDTO
	listStars []productsvc.ProductDTO
}

func newStubProductService() *stubProductService {
	return &stubProductService{
		updated:  map[uint]productsvc.UpdateProductInput{},
		featured: map[uint]bool{},
	}
}

func (s *stubProductService) fail() error {
	if s.notFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *stubProductService) Create(_ context.Context, input productsvc.CreateProductInput) (*productsvc.CreateResult, error) {
	s.createInput = &input
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createResult != nil {
		return s.createResult, nil
	}
	return &productsvc.CreateResult{ProductID: 1, MediaCount: len(input.Uploads)}, nil
}

func (s *stubProductService) Update(_ context.Context, id uint, input productsvc.UpdateProductInput) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.updated[id] = input
	return nil
}

func (s *stubProductService) SetFeatured(_ context.Context, id uint, featured bool) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.featured[id] = featured
	return nil
}

func (s *stubProductService) Delete(_ context.Context, id uint) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProductService) ListAll(context.Context) ([]productsvc.ProductDTO, error) {
	return s.listAll, s.listErr
}

func (s *stubProductService) ListFeatured(context.Context) ([]productsvc.ProductDTO, error) {
	return s.listStars, s.listErr
}

func (s *stubProductService) RecordView(_ context.Context, id uint) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.views = append(s.views, id)
	return s.viewErr
}

func (s *stubProductService) RecordClick(_ context.Context, id uint) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.clicks = append(s.clicks, id)
	return nil
}

func testUploadsConfig() config.UploadsConfig {
	return config.UploadsConfig{Dir: "uploads", ServePrefix: "/uploads", MaxFiles: 5, MaxFileMB: 20}
}

func multipartBody(t *testing.T, fields map[string]string, fileCount int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for i := 0; i < fileCount; i++ {
		part, err := writer.CreateFormFile(mediaFilesField, fmt.Sprintf("photo-%d.png", i))
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("png-bytes")); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestCreateProductSpoolsFilesAndCallsService(t *testing.T) {
	svc := newStubProductService()
	handler := CreateProduct(svc, testUploadsConfig(), nil)

	body, contentType := multipartBody(t, map[string]string{
		"name":       "Ring Light",
		"price":      "49.90",
		"shopeeLink": "https://shopee.example/ring",
	}, 2)
	req := httptest.NewRequest("POST", "/api/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.createInput == nil {
		t.Fatal("service not called")
	}
	if svc.createInput.Name != "Ring Light" || len(svc.createInput.Uploads) != 2 {
		t.Fatalf("unexpected input: %+v", svc.createInput)
	}
	if svc.createInput.Uploads[0].OriginalName != "photo-0.png" {
		t.Fatalf("unexpected upload name: %+v", svc.createInput.Uploads[0])
	}
}

func TestCreateProductRejectsEmptyAndOverfullBatches(t *testing.T) {
	svc := newStubProductService()
	handler := CreateProduct(svc, testUploadsConfig(), nil)

	for _, fileCount := range []int{0, 6} {
		body, contentType := multipartBody(t, map[string]string{"name": "x", "price": "1"}, fileCount)
		req := httptest.NewRequest("POST", "/api/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("fileCount=%d: expected 400, got %d", fileCount, rec.Code)
		}
	}
	if svc.createInput != nil {
		t.Fatal("service must not be called for invalid batches")
	}
}

func withPathID(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestUpdateProductDecodesBody(t *testing.T) {
	svc := newStubProductService()
	handler := UpdateProduct(svc, nil)

	payload := `{"name":"Desk Lamp","price":"6.00","description":"","shopeeLink":"https://shopee.example/l"}`
	req := withPathID(httptest.NewRequest("PUT", "/api/products/4", strings.NewReader(payload)), "id", "4")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updated[4].Name != "Desk Lamp" {
		t.Fatalf("update not forwarded: %+v", svc.updated)
	}
}

func TestUpdateProductMissingRowIs404(t *testing.T) {
	svc := newStubProductService()
	svc.notFound = true
	handler := UpdateProduct(svc, nil)

	payload := `{"name":"a","price":"1"}`
	req := withPathID(httptest.NewRequest("PUT", "/api/products/9", strings.NewReader(payload)), "id", "9")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFeatureProductRequiresFlag(t *testing.T) {
	svc := newStubProductService()
	handler := FeatureProduct(svc, nil)

	req := withPathID(httptest.NewRequest("PUT", "/api/products/feature/2", strings.NewReader(`{}`)), "id", "2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing flag, got %d", rec.Code)
	}

	req = withPathID(httptest.NewRequest("PUT", "/api/products/feature/2", strings.NewReader(`{"is_featured":true}`)), "id", "2")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.featured[2] {
		t.Fatalf("flag not forwarded: %+v", svc.featured)
	}
}

func TestDeleteProductForwardsID(t *testing.T) {
	svc := newStubProductService()
	handler := DeleteProduct(svc, nil)

	req := withPathID(httptest.NewRequest("DELETE", "/api/products/3", nil), "id", "3")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != 3 {
		t.Fatalf("delete not forwarded: %v", svc.deleted)
	}
}

func TestListProductsWritesEnvelope(t *testing.T) {
	svc := newStubProductService()
	svc.listAll = []productsvc.ProductDTO{{ID: 1, Name: "Lamp"}}
	handler := ListProducts(svc, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data []productsvc.ProductDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Lamp" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}
