package product

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"SmartShop/entity"
	"SmartShop/internal/database/memory"
	"SmartShop/internal/lib/api/cont"
	productservice "SmartShop/internal/service/product"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// core adapts the product service to the handler interface.
type core struct {
	*productservice.Service
}

func (c core) ListProducts(ctx context.Context, f entity.ProductFilter) ([]entity.Product, error) {
	return c.List(ctx, f)
}

func (c core) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return c.Get(ctx, id)
}

func (c core) ProductImage(ctx context.Context, id, expires, sig string) (string, string, io.ReadCloser, error) {
	return c.Image(ctx, id, expires, sig)
}

func (c core) SellerProducts(ctx context.Context, seller *entity.UserAuth) ([]entity.Product, error) {
	return c.ListForSeller(ctx, seller)
}

func (c core) CreateProduct(ctx context.Context, seller *entity.UserAuth, in *entity.ProductInput, up *entity.ImageUpload) (*entity.Product, error) {
	return c.Create(ctx, seller, in, up)
}

func (c core) UpdateProduct(ctx context.Context, seller *entity.UserAuth, id string, in *entity.ProductInput, up *entity.ImageUpload) (*entity.Product, error) {
	return c.Update(ctx, seller, id, in, up)
}

func (c core) DeleteProduct(ctx context.Context, seller *entity.UserAuth, id string) error {
	return c.Delete(ctx, seller, id)
}

const maxSize = 4096

var (
	seller = &entity.UserAuth{ID: "s1", Role: entity.SellerRole}
	client = &entity.UserAuth{ID: "u1", Role: entity.ClientRole}
)

func newRouter() chi.Router {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	h := core{productservice.NewProductService(store, store, productservice.Options{
		AllowedExtensions: []string{"png", "jpg"},
		MaxSize:           maxSize,
		URLSecret:         "secret",
		URLTTL:            time.Hour,
	}, log)}

	r := chi.NewRouter()
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/products", List(log, h))
		v1.Get("/products/categories", Categories(log, h))
		v1.Get("/products/{id}", Get(log, h))
		v1.Get("/products/images/{image_id}", Image(log, h))
		v1.Get("/seller/products", SellerList(log, h))
		v1.Post("/seller/products", Create(log, h, maxSize))
		v1.Put("/seller/products/{id}", Update(log, h, maxSize))
		v1.Delete("/seller/products/{id}", Delete(log, h))
	})
	return r
}

func form(t *testing.T, fields map[string]string, filename string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func kettle() map[string]string {
	return map[string]string{
		"name":           "Kettle",
		"description":    "Steel kettle",
		"price":          "25.50",
		"category":       "Kitchen",
		"stock_quantity": "3",
	}
}

func serve(r chi.Router, req *http.Request, user *entity.UserAuth) *httptest.ResponseRecorder {
	if user != nil {
		req = req.WithContext(cont.PutUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if v != nil {
		require.NoError(t, json.Unmarshal(env.Data, v))
	}
	return env
}

func create(t *testing.T, r chi.Router) entity.Product {
	t.Helper()
	body, ct := form(t, kettle(), "kettle.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/products", body)
	req.Header.Set("Content-Type", ct)
	rec := serve(r, req, seller)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var p entity.Product
	decode(t, rec, &p)
	return p
}

func TestCreateListAndImage(t *testing.T) {
	r := newRouter()
	p := create(t, r)
	assert.Equal(t, "Kettle", p.Name)
	require.NotEmpty(t, p.ImageURL)

	var list []entity.Product
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products?q=KETTLE&stock=in&min_price=abc", nil), nil)
	decode(t, rec, &list)
	assert.Len(t, list, 1)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products?stock=out", nil), nil)
	decode(t, rec, &list)
	assert.Empty(t, list)

	var categories []string
	decode(t, serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products/categories", nil), nil), &categories)
	assert.Equal(t, []string{"Kitchen"}, categories)

	u, err := url.Parse(p.ImageURL)
	require.NoError(t, err)
	rec = serve(r, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = serve(r, httptest.NewRequest(http.MethodGet, u.Path+"?expires=1&sig=bad", nil), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateRejected(t *testing.T) {
	r := newRouter()

	body, ct := form(t, kettle(), "kettle.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/seller/products", body)
	req.Header.Set("Content-Type", ct)
	assert.Equal(t, http.StatusForbidden, serve(r, req, client).Code)

	body, ct = form(t, kettle(), "kettle.exe", []byte("x"))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/seller/products", body)
	req.Header.Set("Content-Type", ct)
	rec := serve(r, req, seller)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File type not allowed", decode(t, rec, nil).Error)

	fields := kettle()
	fields["price"] = "free"
	body, ct = form(t, fields, "", nil)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/seller/products", body)
	req.Header.Set("Content-Type", ct)
	assert.Equal(t, http.StatusBadRequest, serve(r, req, seller).Code)

	body, ct = form(t, kettle(), "big.png", bytes.Repeat([]byte("x"), maxSize+10))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/seller/products", body)
	req.Header.Set("Content-Type", ct)
	assert.Equal(t, http.StatusBadRequest, serve(r, req, seller).Code)
}

func TestUpdateAndDelete(t *testing.T) {
	r := newRouter()
	p := create(t, r)

	fields := kettle()
	fields["price"] = "30"
	body, ct := form(t, fields, "", nil)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/seller/products/"+p.ID, body)
	req.Header.Set("Content-Type", ct)
	rec := serve(r, req, seller)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated entity.Product
	decode(t, rec, &updated)
	assert.InDelta(t, 30.0, updated.Price, 0.001)
	assert.Equal(t, p.ImageID, updated.ImageID)

	rival := &entity.UserAuth{ID: "s2", Role: entity.SellerRole}
	rec = serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/seller/products/"+p.ID, nil), rival)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var mine []entity.Product
	decode(t, serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/seller/products", nil), seller), &mine)
	assert.Len(t, mine, 1)

	rec = serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/seller/products/"+p.ID, nil), seller)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+p.ID, nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
