package product

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/cont"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const imageField = "image"

// multipart overhead allowed on top of the image itself
const formOverhead = 1 << 20

// parseForm reads the product fields and the optional image of a multipart
// request. The caller closes the returned closer when it is not nil.
func parseForm(r *http.Request, maxSize int64) (*entity.ProductInput, *entity.ImageUpload, func(), error) {
	if err := r.ParseMultipartForm(maxSize + formOverhead); err != nil {
		return nil, nil, nil, entity.NewValidationError("Invalid product form")
	}
	input, err := entity.ParseProductInput(
		r.FormValue("name"),
		r.FormValue("description"),
		r.FormValue("price"),
		r.FormValue("category"),
		r.FormValue("stock_quantity"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, entity.NewValidationError("Invalid image upload")
	}
	if header.Filename == "" {
		file.Close()
		return input, nil, nil, nil
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(header.Filename)))
	}

	upload := &entity.ImageUpload{
		Filename: header.Filename,
		MIMEType: mimeType,
		Size:     header.Size,
		Reader:   file,
	}
	return input, upload, func() { file.Close() }, nil
}

func SellerList(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := handler.SellerProducts(r.Context(), cont.GetUser(r.Context()))
		if err != nil {
			if response.Fail(w, r, err, "Failed to load products") >= http.StatusInternalServerError {
				log.With(
					sl.Module("http.handlers.product"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				).Error("seller products", sl.Err(err))
			}
			return
		}
		render.JSON(w, r, response.Ok(products))
	}
}

func Create(log *slog.Logger, handler Core, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seller := cont.GetUser(r.Context())
		logger := log.With(
			sl.Module("http.handlers.product"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		input, upload, closeFile, err := parseForm(r, maxSize)
		if err != nil {
			response.Fail(w, r, err, "Invalid product form")
			return
		}
		if closeFile != nil {
			defer closeFile()
		}

		product, err := handler.CreateProduct(r.Context(), seller, input, upload)
		if err != nil {
			if response.Fail(w, r, err, "Failed to add product") >= http.StatusInternalServerError {
				logger.Error("create product", sl.Err(err))
			}
			return
		}

		logger.With(slog.String("product", product.ID)).Info("product added")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Response{Data: product, Success: true, Message: "Product added successfully!"})
	}
}

func Update(log *slog.Logger, handler Core, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.product"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("product", id),
		)

		input, upload, closeFile, err := parseForm(r, maxSize)
		if err != nil {
			response.Fail(w, r, err, "Invalid product form")
			return
		}
		if closeFile != nil {
			defer closeFile()
		}

		product, err := handler.UpdateProduct(r.Context(), cont.GetUser(r.Context()), id, input, upload)
		if err != nil {
			if response.Fail(w, r, err, "Failed to update product") >= http.StatusInternalServerError {
				logger.Error("update product", sl.Err(err))
			}
			return
		}

		logger.Info("product updated")
		render.JSON(w, r, response.Response{Data: product, Success: true, Message: "Product updated successfully!"})
	}
}

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.product"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("product", id),
		)

		if err := handler.DeleteProduct(r.Context(), cont.GetUser(r.Context()), id); err != nil {
			if response.Fail(w, r, err, "Failed to delete product") >= http.StatusInternalServerError {
				logger.Error("delete product", sl.Err(err))
			}
			return
		}

		logger.Info("product deleted")
		render.JSON(w, r, response.Message("Product deleted successfully!"))
	}
}
