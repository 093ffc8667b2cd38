package product

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Image streams a stored product image. Links are signed and expire.
func Image(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.product"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "image_id")
		q := r.URL.Query()

		filename, mimeType, reader, err := handler.ProductImage(r.Context(), id, q.Get("expires"), q.Get("sig"))
		if err != nil {
			logger.Debug("image", slog.String("image", id), sl.Err(err))
			response.Fail(w, r, err, "Failed to load image")
			return
		}
		defer reader.Close()

		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", mimeType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
		w.Header().Set("Cache-Control", "private, max-age=3600")

		if _, err = io.Copy(w, reader); err != nil {
			logger.Warn("stream image", slog.String("image", id), sl.Err(err))
		}
	}
}
