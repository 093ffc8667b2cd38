package response

import (
	"errors"
	"net/http"
	"strings"

	"SmartShop/entity"

	"github.com/go-chi/render"
)

// StatusFor maps the entity error taxonomy to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInsufficientStock), errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the text shown to the client. Internal errors never
// leak their details, fallback is used instead.
func MessageFor(err error, fallback string) string {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	for _, sentinel := range []error{entity.ErrAuthorization, entity.ErrNotFound} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
		}
	}
	if StatusFor(err) < http.StatusInternalServerError {
		return err.Error()
	}
	return fallback
}

// Fail renders err as a JSON error envelope and returns the status used.
func Fail(w http.ResponseWriter, r *http.Request, err error, fallback string) int {
	status := StatusFor(err)
	render.Status(r, status)
	render.JSON(w, r, Error(MessageFor(err, fallback)))
	return status
}
