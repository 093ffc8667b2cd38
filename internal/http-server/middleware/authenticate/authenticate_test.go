package authenticate

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/cont"

	"github.com/stretchr/testify/assert"
)

type tokens map[string]*entity.UserAuth

func (t tokens) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, errors.New("invalid token")
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := tokens{"good": {ID: "u1", Username: "ann", Role: entity.SellerRole}}

	var seen *entity.UserAuth
	h := New(log, auth)(RequireRole(entity.SellerRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = cont.GetUser(r.Context())
	})))

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Token good", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/orders", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, c.status, rec.Code, c.header)
	}
	if assert.NotNil(t, seen) {
		assert.Equal(t, "u1", seen.ID)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(entity.SellerRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(cont.PutUser(req.Context(), &entity.UserAuth{ID: "c1", Role: entity.ClientRole}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
