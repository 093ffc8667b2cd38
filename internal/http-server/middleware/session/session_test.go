package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SmartShop/internal/lib/api/cont"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var got string
	h := New(time.Hour, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = cont.GetSession(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, got)

	// the issued cookie is reused
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, cookies[0].Value, got)

	// a forged value is replaced
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "../../etc", got)
}
