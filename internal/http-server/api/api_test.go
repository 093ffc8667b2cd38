package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SmartShop/entity"
	"SmartShop/impl/core"
	"SmartShop/internal/config"
	"SmartShop/internal/database/memory"
	"SmartShop/internal/http-server/middleware/session"
	"SmartShop/internal/http-server/middleware/supportkey"
	"SmartShop/internal/service/auth"
	"SmartShop/internal/service/cart"
	"SmartShop/internal/service/chatbot"
	"SmartShop/internal/service/order"
	"SmartShop/internal/service/product"
	"SmartShop/internal/service/support"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router http.Handler
	tokens *auth.TokenManager
}

func testConfig() *config.Config {
	conf := &config.Config{Env: "local"}
	conf.Chatbot.RateLimit = 100
	conf.Chatbot.RateBurst = 100
	conf.Chatbot.SessionIdleMinutes = 30
	conf.Auth.SupportKey = "support-secret"
	conf.Listen.AllowedOrigins = "*"
	conf.Upload.MaxSize = 1 << 20
	return conf
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	require.NoError(t, store.SaveProduct(context.Background(), &entity.Product{
		ID: "p1", Name: "Kettle", Category: "Kitchen", Price: 25, SellerID: "s1", StockQuantity: 3,
	}))

	authService := auth.NewAuthService(store, nil, auth.Options{Secret: "api-secret"}, log)
	carts := cart.NewCartService(store, store, log)

	handler := core.New(chatbot.NewRegistry(chatbot.DefaultRuleSet(), time.Minute), log)
	handler.SetAuthService(authService)
	handler.SetProductService(product.NewProductService(store, store, product.Options{URLSecret: "x", URLTTL: time.Hour}, log))
	handler.SetCartService(carts)
	handler.SetOrderService(order.NewOrderService(store, carts, false, log))
	handler.SetSupportService(support.NewSupportService(store, nil, "", "", log))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &fixture{
		router: NewRouter(ctx, testConfig(), log, handler, nil),
		tokens: authService.Tokens(),
	}
}

func (f *fixture) token(t *testing.T, id, role string) string {
	t.Helper()
	token, err := f.tokens.Issue(id, auth.PurposeAccess, time.Hour, auth.Claims{Role: role, Name: id})
	require.NoError(t, err)
	return token
}

func (f *fixture) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/chatbot", `{"message":"hello"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"response"`)

	rec = f.do(http.MethodGet, "/api/v1/chatbot/buttons", "", nil)
	assert.Contains(t, rec.Body.String(), `"faq"`)

	rec = f.do(http.MethodGet, "/api/v1/products?category=Kitchen", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kettle")

	rec = f.do(http.MethodGet, "/api/v1/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodDelete, "/api/v1/chatbot/buttons", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCartSessionCookie(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/cart/p1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)

	rec = f.do(http.MethodGet, "/api/v1/cart", "", map[string]string{"Cookie": cookies[0].Name + "=" + cookies[0].Value})
	assert.Contains(t, rec.Body.String(), `"product_id":"p1"`)

	rec = f.do(http.MethodGet, "/api/v1/cart", "", nil)
	assert.NotContains(t, rec.Body.String(), "p1")
}

func TestProtectedRoutes(t *testing.T) {
	f := newFixture(t)
	bearer := func(token string) map[string]string {
		return map[string]string{"Authorization": "Bearer " + token}
	}

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/orders", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/user/me", "", nil).Code)

	client := f.token(t, "u1", entity.ClientRole)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/orders", "", bearer(client)).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/seller/orders", "", bearer(client)).Code)

	seller := f.token(t, "s1", entity.SellerRole)
	rec := f.do(http.MethodGet, "/api/v1/seller/products", "", bearer(seller))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kettle")
}

func TestSupportRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/support/questions", `{"email":"a@b.co","phone":"+1 555 123 4567","question":"Gift wrap?"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/support/questions", "", nil).Code)

	rec = f.do(http.MethodGet, "/api/v1/support/questions?status=Pending", "", map[string]string{supportkey.Header: "support-secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gift wrap?")
}
