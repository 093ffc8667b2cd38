package ratelimit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	l := New(0.001, 2)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := l.Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chatbot", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1236"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1234"))
}

func TestCleanup(t *testing.T) {
	l := New(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.visitor("a")
	now = now.Add(time.Minute)
	l.visitor("b")
	now = now.Add(150 * time.Second)

	assert.Equal(t, 1, l.Cleanup())
	assert.Len(t, l.visitors, 1)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:80"
	assert.Equal(t, "::1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
