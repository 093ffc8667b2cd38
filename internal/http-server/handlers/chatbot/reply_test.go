package chatbot

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/cont"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCore struct {
	session string
	req     *entity.ChatbotRequest
	answer  *entity.ChatbotResponse
	err     error
}

func (f *fakeCore) ChatbotAnswer(sessionID string, req *entity.ChatbotRequest) (*entity.ChatbotResponse, error) {
	f.session = sessionID
	f.req = req
	return f.answer, f.err
}

func (f *fakeCore) ChatbotButtons() map[string]string {
	return map[string]string{"shipping": "Shipping Info"}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chatbot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(cont.PutSession(req.Context(), "sess-1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReply(t *testing.T) {
	core := &fakeCore{answer: &entity.ChatbotResponse{Response: "Hi there"}}
	rec := post(Reply(discard(), core), `{"message":"hello","button_id":"x"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response":"Hi there"}`, rec.Body.String())
	assert.Equal(t, "sess-1", core.session)
	require.NotNil(t, core.req)
	assert.Equal(t, "hello", core.req.Message)
	assert.Equal(t, "x", core.req.ButtonId)
}

func TestReplyEscalation(t *testing.T) {
	core := &fakeCore{answer: &entity.ChatbotResponse{Response: "ask support", NeedsInfo: true, OriginalQuestion: "why?"}}
	rec := post(Reply(discard(), core), `{"message":"why?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response":"ask support","needs_info":true,"original_question":"why?"}`, rec.Body.String())
}

func TestReplyEmptyBody(t *testing.T) {
	core := &fakeCore{answer: &entity.ChatbotResponse{Response: "prompt"}}
	rec := post(Reply(discard(), core), ``)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", core.req.Message)
}

func TestReplyErrors(t *testing.T) {
	rec := post(Reply(discard(), &fakeCore{}), `{"message":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(Reply(discard(), &fakeCore{err: errors.New("boom")}), `{"message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestButtons(t *testing.T) {
	rec := httptest.NewRecorder()
	Buttons(discard(), &fakeCore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chatbot/buttons", nil))
	assert.JSONEq(t, `{"shipping":"Shipping Info"}`, rec.Body.String())
}
