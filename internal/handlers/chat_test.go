package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visionchat/internal/models"
	"visionchat/internal/services"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return "groq"
}

func (m *mockProvider) Complete(ctx context.Context, prompt services.Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newChatHandler(p *mockProvider) *ChatHandler {
	return NewChatHandler(p, zap.NewNop().Sugar())
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func TestChat_Success(t *testing.T) {
	p := new(mockProvider)
	p.On("Complete", mock.Anything, services.Prompt{Text: "hello"}).Return("Hi! How can I help?", nil)

	rr := postChat(t, newChatHandler(p), `{"text":"hello"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decodeBody(t, rr)
	assert.Len(t, body, 1)
	assert.Equal(t, "Hi! How can I help?", body["text"])
	p.AssertExpectations(t)
}

func TestChat_ImageOnlyUsesDefaultPrompt(t *testing.T) {
	image := "data:image/png;base64,AAAA"
	p := new(mockProvider)
	p.On("Complete", mock.Anything, services.Prompt{Text: services.DefaultPrompt, ImageURL: image}).Return("A tiny image.", nil)

	rr := postChat(t, newChatHandler(p), `{"text":"","image":"`+image+`"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	p.AssertExpectations(t)
}

func TestChat_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		check      func(t *testing.T, msg string)
	}{
		{
			name:       "rate limited",
			err:        &services.UpstreamError{Provider: "groq", StatusCode: 429, Message: "Rate limit reached"},
			wantStatus: http.StatusTooManyRequests,
			check: func(t *testing.T, msg string) {
				lower := strings.ToLower(msg)
				assert.Contains(t, lower, "busy")
				assert.Contains(t, lower, "wait")
				assert.Contains(t, lower, "try again")
			},
		},
		{
			name:       "bad request",
			err:        &services.UpstreamError{Provider: "groq", StatusCode: 400, Message: "invalid image"},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, msg string) {
				assert.Equal(t, "Bad Request: invalid image", msg)
			},
		},
		{
			name:       "unauthorized keeps status",
			err:        &services.UpstreamError{Provider: "groq", StatusCode: 401, Message: "Invalid API Key"},
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, msg string) {
				assert.Equal(t, msgAIFailed, msg)
			},
		},
		{
			name:       "unreachable upstream",
			err:        &services.UpstreamError{Provider: "groq", Message: "dial tcp: connection refused"},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, msg string) {
				assert.Equal(t, msgAIFailed, msg)
			},
		},
		{
			name:       "unclassified error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, msg string) {
				assert.Equal(t, msgAIFailed, msg)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := new(mockProvider)
			p.On("Complete", mock.Anything, mock.Anything).Return("", tc.err)

			rr := postChat(t, newChatHandler(p), `{"text":"hello"}`)

			assert.Equal(t, tc.wantStatus, rr.Code)
			body := decodeBody(t, rr)
			assert.Len(t, body, 1)
			msg, ok := body["error"].(string)
			require.True(t, ok)
			tc.check(t, msg)
		})
	}
}

func TestChat_InvalidJSON(t *testing.T) {
	p := new(mockProvider)

	rr := postChat(t, newChatHandler(p), `{"text":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rr)["error"])
	p.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestChat_BodyTooLarge(t *testing.T) {
	p := new(mockProvider)
	h := newChatHandler(p)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"text":"`+strings.Repeat("a", 64)+`"}`))
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 16)
	h.Chat(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	p.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestMapUpstreamError(t *testing.T) {
	tests := []struct {
		status     int
		wantStatus int
	}{
		{429, 429},
		{400, 400},
		{401, 401},
		{503, 503},
		{0, 500},
		{200, 500},
		{999, 500},
	}

	for _, tc := range tests {
		status, _ := mapUpstreamError(&services.UpstreamError{StatusCode: tc.status, Message: "m"})
		assert.Equal(t, tc.wantStatus, status, "upstream status %d", tc.status)
	}
}

func TestBodyPreview(t *testing.T) {
	short := bodyPreview(models.ChatRequest{Text: "hi"})
	assert.Equal(t, `{"text":"hi"}`, short)

	long := bodyPreview(models.ChatRequest{Text: "hi", Image: "data:image/png;base64," + strings.Repeat("A", 5000)})
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.Len(t, long, bodyPreviewLen+3)
}

func TestRoot(t *testing.T) {
	rr := httptest.NewRecorder()
	Root("groq")(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "VisionChat AI Server is running on groq")
}
