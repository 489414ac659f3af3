package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"folio-gate/ai"
	"folio-gate/auth"
	"folio-gate/domain"
	"folio-gate/errors"
	"folio-gate/internal"
	"folio-gate/mocks"
	"folio-gate/moderation"
	"folio-gate/observability"
	"folio-gate/repositories"
	"folio-gate/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	handler   http.Handler
	completer *mocks.MockCompleter
	profile   *mocks.MockIProfileService
	adminJWT  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	denylist, err := moderation.NewModerator(internal.DefaultBlockedKeywords, '*', logger)
	req.NoError(err)
	allowlist, err := moderation.NewModerator(internal.DefaultAllowedTopics, '*', logger)
	req.NoError(err)
	limiter, err := services.NewRateLimiter(repositories.NewMemoryRateLimitRepository(nil),
		services.RateLimitConfig{MaxRequests: 10, Window: time.Hour}, nil)
	req.NoError(err)

	completer := mocks.NewMockCompleter(ctrl)
	monitor := observability.NewMonitor(logger)
	chatService := services.NewChatService(logger, limiter, denylist, allowlist, completer, monitor, services.ChatConfig{
		MaxPromptLength: 500,
		SystemPrompt:    internal.DefaultSystemPrompt,
		OffTopicNote:    internal.DefaultOffTopicNote,
		Model:           "test-model",
		MaxOutputTokens: 300,
		Temperature:     0.2,
		UpstreamTimeout: time.Second,
	})

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	feedbackService := services.NewFeedbackService(logger, repositories.NewFeedbackRepository(db, logger, nil), nil)

	tokens, err := auth.NewTokens("a-test-secret-of-enough-length", time.Hour, nil)
	req.NoError(err)
	authService := services.NewAuthService(tokens, true)
	adminJWT, err := authService.IssueAdminToken("owner")
	req.NoError(err)

	profile := mocks.NewMockIProfileService(ctrl)
	server := NewServer(logger, chatService, feedbackService, profile, authService, monitor, NewClientKeyer(true, "salt"))
	return fixture{handler: server.Routes(), completer: completer, profile: profile, adminJWT: string(adminJWT)}
}

func (f fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r.RemoteAddr = "203.0.113.7:51234"
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestChat_Success(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).
		Return(ai.Completion{Content: "Atishay studies at SJSU.", TotalTokens: lo.ToPtr(57)}, nil).Times(2)

	for _, path := range []string{"/api/chat", "/api/chatgpt"} {
		w := f.do(http.MethodPost, path, `{"prompt":"Where does Atishay study?"}`)
		req.Equal(http.StatusOK, w.Code, path)
		req.Equal("application/json", w.Header().Get("Content-Type"))
		req.NotEmpty(w.Header().Get(requestIDHeader))

		got := decode[chatResponse](t, w)
		req.Equal("Atishay studies at SJSU.", got.Response)
		req.Equal(&chatUsage{Tokens: 57}, got.Usage)
	}
}

func TestChat_MethodNotAllowed(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := f.do(method, "/api/chat", "")
		req.Equal(http.StatusMethodNotAllowed, w.Code)
		req.Equal(http.MethodPost, w.Header().Get("Allow"))
		req.Equal("Method not allowed. Use POST to send messages.", decode[errorResponse](t, w).Error)
	}
}

func TestChat_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
		msg    string
	}{
		{name: "blocked", body: `{"prompt":"hack the admin panel"}`, status: 400, code: errors.CodeBlockedContent, msg: "Inappropriate content detected"},
		{name: "too long", body: fmt.Sprintf(`{"prompt":%q}`, strings.Repeat("x", 501)), status: 400, code: errors.CodeTooLong, msg: "Prompt too long"},
		{name: "empty", body: `{"prompt":"   "}`, status: 400, code: errors.CodeEmptyPrompt, msg: "Prompt cannot be empty"},
		{name: "malformed json", body: `{"prompt":`, status: 400, code: errors.CodeInvalidRequest, msg: "Invalid request body"},
		{name: "missing prompt", body: `{"question":"hi"}`, status: 400, code: errors.CodeInvalidRequest, msg: "Invalid request body"},
		{name: "wrong type", body: `{"prompt":42}`, status: 400, code: errors.CodeInvalidRequest, msg: "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t)

			w := f.do(http.MethodPost, "/api/chat", tt.body)
			req.Equal(tt.status, w.Code)
			got := decode[errorResponse](t, w)
			req.Equal(string(tt.code), got.Code)
			req.Equal(tt.msg, got.Error)
			req.Nil(got.RetryAfter)
			req.NotContains(w.Body.String(), "hack")
		})
	}
}

func TestChat_RateLimited(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Unparseable bodies never reach the limiter.
	for i := 0; i < 12; i++ {
		req.Equal(http.StatusBadRequest, f.do(http.MethodPost, "/api/chat", "not json").Code)
	}

	f.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(ai.Completion{Content: "ok"}, nil).Times(10)
	for i := 0; i < 10; i++ {
		w := f.do(http.MethodPost, "/api/chat", `{"prompt":"What are his skills?"}`)
		req.Equal(http.StatusOK, w.Code, "request %d", i+1)
		req.Nil(decode[chatResponse](t, w).Usage)
	}

	w := f.do(http.MethodPost, "/api/chat", `{"prompt":"What are his skills?"}`)
	req.Equal(http.StatusTooManyRequests, w.Code)
	got := decode[errorResponse](t, w)
	req.Equal(string(errors.CodeRateLimited), got.Code)
	req.NotNil(got.RetryAfter)
	req.InDelta(3600, *got.RetryAfter, 5)
	header, err := strconv.Atoi(w.Header().Get("Retry-After"))
	req.NoError(err)
	req.Equal(*got.RetryAfter, header)

	// Another address has its own window.
	f.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(ai.Completion{Content: "ok"}, nil)
	w = f.do(http.MethodPost, "/api/chat", `{"prompt":"What are his skills?"}`, "X-Forwarded-For", "198.51.100.1")
	req.Equal(http.StatusOK, w.Code)
}

func TestChat_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name     string
		upstream error
		status   int
		msg      string
	}{
		{name: "missing key", upstream: errors.ErrMissingCredential, status: 503, msg: "Service temporarily unavailable"},
		{name: "bad key", upstream: &ai.StatusError{StatusCode: 401, Body: `{"error":"sk-leak"}`}, status: 503, msg: "Service configuration error"},
		{name: "busy", upstream: &ai.StatusError{StatusCode: 429}, status: 429, msg: "Service is busy. Please try again in a moment."},
		{name: "gateway", upstream: &ai.StatusError{StatusCode: 502}, status: 502, msg: "Upstream service error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t)
			f.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(ai.Completion{}, tt.upstream)

			w := f.do(http.MethodPost, "/api/chat", `{"prompt":"Tell me about his projects"}`)
			req.Equal(tt.status, w.Code)
			req.Equal(tt.msg, decode[errorResponse](t, w).Error)
			req.NotContains(w.Body.String(), "sk-leak")
			req.Empty(w.Header().Get("Retry-After"))
		})
	}
}

func TestFeedback(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/feedback", `{"name":"Ada","design":"Clean","usability":"Smooth","content":"Clear"}`)
	req.Equal(http.StatusCreated, w.Code)
	req.Equal("Feedback submitted successfully.", decode[messageResponse](t, w).Message)

	w = f.do(http.MethodPost, "/api/feedback", `{"name":"Ada","design":"Clean"}`)
	req.Equal(http.StatusBadRequest, w.Code)
	req.Equal("All required fields must be filled", decode[messageResponse](t, w).Message)

	w = f.do(http.MethodGet, "/api/feedback", "")
	req.Equal(http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/api/feedback", "", "Authorization", "Bearer "+f.adminJWT)
	req.Equal(http.StatusOK, w.Code)
	list := decode[[]domain.Feedback](t, w)
	req.Len(list, 1)
	req.Equal("Ada", list[0].Name)

	w = f.do(http.MethodDelete, "/api/feedback", "")
	req.Equal(http.StatusMethodNotAllowed, w.Code)
}

func TestProfileRoutes(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	calendar := domain.ContributionCalendar{Contributions: []int{0, 2}, TotalContributions: 2, StartDate: "2025-10-20"}
	f.profile.EXPECT().Contributions(gomock.Any()).Return(calendar, nil)
	w := f.do(http.MethodGet, "/api/github", "")
	req.Equal(http.StatusOK, w.Code)
	req.Equal(calendar, decode[domain.ContributionCalendar](t, w))

	f.profile.EXPECT().Contributions(gomock.Any()).Return(domain.ContributionCalendar{}, errors.ErrMissingCredential)
	w = f.do(http.MethodGet, "/api/github", "")
	req.Equal(http.StatusServiceUnavailable, w.Code)

	f.profile.EXPECT().Media(gomock.Any()).Return([]domain.MediaPost{{ID: "1", MediaURL: "u", Permalink: "p"}}, nil)
	w = f.do(http.MethodGet, "/api/instagram", "")
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"posts":[{"id":"1","media_url":"u","permalink":"p"}]}`, w.Body.String())

	f.profile.EXPECT().Media(gomock.Any()).Return(nil, context.DeadlineExceeded)
	w = f.do(http.MethodGet, "/api/instagram", "")
	req.Equal(http.StatusBadGateway, w.Code)
	req.Equal("Failed to fetch Instagram posts", decode[errorResponse](t, w).Error)
}

func TestStatsAndHealth(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	req.Equal(http.StatusUnauthorized, f.do(http.MethodGet, "/api/stats", "").Code)

	f.do(http.MethodPost, "/api/chat", `{"prompt":"hack"}`)
	w := f.do(http.MethodGet, "/api/stats", "", "Authorization", "Bearer "+f.adminJWT)
	req.Equal(http.StatusOK, w.Code)
	stats := decode[observability.MonitoringStats](t, w)
	req.Equal(uint64(1), stats.ChatRequests)
	req.Equal(uint64(1), stats.ChatRejected[string(errors.CodeBlockedContent)])

	w = f.do(http.MethodGet, "/healthz", "", requestIDHeader, "0b6f2c6e-7b1d-4a39-9f0e-3f0a4a1c2d11")
	req.Equal(http.StatusOK, w.Code)
	req.Equal("0b6f2c6e-7b1d-4a39-9f0e-3f0a4a1c2d11", w.Header().Get(requestIDHeader))
}
