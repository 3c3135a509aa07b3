package v1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/server/middleware"
	"github.com/reaxo/reaxo/internal/server/validator"
	"github.com/reaxo/reaxo/internal/store/model"
	"github.com/reaxo/reaxo/pkg/api"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.InitValidator()
}

func newChatRouter(upstream config.UpstreamConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	h := NewChatHandler(upstream, nil, nil, zap.NewNop())
	r.POST("/chat", h.CreateCompletion)
	return r
}

// captureIngestor records every relay log handed to it.
type captureIngestor struct {
	logs []*model.RelayLog
}

func (c *captureIngestor) Log(l *model.RelayLog) { c.logs = append(c.logs, l) }
func (c *captureIngestor) Start(context.Context) {}
func (c *captureIngestor) Stop()                 {}

func TestCreateCompletionRelaysStreamVerbatim(t *testing.T) {
	const stream = "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n" +
		"data: [DONE]\n\n"

	var gotAuth string
	var gotBody api.ChatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, stream)
	}))
	defer upstream.Close()

	router := newChatRouter(config.UpstreamConfig{
		CompletionsURL: upstream.URL,
		APIKey:         "secret-key",
		DefaultModel:   "gemini-2.5-flash",
	})

	body := `{"messages":[{"role":"user","content":"hi"}],"model":"gpt-5"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, stream, w.Body.String())

	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "gpt-5", gotBody.Model)
	assert.True(t, gotBody.Stream, "relay must force stream mode upstream")
}

func TestCreateCompletionFillsDefaultModel(t *testing.T) {
	var gotBody api.ChatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	router := newChatRouter(config.UpstreamConfig{
		CompletionsURL: upstream.URL,
		APIKey:         "k",
		DefaultModel:   "gemini-2.5-flash",
	})

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gemini-2.5-flash", gotBody.Model)
}

func TestCreateCompletionSurfacesUpstreamMessage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer upstream.Close()

	router := newChatRouter(config.UpstreamConfig{
		CompletionsURL: upstream.URL,
		APIKey:         "k",
	})

	body := `{"messages":[{"role":"user","content":"hi"}],"model":"gpt-5"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var envelope api.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "rate limited", envelope.Error)
}

func TestCreateCompletionGenericMessageOnOpaqueBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream exploded")
	}))
	defer upstream.Close()

	router := newChatRouter(config.UpstreamConfig{
		CompletionsURL: upstream.URL,
		APIKey:         "k",
	})

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var envelope api.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "API returned status 502", envelope.Error)
}

func TestCreateCompletionRecordsStreamOutcome(t *testing.T) {
	// A clean stream logs 200; an upstream that declares more bytes than it
	// sends breaks the relay's read before EOF and logs 502 instead.
	clean := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer clean.Close()

	truncated := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Content-Length", "4096")
		_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"par\"}}]}\n\n")
	}))
	defer truncated.Close()

	tests := []struct {
		name       string
		upstream   string
		wantStatus int
	}{
		{"clean completion", clean.URL, http.StatusOK},
		{"truncated upstream", truncated.URL, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureIngestor{}
			router := gin.New()
			router.Use(middleware.ErrorHandler(zap.NewNop()))
			h := NewChatHandler(config.UpstreamConfig{
				CompletionsURL: tt.upstream,
				APIKey:         "k",
			}, nil, sink, zap.NewNop())
			router.POST("/chat", h.CreateCompletion)

			body := `{"messages":[{"role":"user","content":"hi"}],"model":"gpt-5"}`
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Len(t, sink.logs, 1)
			assert.Equal(t, tt.wantStatus, sink.logs[0].Status)
			assert.Equal(t, "gpt-5", sink.logs[0].ModelID)
		})
	}
}

func TestCreateCompletionRejectsInvalidBody(t *testing.T) {
	router := newChatRouter(config.UpstreamConfig{APIKey: "k"})

	for _, body := range []string{
		`{}`,
		`{"messages":[]}`,
		`{"messages":[{"role":"system","content":"x"}]}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)

		var envelope api.ErrorEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.NotEmpty(t, envelope.Error)
	}
}

func TestCreateCompletionMissingCredential(t *testing.T) {
	router := newChatRouter(config.UpstreamConfig{CompletionsURL: "http://localhost:1"})

	body := `{"messages":[{"role":"user","content":"hi"}],"model":"gpt-5"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope api.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Error)
}

func TestCreateCompletionNetworkFailure(t *testing.T) {
	// Closed server: connection refused before any response.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	router := newChatRouter(config.UpstreamConfig{
		CompletionsURL: upstream.URL,
		APIKey:         "k",
	})

	body := `{"messages":[{"role":"user","content":"hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope api.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Error)
}
