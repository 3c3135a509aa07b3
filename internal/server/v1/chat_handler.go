package v1

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/analytics"
	"github.com/reaxo/reaxo/internal/config"
	"github.com/reaxo/reaxo/internal/httpclient"
	"github.com/reaxo/reaxo/internal/server/validator"
	"github.com/reaxo/reaxo/internal/store/model"
	"github.com/reaxo/reaxo/pkg/api"
)

// ChatHandler relays completion requests to the upstream gateway, attaching
// the service credential and passing the SSE byte stream back untouched.
type ChatHandler struct {
	upstream config.UpstreamConfig
	client   httpclient.HTTPClient
	ingestor analytics.Ingestor
	logger   *zap.Logger
}

func NewChatHandler(upstream config.UpstreamConfig, client httpclient.HTTPClient, ingestor analytics.Ingestor, logger *zap.Logger) *ChatHandler {
	if client == nil {
		client = &http.Client{}
	}
	return &ChatHandler{
		upstream: upstream,
		client:   client,
		ingestor: ingestor,
		logger:   logger,
	}
}

func (h *ChatHandler) CreateCompletion(c *gin.Context) {
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorEnvelope{
			Error: validator.ParseValidationError(err),
		})
		return
	}

	if req.Model == "" {
		req.Model = h.upstream.DefaultModel
	}
	// The relay only speaks SSE downstream, whatever the caller asked for.
	req.Stream = true

	if h.upstream.APIKey == "" {
		_ = c.Error(errors.New("upstream credential is not configured"))
		return
	}

	start := time.Now()
	headers := map[string]string{
		"Authorization": "Bearer " + h.upstream.APIKey,
	}

	resp, err := httpclient.Open(c.Request.Context(), h.client, http.MethodPost, h.upstream.CompletionsURL, headers, &req)
	if err != nil {
		h.record(req.Model, statusOf(err), start)
		_ = c.Error(err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	// Verbatim byte relay. Each read is flushed immediately so deltas reach
	// the client as the upstream emits them. A stream that breaks before EOF
	// is logged under a distinct status so the usage log separates clean
	// completions from aborted ones.
	status := http.StatusOK
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := c.Writer.Write(buf[:n]); writeErr != nil {
				h.logger.Debug("Client went away mid-stream", zap.Error(writeErr))
				status = statusClientClosedRequest
				break
			}
			c.Writer.Flush()
		}
		if readErr != nil {
			if readErr != io.EOF {
				h.logger.Debug("Upstream stream broke", zap.Error(readErr))
				status = http.StatusBadGateway
			}
			break
		}
	}

	h.record(req.Model, status, start)
}

// statusClientClosedRequest marks relays the downstream client abandoned
// mid-stream, following the nginx convention.
const statusClientClosedRequest = 499

func (h *ChatHandler) record(modelID string, status int, start time.Time) {
	if h.ingestor == nil {
		return
	}
	h.ingestor.Log(&model.RelayLog{
		ID:        uuid.New().String(),
		ModelID:   modelID,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Streamed:  true,
		CreatedAt: time.Now().UTC(),
	})
}

func statusOf(err error) int {
	var upstream *httpclient.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	return http.StatusInternalServerError
}
