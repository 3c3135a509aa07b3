package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reaxo/reaxo/internal/httpclient"
	"github.com/reaxo/reaxo/pkg/api"
)

// HTTPCompleter talks to the completion proxy's POST /chat endpoint and
// decodes its SSE relay.
type HTTPCompleter struct {
	baseURL string
	client  httpclient.HTTPClient

	// Per-stream cap. Zero means none: a hung upstream leaves that one
	// model loading indefinitely while siblings finish, which is accepted.
	timeout time.Duration
}

// NewHTTPCompleter builds a completer against the proxy base URL. A nil
// client falls back to a pooled default.
func NewHTTPCompleter(baseURL string, client httpclient.HTTPClient, timeout time.Duration) *HTTPCompleter {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPCompleter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
	}
}

// Stream issues the chat request and feeds each delta to onDelta. Lines
// that are not `data: ` events, the [DONE] sentinel and unparseable JSON
// payloads are skipped without failing the stream.
func (c *HTTPCompleter) Stream(ctx context.Context, messages []api.ChatMessage, modelID string, onDelta func(string)) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := api.ChatRequest{
		Messages: messages,
		Model:    modelID,
		Stream:   true,
	}

	err := httpclient.StreamRequest(ctx, c.client, "POST", c.baseURL+"/chat", nil, req, func(line string) error {
		if !strings.HasPrefix(line, "data: ") {
			return nil
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return nil
		}

		var chunk api.ChatResponse
		if jsonErr := json.Unmarshal([]byte(data), &chunk); jsonErr != nil {
			return nil
		}
		if delta := chunk.DeltaContent(); delta != "" {
			onDelta(delta)
		}
		return nil
	})

	if err != nil {
		return c.asUserError(err)
	}
	return nil
}

// asUserError turns a failed proxy call into the message shown on the
// model's card: the proxy's error envelope when available, otherwise a
// generic status string, otherwise the transport error itself.
func (c *HTTPCompleter) asUserError(err error) error {
	var upstream *httpclient.UpstreamError
	if !errors.As(err, &upstream) {
		return err
	}

	var envelope api.ErrorEnvelope
	if jsonErr := json.Unmarshal(upstream.Body, &envelope); jsonErr == nil && envelope.Error != "" {
		return errors.New(envelope.Error)
	}
	return fmt.Errorf("Error %d", upstream.StatusCode)
}
