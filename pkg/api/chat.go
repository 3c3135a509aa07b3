// Package api holds the wire types shared by the completion proxy and the
// chat client. The shapes follow the OpenAI-style chat completions contract
// the upstream gateway speaks.
package api

import "encoding/json"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry in a conversation context.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the body accepted by POST /chat and forwarded upstream.
// The proxy does not check Model against the catalog; unknown ids are the
// upstream's problem to reject.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
	Model    string        `json:"model,omitempty"`
	Stream   bool          `json:"stream,omitempty"`
}

// ChatResponse is one SSE chunk (or a full completion) from the upstream.
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int          `json:"index"`
	Delta        *Delta       `json:"delta,omitempty"`
	Message      *ChatMessage `json:"message,omitempty"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

// Delta carries the incremental text fragment of a streamed chunk. An empty
// Content means "no text this event", not an error.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// DeltaContent extracts choices[0].delta.content, tolerating absent paths.
func (r *ChatResponse) DeltaContent() string {
	if len(r.Choices) == 0 || r.Choices[0].Delta == nil {
		return ""
	}
	return r.Choices[0].Delta.Content
}

// ErrorEnvelope is the uniform error body the proxy returns for every
// failure mode: `{"error": "message"}`.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// UpstreamError mirrors the upstream gateway's error body,
// `{"error":{"message":...}}`.
type UpstreamError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
		Code    any    `json:"code,omitempty"`
	} `json:"error"`
}

// UpstreamErrorMessage pulls a human-readable message out of an upstream
// error body. Returns "" when the body is not parseable or carries no
// message, in which case callers fall back to a generic status string.
func UpstreamErrorMessage(body []byte) string {
	var e UpstreamError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}
