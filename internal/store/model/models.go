package model

import "time"

// RelayLog is one proxied completion call: what was asked for and how the
// upstream answered. Message content is never persisted.
type RelayLog struct {
	ID        string    `db:"id" json:"id"`
	ModelID   string    `db:"model_id" json:"model_id"`
	Status    int       `db:"status" json:"status"`
	LatencyMs int64     `db:"latency_ms" json:"latency_ms"`
	Streamed  bool      `db:"streamed" json:"streamed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
