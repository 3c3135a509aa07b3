package store

import (
	"context"

	"github.com/reaxo/reaxo/internal/store/model"
)

// Repository is the contract for the proxy's data layer. Conversation
// history is deliberately absent: it lives only in client memory for the
// session. The store records relay usage metadata.
type Repository interface {
	Relays() RelayRepository
	Close() error
}

type RelayRepository interface {
	// Log stores one completed relay.
	Log(ctx context.Context, entry *model.RelayLog) error
	// GetRecent returns the last N relay entries, newest first.
	GetRecent(ctx context.Context, limit int) ([]model.RelayLog, error)
}
