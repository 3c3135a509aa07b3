package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/reaxo/reaxo/internal/store"
	"github.com/reaxo/reaxo/internal/store/model"
)

type repository struct {
	db *sqlx.DB
}

// NewSqliteRepository wraps an open connection in the Repository contract.
func NewSqliteRepository(db *sqlx.DB) store.Repository {
	return &repository{db: db}
}

func (r *repository) Relays() store.RelayRepository { return (*relayRepo)(r) }

func (r *repository) Close() error { return r.db.Close() }

type relayRepo repository

func (r *relayRepo) Log(ctx context.Context, entry *model.RelayLog) error {
	const q = `
		INSERT INTO relay_logs (id, model_id, status, latency_ms, streamed, created_at)
		VALUES (:id, :model_id, :status, :latency_ms, :streamed, :created_at)`
	_, err := r.db.NamedExecContext(ctx, q, entry)
	return err
}

func (r *relayRepo) GetRecent(ctx context.Context, limit int) ([]model.RelayLog, error) {
	const q = `
		SELECT id, model_id, status, latency_ms, streamed, created_at
		FROM relay_logs
		ORDER BY created_at DESC
		LIMIT ?`
	var out []model.RelayLog
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, err
	}
	return out, nil
}
