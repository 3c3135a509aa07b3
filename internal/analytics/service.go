package analytics

import (
	"context"

	"github.com/reaxo/reaxo/internal/store"
	"github.com/reaxo/reaxo/internal/store/model"
)

type Service interface {
	RecentActivity(ctx context.Context, limit int) ([]model.RelayLog, error)
}

type service struct {
	repo store.Repository
}

func NewService(repo store.Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) RecentActivity(ctx context.Context, limit int) ([]model.RelayLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.repo.Relays().GetRecent(ctx, limit)
}
