package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

type StationRepository interface {
	Create(ctx context.Context, s *domain.Station) (*domain.Station, error)
	FindByID(ctx context.Context, id int64) (*domain.Station, error)
	List(ctx context.Context) ([]domain.Station, error)
	Update(ctx context.Context, id int64, patch domain.StationPatch) (*domain.Station, error)
	Delete(ctx context.Context, id int64) error
	// EnsureStations inserts each station whose name is not yet taken and
	// reports how many were inserted.
	EnsureStations(ctx context.Context, stations []domain.Station) (int, error)
}
