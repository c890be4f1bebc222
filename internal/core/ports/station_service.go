package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

type StationService interface {
	SeedStations(ctx context.Context) (int, error)
	CreateStation(ctx context.Context, name string, numGrounds int) (*domain.Station, error)
	GetStation(ctx context.Context, id int64) (*domain.Station, error)
	ListStations(ctx context.Context) ([]domain.Station, error)
	UpdateStation(ctx context.Context, id int64, patch domain.StationPatch) (*domain.Station, error)
	DeleteStation(ctx context.Context, id int64) error
}
