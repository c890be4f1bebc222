package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

type StationService struct {
	stations ports.StationRepository
	log      zerolog.Logger
}

func NewStationService(stations ports.StationRepository, log zerolog.Logger) *StationService {
	return &StationService{stations: stations, log: log}
}

// SeedStations inserts the default stations missing by name.
func (s *StationService) SeedStations(ctx context.Context) (int, error) {
	n, err := s.stations.EnsureStations(ctx, domain.DefaultStations)
	if err != nil {
		return n, err
	}
	s.log.Info().Int("inserted", n).Msg("stations seeded")
	return n, nil
}

func (s *StationService) CreateStation(ctx context.Context, name string, numGrounds int) (*domain.Station, error) {
	if err := validateStation(name, numGrounds); err != nil {
		return nil, err
	}
	return s.stations.Create(ctx, &domain.Station{Name: name, NumGrounds: numGrounds})
}

func (s *StationService) GetStation(ctx context.Context, id int64) (*domain.Station, error) {
	return s.stations.FindByID(ctx, id)
}

func (s *StationService) ListStations(ctx context.Context) ([]domain.Station, error) {
	return s.stations.List(ctx)
}

func (s *StationService) UpdateStation(ctx context.Context, id int64, patch domain.StationPatch) (*domain.Station, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, domain.Invalid("name must not be empty")
	}
	if patch.NumGrounds != nil && *patch.NumGrounds < 0 {
		return nil, domain.Invalid("num_grounds must not be negative")
	}
	if patch.Name == nil && patch.NumGrounds == nil {
		return s.stations.FindByID(ctx, id)
	}
	return s.stations.Update(ctx, id, patch)
}

func (s *StationService) DeleteStation(ctx context.Context, id int64) error {
	return s.stations.Delete(ctx, id)
}

func validateStation(name string, numGrounds int) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalid("name is required")
	}
	if numGrounds < 0 {
		return domain.Invalid("num_grounds must not be negative")
	}
	return nil
}
