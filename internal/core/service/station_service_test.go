package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
)

func TestStationService_SeedStations(t *testing.T) {
	repo := newStubStationRepo()
	svc := NewStationService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.Station{Name: "Main Station", NumGrounds: 9}); err != nil {

		t.Fatalf("setup: %v", err)

	}

	n, err := svc.SeedStations(ctx)
	if err != nil {
		t.Fatalf("SeedStations: %v", err)
	}
	if n != len(domain.DefaultStations)-1 {
		t.Fatalf("expected %d inserts, got %d", len(domain.DefaultStations)-1, n)
	}
	if repo.stations[1].NumGrounds != 9 {
		t.Fatalf("expected existing station to be left alone")
	}

	if n, _ := svc.SeedStations(ctx); n != 0 {
		t.Fatalf("expected second seed to insert nothing, got %d", n)
	}
}

func TestStationService_CRUD(t *testing.T) {
	svc := NewStationService(newStubStationRepo(), zerolog.Nop())
	ctx := context.Background()

	st, err := svc.CreateStation(ctx, "Harbour", 2)
	if err != nil {
		t.Fatalf("CreateStation: %v", err)
	}

	grounds := 6
	updated, err := svc.UpdateStation(ctx, st.ID, domain.StationPatch{NumGrounds: &grounds})
	if err != nil {
		t.Fatalf("UpdateStation: %v", err)
	}
	if updated.Name != "Harbour" || updated.NumGrounds != 6 {
		t.Fatalf("unexpected station: %+v", updated)
	}

	if err := svc.DeleteStation(ctx, st.ID); err != nil {
		t.Fatalf("DeleteStation: %v", err)
	}
	if _, err := svc.GetStation(ctx, st.ID); !errors.Is(err, domain.ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
}

func TestStationService_Validation(t *testing.T) {
	svc := NewStationService(newStubStationRepo(), zerolog.Nop())

	if _, err := svc.CreateStation(context.Background(), " ", 1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateStation(context.Background(), "X", -1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
