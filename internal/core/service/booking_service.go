package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// BookingService implements the booking lifecycle and its date-scoped queries.
type BookingService struct {
	bookings ports.BookingRepository
	learners ports.LearnerProfileRepository
	idem     ports.IdempotencyStore
	log      zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	learners ports.LearnerProfileRepository,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) *BookingService {
	if idem == nil {
		idem = noIdempotency{}
	}
	return &BookingService{bookings: bookings, learners: learners, idem: idem, log: log}
}

// noIdempotency is used when no key store is configured; every key is unseen.
type noIdempotency struct{}

func (noIdempotency) Claim(context.Context, string) (int64, bool, error) { return 0, true, nil }
func (noIdempotency) Remember(context.Context, string, int64) error { return nil }
func (noIdempotency) Release(context.Context, string) error { return nil }

// CreateBooking stores a new booking. If an idempotency key is provided and
// already seen, the previously created booking is returned without side effects.
// A key still held by a concurrent request fails with ErrIdempotencyKeyInUse.
func (s *BookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*ports.BookingCreated, error) {
	testDate, err := domain.ParseDate(in.TestDate)
	if err != nil {
		return nil, err
	}
	result := domain.ResultPending
	if in.Result != "" {
		if result, err = domain.ParseResult(in.Result); err != nil {
			return nil, err
		}
	}

	var owned bool
	if in.IdempotencyKey != "" {
		existing, own, err := s.claim(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.BookingCreated{Booking: existing, AlreadyExisted: true}, nil
		}
		owned = own
	}

	now := time.Now().UTC()
	b := &domain.Booking{
		LearnerID:    in.LearnerID,
		InstructorID: in.InstructorID,
		StationID:    in.StationID,
		TestDate:     testDate,
		Result:       result,
		BookingDate:  now,
		LicenseCode:  in.LicenseCode,
		RegisteredOn: now,
	}
	if in.BookingDate != nil {
		b.BookingDate = in.BookingDate.UTC()
	}
	if in.RegisteredOn != nil {
		b.RegisteredOn = in.RegisteredOn.UTC()
	}

	created, err := s.bookings.Create(ctx, b)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create booking")
		if owned {
			if rerr := s.idem.Release(ctx, in.IdempotencyKey); rerr != nil {
				s.log.Warn().Err(rerr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if owned {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, created.ID); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.log.Info().
		Int64("booking_id", created.ID).
		Int64("learner_id", created.LearnerID).
		Str("test_date", created.TestDate).
		Msg("booking created")

	return &ports.BookingCreated{Booking: created}, nil
}

// claim resolves an idempotency key. It returns the booking to replay, or
// own=true when this request holds the key and must record its booking. A
// store failure or an unreadable stored booking yields neither: the booking is
// created without idempotency. A booking deleted since is replaced under the
// same key.
func (s *BookingService) claim(ctx context.Context, key string) (existing *domain.Booking, own bool, err error) {
	id, claimed, err := s.idem.Claim(ctx, key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency claim failed, creating anyway")
		return nil, false, nil
	case claimed:
		return nil, true, nil
	case id == 0:
		return nil, false, domain.ErrIdempotencyKeyInUse
	}

	existing, err = s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, true, nil
		}
		s.log.Warn().Err(err).Int64("booking_id", id).Msg("idempotent replay read failed")
		return nil, false, nil
	}
	s.log.Info().Str("idempotency_key", key).Int64("booking_id", id).Msg("idempotent replay")
	return existing, false, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx, ports.BookingFilter{})
}

// ListByLearner returns every booking of learnerID. Bookings are stored without
// reference checks, so they are returned even when the learner has no profile.
// An empty result is ErrLearnerProfileNotFound for an unknown learner and an
// empty slice for a known one.
func (s *BookingService) ListByLearner(ctx context.Context, learnerID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx, ports.BookingFilter{LearnerID: &learnerID})
	if err != nil {
		return nil, err
	}
	if len(bookings) > 0 {
		return bookings, nil
	}
	if _, err := s.learners.FindByUserID(ctx, learnerID); err != nil {
		return nil, err
	}
	return []domain.Booking{}, nil
}

func (s *BookingService) PendingForDate(ctx context.Context, date string) ([]domain.Booking, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.bookings.List(ctx, ports.BookingFilter{TestDate: d, Result: domain.ResultPending})
}

// CompletedForDate returns every booking on date whose result is no longer pending.
func (s *BookingService) CompletedForDate(ctx context.Context, date string) ([]domain.Booking, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.bookings.List(ctx, ports.BookingFilter{TestDate: d, NotResult: domain.ResultPending})
}

func (s *BookingService) ResultsForDate(ctx context.Context, date string) (*domain.ResultBreakdown, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx, ports.BookingFilter{TestDate: d})
	if err != nil {
		return nil, err
	}
	rb := domain.NewResultBreakdown(d, bookings)
	return &rb, nil
}

// UpdateResult overwrites the result unconditionally. Concurrent updates race;
// the last write wins.
func (s *BookingService) UpdateResult(ctx context.Context, id int64, result string) (*domain.Booking, error) {
	r, err := domain.ParseResult(result)
	if err != nil {
		return nil, err
	}
	updated, err := s.bookings.Update(ctx, id, domain.BookingPatch{Result: &r})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("booking_id", id).Str("result", string(r)).Msg("booking result updated")
	return updated, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error) {
	if patch.TestDate != nil {
		d, err := domain.ParseDate(*patch.TestDate)
		if err != nil {
			return nil, err
		}
		patch.TestDate = &d
	}
	if patch.Result != nil && !patch.Result.Valid() {
		return nil, domain.Invalid("result must be one of: pending passed failed absent")
	}
	if patch.Empty() {
		return s.bookings.FindByID(ctx, id)
	}

	updated, err := s.bookings.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("booking_id", id).Msg("booking updated")
	return updated, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("booking_id", id).Msg("booking deleted")
	return nil
}
