package ports

import (
	"context"
	"time"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// IdempotencyStore remembers which booking a client-supplied key produced.
// A key is claimed before the booking is written, so concurrent requests with
// the same key cannot both create one.
type IdempotencyStore interface {
	// Claim reserves key for the caller (claimed=true). Otherwise it returns
	// the booking ID stored under key, or 0 while the claiming request is
	// still writing.
	Claim(ctx context.Context, key string) (id int64, claimed bool, err error)
	// Remember records the booking created under a claimed key.
	Remember(ctx context.Context, key string, id int64) error
	// Release drops a claim whose booking was never written.
	Release(ctx context.Context, key string) error
}

// CreateBookingInput is the DTO passed from the transport layer to BookingService.
// No foreign key is checked: learner, instructor and station IDs are stored as given.
type CreateBookingInput struct {
	LearnerID      int64
	InstructorID   int64
	StationID      int64
	TestDate       string
	Result         string // optional, defaults to pending
	LicenseCode    *string
	BookingDate    *time.Time
	RegisteredOn   *time.Time
	IdempotencyKey string
}

// BookingCreated is returned by CreateBooking. AlreadyExisted is set when the
// idempotency key was seen before and no new booking was written.
type BookingCreated struct {
	Booking        *domain.Booking
	AlreadyExisted bool
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*BookingCreated, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]domain.Booking, error)
	PendingForDate(ctx context.Context, date string) ([]domain.Booking, error)
	CompletedForDate(ctx context.Context, date string) ([]domain.Booking, error)
	ResultsForDate(ctx context.Context, date string) (*domain.ResultBreakdown, error)
	UpdateResult(ctx context.Context, id int64, result string) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}
