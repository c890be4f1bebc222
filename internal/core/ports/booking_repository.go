package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// BookingFilter is a conjunction of equality/inequality predicates. Zero-valued
// fields do not constrain the query.
type BookingFilter struct {
	LearnerID *int64
	TestDate  string        // exact match, YYYY-MM-DD
	Result    domain.Result // result == Result
	NotResult domain.Result // result != NotResult
}

// BookingRepository persists learner test bookings.
type BookingRepository interface {
	// Create assigns the next booking ID and stores b.
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	// List returns matching bookings ordered by booking ID.
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	// Update applies patch in a single write and returns the stored result.
	Update(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}
