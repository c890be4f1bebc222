package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// UserProfileRepository is keyed by user ID. id_number is unique.
type UserProfileRepository interface {
	Create(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error)
	List(ctx context.Context) ([]domain.UserProfile, error)
	Update(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error)
	Delete(ctx context.Context, userID int64) error
}

// InstructorProfileRepository is keyed by user ID. inf_nr is unique.
type InstructorProfileRepository interface {
	Create(ctx context.Context, p *domain.InstructorProfile) (*domain.InstructorProfile, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.InstructorProfile, error)
	ExistsByInfNr(ctx context.Context, infNr string) (bool, error)
	List(ctx context.Context) ([]domain.InstructorProfile, error)
	UpdateInfNr(ctx context.Context, userID int64, infNr string) (*domain.InstructorProfile, error)
	Delete(ctx context.Context, userID int64) error
}

type LearnerProfileRepository interface {
	Create(ctx context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.LearnerProfile, error)
	List(ctx context.Context) ([]domain.LearnerProfile, error)
	Update(ctx context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error)
	Delete(ctx context.Context, userID int64) error
}
