package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// ProfileService manages the user, instructor and learner profiles.
type ProfileService interface {
	CreateUserProfile(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error)
	GetUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	ListUserProfiles(ctx context.Context) ([]domain.UserProfile, error)
	UpdateUserProfile(ctx context.Context, userID int64, p domain.UserProfile) (*domain.UserProfile, error)
	DeleteUserProfile(ctx context.Context, userID int64) error

	CreateInstructorProfile(ctx context.Context, p domain.InstructorProfile) (*domain.InstructorProfile, error)
	GetInstructorProfile(ctx context.Context, userID int64) (*domain.InstructorProfile, error)
	ListInstructorProfiles(ctx context.Context) ([]domain.InstructorProfile, error)
	UpdateInstructorProfile(ctx context.Context, userID int64, infNr string) (*domain.InstructorProfile, error)
	DeleteInstructorProfile(ctx context.Context, userID int64) error

	CreateLearnerProfile(ctx context.Context, p domain.LearnerProfile) (*domain.LearnerProfile, error)
	GetLearnerProfile(ctx context.Context, userID int64) (*domain.LearnerProfile, error)
	ListLearnerProfiles(ctx context.Context) ([]domain.LearnerProfile, error)
	UpdateLearnerProfile(ctx context.Context, userID int64, p domain.LearnerProfile) (*domain.LearnerProfile, error)
	DeleteLearnerProfile(ctx context.Context, userID int64) error
}
