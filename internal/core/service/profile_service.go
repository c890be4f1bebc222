package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// ProfileService is plain field storage for the three profile kinds, plus the
// reference checks: user and learner profiles need an account, instructor
// profiles a user profile and a station.
type ProfileService struct {
	accounts    ports.UserRepository
	users       ports.UserProfileRepository
	instructors ports.InstructorProfileRepository
	learners    ports.LearnerProfileRepository
	stations    ports.StationRepository
	log         zerolog.Logger
}

func NewProfileService(
	accounts ports.UserRepository,
	users ports.UserProfileRepository,
	instructors ports.InstructorProfileRepository,
	learners ports.LearnerProfileRepository,
	stations ports.StationRepository,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		accounts:    accounts,
		users:       users,
		instructors: instructors,
		learners:    learners,
		stations:    stations,
		log:         log,
	}
}

func (s *ProfileService) CreateUserProfile(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error) {
	if err := validateUserProfile(&p); err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, p.UserID); err != nil {
		return nil, err
	}
	return s.users.Create(ctx, &p)
}

func (s *ProfileService) GetUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	return s.users.FindByUserID(ctx, userID)
}

func (s *ProfileService) ListUserProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	return s.users.List(ctx)
}

func (s *ProfileService) UpdateUserProfile(ctx context.Context, userID int64, p domain.UserProfile) (*domain.UserProfile, error) {
	p.UserID = userID
	if err := validateUserProfile(&p); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, &p)
}

func (s *ProfileService) DeleteUserProfile(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

// CreateInstructorProfile requires an existing user profile and station. A
// second profile for the same user or a reused inf_nr is a conflict.
func (s *ProfileService) CreateInstructorProfile(ctx context.Context, p domain.InstructorProfile) (*domain.InstructorProfile, error) {
	if strings.TrimSpace(p.InfNr) == "" {
		return nil, domain.Invalid("inf_nr is required")
	}
	if _, err := s.users.FindByUserID(ctx, p.UserID); err != nil {
		return nil, err
	}
	if _, err := s.stations.FindByID(ctx, p.StationID); err != nil {
		return nil, err
	}
	if _, err := s.instructors.FindByUserID(ctx, p.UserID); err == nil {
		return nil, domain.ErrInstructorProfileExists
	}
	taken, err := s.instructors.ExistsByInfNr(ctx, p.InfNr)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrInstructorNumberTaken
	}

	created, err := s.instructors.Create(ctx, &p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", p.UserID).Int64("station_id", p.StationID).Msg("instructor profile created")
	return created, nil
}

func (s *ProfileService) GetInstructorProfile(ctx context.Context, userID int64) (*domain.InstructorProfile, error) {
	return s.instructors.FindByUserID(ctx, userID)
}

func (s *ProfileService) ListInstructorProfiles(ctx context.Context) ([]domain.InstructorProfile, error) {
	return s.instructors.List(ctx)
}

// UpdateInstructorProfile changes only the instructor number.
func (s *ProfileService) UpdateInstructorProfile(ctx context.Context, userID int64, infNr string) (*domain.InstructorProfile, error) {
	if strings.TrimSpace(infNr) == "" {
		return nil, domain.Invalid("inf_nr is required")
	}
	current, err := s.instructors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.InfNr == infNr {
		return current, nil
	}
	taken, err := s.instructors.ExistsByInfNr(ctx, infNr)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrInstructorNumberTaken
	}
	return s.instructors.UpdateInfNr(ctx, userID, infNr)
}

func (s *ProfileService) DeleteInstructorProfile(ctx context.Context, userID int64) error {
	return s.instructors.Delete(ctx, userID)
}

func (s *ProfileService) CreateLearnerProfile(ctx context.Context, p domain.LearnerProfile) (*domain.LearnerProfile, error) {
	if err := normalizeLearnerProfile(&p); err != nil {
		return nil, err
	}
	if _, err := s.accounts.FindByID(ctx, p.UserID); err != nil {
		return nil, err
	}
	if p.RegisteredOn.IsZero() {
		p.RegisteredOn = time.Now().UTC()
	}
	return s.learners.Create(ctx, &p)
}

func (s *ProfileService) GetLearnerProfile(ctx context.Context, userID int64) (*domain.LearnerProfile, error) {
	return s.learners.FindByUserID(ctx, userID)
}

func (s *ProfileService) ListLearnerProfiles(ctx context.Context) ([]domain.LearnerProfile, error) {
	return s.learners.List(ctx)
}

// UpdateLearnerProfile replaces the profile fields. A zero RegisteredOn keeps
// the stored value.
func (s *ProfileService) UpdateLearnerProfile(ctx context.Context, userID int64, p domain.LearnerProfile) (*domain.LearnerProfile, error) {
	current, err := s.learners.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.UserID = userID
	if err := normalizeLearnerProfile(&p); err != nil {
		return nil, err
	}
	if p.RegisteredOn.IsZero() {
		p.RegisteredOn = current.RegisteredOn
	}
	return s.learners.Update(ctx, &p)
}

func (s *ProfileService) DeleteLearnerProfile(ctx context.Context, userID int64) error {
	return s.learners.Delete(ctx, userID)
}

func validateUserProfile(p *domain.UserProfile) error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Surname) == "" {
		return domain.Invalid("name and surname are required")
	}
	if strings.TrimSpace(p.IDNumber) == "" {
		return domain.Invalid("id_number is required")
	}
	dob, err := domain.ParseDate(p.DateOfBirth)
	if err != nil {
		return err
	}
	p.DateOfBirth = dob
	return nil
}

func normalizeLearnerProfile(p *domain.LearnerProfile) error {
	if p.LearnerStatus == "" {
		p.LearnerStatus = domain.LearnerStatusPending
	}
	if p.TestBookingDate != nil {
		d, err := domain.ParseDate(*p.TestBookingDate)
		if err != nil {
			return err
		}
		p.TestBookingDate = &d
	}
	return nil
}
