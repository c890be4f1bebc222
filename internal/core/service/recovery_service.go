package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// RecoveryService owns the security question catalog and the hashed answers.
type RecoveryService struct {
	questions ports.SecurityQuestionRepository
	answers   ports.SecurityAnswerRepository
	users     ports.UserRepository
	hasher    ports.SecretHasher
	log       zerolog.Logger
}

func NewRecoveryService(
	questions ports.SecurityQuestionRepository,
	answers ports.SecurityAnswerRepository,
	users ports.UserRepository,
	hasher ports.SecretHasher,
	log zerolog.Logger,
) *RecoveryService {
	return &RecoveryService{
		questions: questions,
		answers:   answers,
		users:     users,
		hasher:    hasher,
		log:       log,
	}
}

// SeedCatalog inserts every default question not yet present. Safe to run on
// every start.
func (s *RecoveryService) SeedCatalog(ctx context.Context) (int, error) {
	n, err := s.questions.EnsureQuestions(ctx, domain.DefaultSecurityQuestions)
	if err != nil {
		return n, err
	}
	s.log.Info().Int("inserted", n).Msg("security questions seeded")
	return n, nil
}

func (s *RecoveryService) ListQuestions(ctx context.Context) ([]domain.SecurityQuestion, error) {
	return s.questions.List(ctx)
}

func (s *RecoveryService) GetQuestion(ctx context.Context, id int64) (*domain.SecurityQuestion, error) {
	return s.questions.FindByID(ctx, id)
}

// RecordAnswer stores a hashed answer. Answers are write-once per (user, question).
func (s *RecoveryService) RecordAnswer(ctx context.Context, userID, questionID int64, answer string) (*domain.SecurityAnswer, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, domain.Invalid("answer is required")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(answer)
	if err != nil {
		return nil, err
	}

	created, err := s.answers.Create(ctx, &domain.SecurityAnswer{
		UserID:     userID,
		QuestionID: questionID,
		AnswerHash: hash,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", userID).Int64("question_id", questionID).Msg("security answer recorded")
	return created, nil
}

// GetAnswers lists a user's answers; an existing user without answers gets an
// empty slice.
func (s *RecoveryService) GetAnswers(ctx context.Context, userID int64) ([]domain.SecurityAnswer, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.answers.ListByUser(ctx, userID)
}
