package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// SecurityQuestionRepository stores the recovery question catalog. Question
// text is unique.
type SecurityQuestionRepository interface {
	List(ctx context.Context) ([]domain.SecurityQuestion, error)
	FindByID(ctx context.Context, id int64) (*domain.SecurityQuestion, error)
	// EnsureQuestions inserts every text not already present (exact match) and
	// reports how many were inserted. Existing questions are never touched.
	EnsureQuestions(ctx context.Context, texts []string) (int, error)
}

// SecurityAnswerRepository stores hashed answers, one per (user, question).
type SecurityAnswerRepository interface {
	// Create fails with domain.ErrAnswerExists when the pair already has an answer.
	Create(ctx context.Context, a *domain.SecurityAnswer) (*domain.SecurityAnswer, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.SecurityAnswer, error)
}
