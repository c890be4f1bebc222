package ports

import (
	"context"

	"github.com/smartlicense/license-api/internal/core/domain"
)

// RecoveryService manages the security question catalog and user answers.
type RecoveryService interface {
	SeedCatalog(ctx context.Context) (int, error)
	ListQuestions(ctx context.Context) ([]domain.SecurityQuestion, error)
	GetQuestion(ctx context.Context, id int64) (*domain.SecurityQuestion, error)
	RecordAnswer(ctx context.Context, userID, questionID int64, answer string) (*domain.SecurityAnswer, error)
	GetAnswers(ctx context.Context, userID int64) ([]domain.SecurityAnswer, error)
}
