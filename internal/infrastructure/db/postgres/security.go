package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartlicense/license-api/internal/core/domain"
)

type SecurityQuestionRepository struct {
	db *sql.DB
}

func NewSecurityQuestionRepository(db *sql.DB) *SecurityQuestionRepository {
	return &SecurityQuestionRepository{db: db}
}

func (r *SecurityQuestionRepository) List(ctx context.Context) ([]domain.SecurityQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, question FROM security_questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	defer rows.Close()

	out := []domain.SecurityQuestion{}
	for rows.Next() {
		var q domain.SecurityQuestion
		if err := rows.Scan(&q.ID, &q.Question); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *SecurityQuestionRepository) FindByID(ctx context.Context, id int64) (*domain.SecurityQuestion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var q domain.SecurityQuestion
	err := r.db.QueryRowContext(ctx, `SELECT id, question FROM security_questions WHERE id = $1`, id).Scan(&q.ID, &q.Question)
	if err != nil {
		return nil, notFound(err, domain.ErrQuestionNotFound)
	}
	return &q, nil
}

// EnsureQuestions inserts the missing texts in one transaction.
func (r *SecurityQuestionRepository) EnsureQuestions(ctx context.Context, texts []string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	inserted := 0
	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		for _, text := range texts {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO security_questions (question) VALUES ($1) ON CONFLICT (question) DO NOTHING`, text)
			if err != nil {
				return fmt.Errorf("insert question: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

type SecurityAnswerRepository struct {
	db DBTX
}

func NewSecurityAnswerRepository(db DBTX) *SecurityAnswerRepository {
	return &SecurityAnswerRepository{db: db}
}

func (r *SecurityAnswerRepository) Create(ctx context.Context, a *domain.SecurityAnswer) (*domain.SecurityAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `INSERT INTO user_security_answers (user_id, question_id, answer_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	out := *a
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.QuestionID, a.AnswerHash, a.CreatedAt).Scan(&out.ID)
	if err != nil {
		if _, ok := violation(err, codeUniqueViolation); ok {
			return nil, domain.ErrAnswerExists
		}
		if constraint, ok := violation(err, codeForeignKeyViolation); ok {
			if constraint == "user_security_answers_user_id_fkey" {
				return nil, domain.ErrUserNotFound
			}
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("insert answer: %w", err)
	}
	return &out, nil
}

func (r *SecurityAnswerRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SecurityAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT id, user_id, question_id, answer_hash, created_at
		FROM user_security_answers WHERE user_id = $1 ORDER BY question_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}
	defer rows.Close()

	out := []domain.SecurityAnswer{}
	for rows.Next() {
		var a domain.SecurityAnswer
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.AnswerHash, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
