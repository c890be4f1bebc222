package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartlicense/license-api/internal/core/domain"
)

type recoveryFixture struct {
	svc       *RecoveryService
	users     *stubUserRepo
	questions *stubQuestionRepo
	answers   *stubAnswerRepo
}

func newRecoveryFixture(t *testing.T) recoveryFixture {
	t.Helper()
	f := recoveryFixture{
		users:     newStubUserRepo(),
		questions: &stubQuestionRepo{},
		answers:   &stubAnswerRepo{},
	}
	f.svc = NewRecoveryService(f.questions, f.answers, f.users, prefixHasher{}, zerolog.Nop())
	if _, err := f.svc.SeedCatalog(context.Background()); err != nil {
		t.Fatalf("SeedCatalog returned error: %v", err)
	}
	return f
}

func TestRecoveryService_SeedCatalog_Idempotent(t *testing.T) {
	f := newRecoveryFixture(t)

	n, err := f.svc.SeedCatalog(context.Background())
	if err != nil {
		t.Fatalf("SeedCatalog returned error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no inserts on second seed, got %d", n)
	}

	qs, _ := f.svc.ListQuestions(context.Background())
	if len(qs) != len(domain.DefaultSecurityQuestions) {
		t.Fatalf("expected %d questions, got %d", len(domain.DefaultSecurityQuestions), len(qs))
	}
}

func TestRecoveryService_SeedCatalog_FillsGaps(t *testing.T) {
	questions := &stubQuestionRepo{questions: []domain.SecurityQuestion{
		{ID: 1, Question: domain.DefaultSecurityQuestions[2]},
		{ID: 2, Question: "A custom question"},
	}}
	svc := NewRecoveryService(questions, &stubAnswerRepo{}, newStubUserRepo(), prefixHasher{}, zerolog.Nop())

	n, err := svc.SeedCatalog(context.Background())
	if err != nil {
		t.Fatalf("SeedCatalog returned error: %v", err)
	}
	if n != len(domain.DefaultSecurityQuestions)-1 {
		t.Fatalf("expected %d inserts, got %d", len(domain.DefaultSecurityQuestions)-1, n)
	}
	if len(questions.questions) != len(domain.DefaultSecurityQuestions)+1 {
		t.Fatalf("expected custom question to be kept, got %d questions", len(questions.questions))
	}
}

func TestRecoveryService_RecordAnswer(t *testing.T) {
	f := newRecoveryFixture(t)
	ctx := context.Background()
	u, _ := f.users.Create(ctx, &domain.User{Username: "u", Email: "u@example.com", Role: domain.RoleLearner})

	a, err := f.svc.RecordAnswer(ctx, u.ID, 1, "Rex")
	if err != nil {
		t.Fatalf("RecordAnswer returned error: %v", err)
	}
	if a.AnswerHash == "Rex" {
		t.Fatalf("expected answer to be hashed")
	}

	if _, err := f.svc.RecordAnswer(ctx, u.ID, 1, "Max"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for second answer, got %v", err)
	}
	if _, err := f.svc.RecordAnswer(ctx, u.ID, 2, "Beetle"); err != nil {
		t.Fatalf("expected answer to a different question to succeed, got %v", err)
	}

	answers, err := f.svc.GetAnswers(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetAnswers returned error: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
}

func TestRecoveryService_RecordAnswer_MissingReferences(t *testing.T) {
	f := newRecoveryFixture(t)
	ctx := context.Background()
	u, _ := f.users.Create(ctx, &domain.User{Username: "u", Email: "u@example.com"})

	if _, err := f.svc.RecordAnswer(ctx, 999, 1, "Rex"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := f.svc.RecordAnswer(ctx, u.ID, 999, "Rex"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if _, err := f.svc.RecordAnswer(ctx, u.ID, 1, "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank answer, got %v", err)
	}
}

func TestRecoveryService_GetAnswers_Absence(t *testing.T) {
	f := newRecoveryFixture(t)
	ctx := context.Background()
	u, _ := f.users.Create(ctx, &domain.User{Username: "u", Email: "u@example.com"})

	answers, err := f.svc.GetAnswers(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetAnswers returned error: %v", err)
	}
	if answers == nil || len(answers) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", answers)
	}

	if _, err := f.svc.GetAnswers(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
