package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/smartlicense/license-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects through the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}

// Store implements ports.Store on a PostgreSQL database.
type Store struct {
	db *sql.DB

	users       *UserRepository
	bookings    *BookingRepository
	questions   *SecurityQuestionRepository
	answers     *SecurityAnswerRepository
	stations    *StationRepository
	profiles    *UserProfileRepository
	instructors *InstructorProfileRepository
	learners    *LearnerProfileRepository
}

var _ ports.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		users:       NewUserRepository(db),
		bookings:    NewBookingRepository(db),
		questions:   NewSecurityQuestionRepository(db),
		answers:     NewSecurityAnswerRepository(db),
		stations:    NewStationRepository(db),
		profiles:    NewUserProfileRepository(db),
		instructors: NewInstructorProfileRepository(db),
		learners:    NewLearnerProfileRepository(db),
	}
}

func (s *Store) Users() ports.UserRepository { return s.users }
func (s *Store) Bookings() ports.BookingRepository { return s.bookings }
func (s *Store) SecurityQuestions() ports.SecurityQuestionRepository { return s.questions }
func (s *Store) SecurityAnswers() ports.SecurityAnswerRepository { return s.answers }
func (s *Store) Stations() ports.StationRepository { return s.stations }
func (s *Store) UserProfiles() ports.UserProfileRepository { return s.profiles }
func (s *Store) InstructorProfiles() ports.InstructorProfileRepository { return s.instructors }
func (s *Store) LearnerProfiles() ports.LearnerProfileRepository { return s.learners }

// Migrate applies the embedded goose migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, "migrations")
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(_ context.Context) error {
	return s.db.Close()
}

// violation returns the constraint name when err is a PostgreSQL error with
// the given SQLSTATE code.
func violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
