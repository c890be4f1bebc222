package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartlicense/license-api/internal/core/domain"
)

const userProfileColumns = `user_id, name, surname, date_of_birth::text, gender, nationality, id_number, contact_number, physical_address, race`

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func scanUserProfile(row rowScanner) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := row.Scan(&p.UserID, &p.Name, &p.Surname, &p.DateOfBirth, &p.Gender,
		&p.Nationality, &p.IDNumber, &p.ContactNumber, &p.PhysicalAddress, &p.Race)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func userProfileError(err error) error {
	if constraint, ok := violation(err, codeUniqueViolation); ok {
		if constraint == "user_profiles_id_number_key" {
			return domain.ErrIDNumberTaken
		}
		return domain.ErrUserProfileExists
	}
	if _, ok := violation(err, codeForeignKeyViolation); ok {
		return domain.ErrUserNotFound
	}
	return notFound(err, domain.ErrUserProfileNotFound)
}

func (r *UserProfileRepository) Create(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `INSERT INTO user_profiles
		(user_id, name, surname, date_of_birth, gender, nationality, id_number, contact_number, physical_address, race)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userProfileColumns

	created, err := scanUserProfile(r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Surname, p.DateOfBirth, p.Gender, p.Nationality,
		p.IDNumber, p.ContactNumber, p.PhysicalAddress, p.Race))
	if err != nil {
		return nil, userProfileError(err)
	}
	return created, nil
}

func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p, err := scanUserProfile(r.db.QueryRowContext(ctx,
		`SELECT `+userProfileColumns+` FROM user_profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err, domain.ErrUserProfileNotFound)
	}
	return p, nil
}

func (r *UserProfileRepository) List(ctx context.Context) ([]domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+userProfileColumns+` FROM user_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("select user profiles: %w", err)
	}
	defer rows.Close()

	out := []domain.UserProfile{}
	for rows.Next() {
		p, err := scanUserProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user profile: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *UserProfileRepository) Update(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE user_profiles
		SET name = $2, surname = $3, date_of_birth = $4::date, gender = $5, nationality = $6,
			id_number = $7, contact_number = $8, physical_address = $9, race = $10
		WHERE user_id = $1
		RETURNING ` + userProfileColumns

	updated, err := scanUserProfile(r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Surname, p.DateOfBirth, p.Gender, p.Nationality,
		p.IDNumber, p.ContactNumber, p.PhysicalAddress, p.Race))
	if err != nil {
		return nil, userProfileError(err)
	}
	return updated, nil
}

func (r *UserProfileRepository) Delete(ctx context.Context, userID int64) error {
	return deleteOne(ctx, r.db, `DELETE FROM user_profiles WHERE user_id = $1`, userID, domain.ErrUserProfileNotFound)
}

type InstructorProfileRepository struct {
	db DBTX
}

func NewInstructorProfileRepository(db DBTX) *InstructorProfileRepository {
	return &InstructorProfileRepository{db: db}
}

func (r *InstructorProfileRepository) Create(ctx context.Context, p *domain.InstructorProfile) (*domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO instructor_profiles (user_id, inf_nr, station_id) VALUES ($1, $2, $3)`,
		p.UserID, p.InfNr, p.StationID)
	if err != nil {
		if constraint, ok := violation(err, codeUniqueViolation); ok {
			if constraint == "instructor_profiles_inf_nr_key" {
				return nil, domain.ErrInstructorNumberTaken
			}
			return nil, domain.ErrInstructorProfileExists
		}
		if constraint, ok := violation(err, codeForeignKeyViolation); ok {
			if constraint == "instructor_profiles_station_id_fkey" {
				return nil, domain.ErrStationNotFound
			}
			return nil, domain.ErrUserProfileNotFound
		}
		return nil, fmt.Errorf("insert instructor profile: %w", err)
	}
	out := *p
	return &out, nil
}

func (r *InstructorProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.InstructorProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, inf_nr, station_id FROM instructor_profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.InfNr, &p.StationID)
	if err != nil {
		return nil, notFound(err, domain.ErrInstructorProfileNotFound)
	}
	return &p, nil
}

func (r *InstructorProfileRepository) ExistsByInfNr(ctx context.Context, infNr string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM instructor_profiles WHERE inf_nr = $1)`, infNr).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check inf_nr: %w", err)
	}
	return exists, nil
}

func (r *InstructorProfileRepository) List(ctx context.Context) ([]domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT user_id, inf_nr, station_id FROM instructor_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("select instructor profiles: %w", err)
	}
	defer rows.Close()

	out := []domain.InstructorProfile{}
	for rows.Next() {
		var p domain.InstructorProfile
		if err := rows.Scan(&p.UserID, &p.InfNr, &p.StationID); err != nil {
			return nil, fmt.Errorf("scan instructor profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *InstructorProfileRepository) UpdateInfNr(ctx context.Context, userID int64, infNr string) (*domain.InstructorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.InstructorProfile
	err := r.db.QueryRowContext(ctx,
		`UPDATE instructor_profiles SET inf_nr = $1 WHERE user_id = $2 RETURNING user_id, inf_nr, station_id`,
		infNr, userID).Scan(&p.UserID, &p.InfNr, &p.StationID)
	if err != nil {
		if _, ok := violation(err, codeUniqueViolation); ok {
			return nil, domain.ErrInstructorNumberTaken
		}
		return nil, notFound(err, domain.ErrInstructorProfileNotFound)
	}
	return &p, nil
}

func (r *InstructorProfileRepository) Delete(ctx context.Context, userID int64) error {
	return deleteOne(ctx, r.db, `DELETE FROM instructor_profiles WHERE user_id = $1`, userID, domain.ErrInstructorProfileNotFound)
}

const learnerProfileColumns = `user_id, learner_status, test_booking_date::text, registered_on, license_code`

type LearnerProfileRepository struct {
	db DBTX
}

func NewLearnerProfileRepository(db DBTX) *LearnerProfileRepository {
	return &LearnerProfileRepository{db: db}
}

func scanLearnerProfile(row rowScanner) (*domain.LearnerProfile, error) {
	var (
		p          domain.LearnerProfile
		bookingDay sql.NullString
		code       sql.NullString
	)
	if err := row.Scan(&p.UserID, &p.LearnerStatus, &bookingDay, &p.RegisteredOn, &code); err != nil {
		return nil, err
	}
	p.TestBookingDate = stringPtr(bookingDay)
	p.LicenseCode = stringPtr(code)
	p.RegisteredOn = p.RegisteredOn.UTC()
	return &p, nil
}

func (r *LearnerProfileRepository) Create(ctx context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `INSERT INTO learner_profiles (user_id, learner_status, test_booking_date, registered_on, license_code)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING ` + learnerProfileColumns

	created, err := scanLearnerProfile(r.db.QueryRowContext(ctx, query,
		p.UserID, p.LearnerStatus, nullString(p.TestBookingDate), p.RegisteredOn, nullString(p.LicenseCode)))
	if err != nil {
		if _, ok := violation(err, codeUniqueViolation); ok {
			return nil, domain.ErrLearnerProfileExists
		}
		if _, ok := violation(err, codeForeignKeyViolation); ok {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert learner profile: %w", err)
	}
	return created, nil
}

func (r *LearnerProfileRepository) FindByUserID(ctx context.Context, userID int64) (*domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p, err := scanLearnerProfile(r.db.QueryRowContext(ctx,
		`SELECT `+learnerProfileColumns+` FROM learner_profiles WHERE user_id = $1`, userID))
	if err != nil {
		return nil, notFound(err, domain.ErrLearnerProfileNotFound)
	}
	return p, nil
}

func (r *LearnerProfileRepository) List(ctx context.Context) ([]domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+learnerProfileColumns+` FROM learner_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("select learner profiles: %w", err)
	}
	defer rows.Close()

	out := []domain.LearnerProfile{}
	for rows.Next() {
		p, err := scanLearnerProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan learner profile: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *LearnerProfileRepository) Update(ctx context.Context, p *domain.LearnerProfile) (*domain.LearnerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE learner_profiles
		SET learner_status = $2, test_booking_date = $3::date, registered_on = $4, license_code = $5
		WHERE user_id = $1
		RETURNING ` + learnerProfileColumns

	updated, err := scanLearnerProfile(r.db.QueryRowContext(ctx, query,
		p.UserID, p.LearnerStatus, nullString(p.TestBookingDate), p.RegisteredOn, nullString(p.LicenseCode)))
	if err != nil {
		return nil, notFound(err, domain.ErrLearnerProfileNotFound)
	}
	return updated, nil
}

func (r *LearnerProfileRepository) Delete(ctx context.Context, userID int64) error {
	return deleteOne(ctx, r.db, `DELETE FROM learner_profiles WHERE user_id = $1`, userID, domain.ErrLearnerProfileNotFound)
}

func deleteOne(ctx context.Context, db DBTX, query string, id int64, missing error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if n == 0 {
		return missing
	}
	return nil
}
