package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// test_date is read back as text so it round-trips as YYYY-MM-DD.
const bookingColumns = `booking_id, learner_id, instructor_id, station_id, test_date::text, result, booking_date, license_code, registered_on`

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b    domain.Booking
		code sql.NullString
	)
	err := row.Scan(&b.ID, &b.LearnerID, &b.InstructorID, &b.StationID, &b.TestDate,
		&b.Result, &b.BookingDate, &code, &b.RegisteredOn)
	if err != nil {
		return nil, err
	}
	b.LicenseCode = stringPtr(code)
	b.BookingDate = b.BookingDate.UTC()
	b.RegisteredOn = b.RegisteredOn.UTC()
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `INSERT INTO learner_test_bookings
		(learner_id, instructor_id, station_id, test_date, result, booking_date, license_code, registered_on)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	created, err := scanBooking(r.db.QueryRowContext(ctx, query,
		b.LearnerID, b.InstructorID, b.StationID, b.TestDate, string(b.Result),
		b.BookingDate, nullString(b.LicenseCode), b.RegisteredOn))
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + bookingColumns + ` FROM learner_test_bookings WHERE booking_id = $1`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := bookingWhere(f)
	query := `SELECT ` + bookingColumns + ` FROM learner_test_bookings` + where + ` ORDER BY booking_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// Update writes only the patched columns in a single statement.
func (r *BookingRepository) Update(ctx context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set, args := bookingSet(patch)
	args = append(args, id)
	query := `UPDATE learner_test_bookings SET ` + set +
		` WHERE booking_id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return b, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM learner_test_bookings WHERE booking_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// placeholders accumulates positional arguments for a dynamically built clause.
type placeholders struct {
	parts []string
	args  []any
}

func (p *placeholders) add(expr string, arg any) {
	p.args = append(p.args, arg)
	p.parts = append(p.parts, strings.Replace(expr, "?", "$"+strconv.Itoa(len(p.args)), 1))
}

func bookingWhere(f ports.BookingFilter) (string, []any) {
	var p placeholders
	if f.LearnerID != nil {
		p.add("learner_id = ?", *f.LearnerID)
	}
	if f.TestDate != "" {
		p.add("test_date = ?::date", f.TestDate)
	}
	if f.Result != "" {
		p.add("result = ?", string(f.Result))
	}
	if f.NotResult != "" {
		p.add("result <> ?", string(f.NotResult))
	}
	if len(p.parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(p.parts, " AND "), p.args
}

func bookingSet(patch domain.BookingPatch) (string, []any) {
	var p placeholders
	if patch.LearnerID != nil {
		p.add("learner_id = ?", *patch.LearnerID)
	}
	if patch.InstructorID != nil {
		p.add("instructor_id = ?", *patch.InstructorID)
	}
	if patch.StationID != nil {
		p.add("station_id = ?", *patch.StationID)
	}
	if patch.TestDate != nil {
		p.add("test_date = ?::date", *patch.TestDate)
	}
	if patch.Result != nil {
		p.add("result = ?", string(*patch.Result))
	}
	if patch.BookingDate != nil {
		p.add("booking_date = ?", *patch.BookingDate)
	}
	if patch.LicenseCode != nil {
		p.add("license_code = ?", *patch.LicenseCode)
	}
	if patch.RegisteredOn != nil {
		p.add("registered_on = ?", *patch.RegisteredOn)
	}
	return strings.Join(p.parts, ", "), p.args
}
