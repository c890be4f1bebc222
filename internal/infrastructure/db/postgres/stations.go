package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smartlicense/license-api/internal/core/domain"
)

type StationRepository struct {
	db *sql.DB
}

func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

func (r *StationRepository) Create(ctx context.Context, s *domain.Station) (*domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *s
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO stations (name, num_grounds) VALUES ($1, $2) RETURNING station_id`,
		s.Name, s.NumGrounds).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert station: %w", err)
	}
	return &out, nil
}

func (r *StationRepository) FindByID(ctx context.Context, id int64) (*domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Station
	err := r.db.QueryRowContext(ctx,
		`SELECT station_id, name, num_grounds FROM stations WHERE station_id = $1`, id).
		Scan(&s.ID, &s.Name, &s.NumGrounds)
	if err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	return &s, nil
}

func (r *StationRepository) List(ctx context.Context) ([]domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT station_id, name, num_grounds FROM stations ORDER BY station_id`)
	if err != nil {
		return nil, fmt.Errorf("select stations: %w", err)
	}
	defer rows.Close()

	out := []domain.Station{}
	for rows.Next() {
		var s domain.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.NumGrounds); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update keeps the stored value of every nil field.
func (r *StationRepository) Update(ctx context.Context, id int64, patch domain.StationPatch) (*domain.Station, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var name sql.NullString
	if patch.Name != nil {
		name = sql.NullString{String: *patch.Name, Valid: true}
	}
	var grounds sql.NullInt64
	if patch.NumGrounds != nil {
		grounds = sql.NullInt64{Int64: int64(*patch.NumGrounds), Valid: true}
	}

	var s domain.Station
	err := r.db.QueryRowContext(ctx, `UPDATE stations
		SET name = COALESCE($1, name), num_grounds = COALESCE($2, num_grounds)
		WHERE station_id = $3
		RETURNING station_id, name, num_grounds`, name, grounds, id).
		Scan(&s.ID, &s.Name, &s.NumGrounds)
	if err != nil {
		return nil, notFound(err, domain.ErrStationNotFound)
	}
	return &s, nil
}

func (r *StationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE station_id = $1`, id)
	if err != nil {
		if _, ok := violation(err, codeForeignKeyViolation); ok {
			return fmt.Errorf("station %d is assigned to instructors: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete station: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete station: %w", err)
	}
	if n == 0 {
		return domain.ErrStationNotFound
	}
	return nil
}

// EnsureStations inserts every station whose name is not taken, in one transaction.
func (r *StationRepository) EnsureStations(ctx context.Context, stations []domain.Station) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	inserted := 0
	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		for _, s := range stations {
			res, err := tx.ExecContext(ctx, `INSERT INTO stations (name, num_grounds)
				SELECT $1::varchar, $2::integer
				WHERE NOT EXISTS (SELECT 1 FROM stations WHERE name = $1::varchar)`, s.Name, s.NumGrounds)
			if err != nil {
				return fmt.Errorf("insert station: %w", err)
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
