package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type AthleteRepo struct {
	db *sql.DB
}

func NewAthleteRepo(db *sql.DB) *AthleteRepo {
	return &AthleteRepo{db: db}
}

const athleteColumns = `id, user_id, date_of_birth, height_cm, weight_kg, resting_heart_rate, bio, created_at`

func scanAthlete(s interface{ Scan(dest ...any) error }) (domain.Athlete, error) {
	var a domain.Athlete
	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.DateOfBirth,
		&a.HeightCm,
		&a.WeightKg,
		&a.RestingHeartRate,
		&a.Bio,
		&a.CreatedAt,
	)
	return a, err
}

func (r *AthleteRepo) Create(ctx context.Context, a domain.Athlete) (domain.Athlete, error) {
	if a.ID == "" {
		return domain.Athlete{}, domain.ErrMissingField("id")
	}
	if a.UserID == "" {
		return domain.Athlete{}, domain.ErrMissingField("user_id")
	}

	const q = `
INSERT INTO athletes (id, user_id, date_of_birth, height_cm, weight_kg, resting_heart_rate, bio)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING ` + athleteColumns + `;
`
	created, err := scanAthlete(r.db.QueryRowContext(ctx, q,
		a.ID, a.UserID, a.DateOfBirth, a.HeightCm, a.WeightKg, a.RestingHeartRate, a.Bio,
	))
	if err != nil {
		if isDuplicate(err) {
			return domain.Athlete{}, domain.ErrAthleteProfileExists()
		}
		return domain.Athlete{}, domain.ErrStorage(err)
	}
	return created, nil
}

func (r *AthleteRepo) GetByID(ctx context.Context, id string) (domain.Athlete, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Athlete{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + athleteColumns + `
FROM athletes
WHERE id = $1
LIMIT 1;
`
	a, err := scanAthlete(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Athlete{}, domain.ErrAthleteNotFound()
		}
		return domain.Athlete{}, domain.ErrStorage(err)
	}
	return a, nil
}

func (r *AthleteRepo) GetByUserID(ctx context.Context, userID string) (domain.Athlete, error) {
	const q = `
SELECT ` + athleteColumns + `
FROM athletes
WHERE user_id = $1
LIMIT 1;
`
	a, err := scanAthlete(r.db.QueryRowContext(ctx, q, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Athlete{}, domain.ErrAthleteNotFound()
		}
		return domain.Athlete{}, domain.ErrStorage(err)
	}
	return a, nil
}

func (r *AthleteRepo) List(ctx context.Context, filterUserID string) ([]domain.Athlete, error) {
	q := `
SELECT ` + athleteColumns + `
FROM athletes
`
	var args []any
	if filterUserID != "" {
		q += `WHERE user_id = $1
`
		args = append(args, filterUserID)
	}
	q += `ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrStorage(err)
	}
	defer rows.Close()

	out := []domain.Athlete{}
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, domain.ErrStorage(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorage(err)
	}
	return out, nil
}

func (r *AthleteRepo) Update(ctx context.Context, a domain.Athlete) (domain.Athlete, error) {
	const q = `
UPDATE athletes
SET date_of_birth = $2,
    height_cm = $3,
    weight_kg = $4,
    resting_heart_rate = $5,
    bio = $6
WHERE id = $1
RETURNING ` + athleteColumns + `;
`
	updated, err := scanAthlete(r.db.QueryRowContext(ctx, q,
		a.ID, a.DateOfBirth, a.HeightCm, a.WeightKg, a.RestingHeartRate, a.Bio,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Athlete{}, domain.ErrAthleteNotFound()
		}
		return domain.Athlete{}, domain.ErrStorage(err)
	}
	return updated, nil
}

func (r *AthleteRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM athletes WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrStorage(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAthleteNotFound()
	}
	return nil
}
