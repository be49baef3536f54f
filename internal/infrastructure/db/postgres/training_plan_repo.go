package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/endurancehub/endurance-hub/internal/application/plans"
	"github.com/endurancehub/endurance-hub/internal/domain"
)

type TrainingPlanRepo struct {
	db *sql.DB
}

func NewTrainingPlanRepo(db *sql.DB) *TrainingPlanRepo {
	return &TrainingPlanRepo{db: db}
}

const trainingPlanColumns = `id, athlete_id, specialist_id, title, description, start_date, end_date, intensity_level, created_at`

func scanTrainingPlan(s interface{ Scan(dest ...any) error }) (domain.TrainingPlan, error) {
	var p domain.TrainingPlan
	err := s.Scan(
		&p.ID,
		&p.AthleteID,
		&p.SpecialistID,
		&p.Title,
		&p.Description,
		&p.StartDate,
		&p.EndDate,
		&p.IntensityLevel,
		&p.CreatedAt,
	)
	return p, err
}

func (r *TrainingPlanRepo) Create(ctx context.Context, p domain.TrainingPlan) (domain.TrainingPlan, error) {
	const q = `
INSERT INTO training_plans (id, athlete_id, specialist_id, title, description, start_date, end_date, intensity_level)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + trainingPlanColumns + `;
`
	created, err := scanTrainingPlan(r.db.QueryRowContext(ctx, q,
		p.ID, p.AthleteID, p.SpecialistID, p.Title, p.Description, p.StartDate, p.EndDate, p.IntensityLevel,
	))
	if err != nil {
		return domain.TrainingPlan{}, domain.ErrStorage(err)
	}
	return created, nil
}

func (r *TrainingPlanRepo) GetByID(ctx context.Context, id string) (domain.TrainingPlan, error) {
	const q = `
SELECT ` + trainingPlanColumns + `
FROM training_plans
WHERE id = $1
LIMIT 1;
`
	p, err := scanTrainingPlan(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrainingPlan{}, domain.ErrTrainingPlanNotFound()
		}
		return domain.TrainingPlan{}, domain.ErrStorage(err)
	}
	return p, nil
}

// planFilterClause builds the WHERE tail shared by both plan tables.
func planFilterClause(f plans.ListFilter) (string, []any) {
	var (
		where string
		args  []any
	)
	if f.AthleteID != "" {
		args = append(args, f.AthleteID)
		where += fmt.Sprintf("WHERE athlete_id = $%d\n", len(args))
	}
	if f.SpecialistID != "" {
		args = append(args, f.SpecialistID)
		kw := "WHERE"
		if where != "" {
			kw = "AND"
		}
		where += fmt.Sprintf("%s specialist_id = $%d\n", kw, len(args))
	}
	return where, args
}

func (r *TrainingPlanRepo) List(ctx context.Context, f plans.ListFilter) ([]domain.TrainingPlan, error) {
	where, args := planFilterClause(f)
	q := `
SELECT ` + trainingPlanColumns + `
FROM training_plans
` + where + `ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrStorage(err)
	}
	defer rows.Close()

	out := []domain.TrainingPlan{}
	for rows.Next() {
		p, err := scanTrainingPlan(rows)
		if err != nil {
			return nil, domain.ErrStorage(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorage(err)
	}
	return out, nil
}

func (r *TrainingPlanRepo) Update(ctx context.Context, p domain.TrainingPlan) (domain.TrainingPlan, error) {
	const q = `
UPDATE training_plans
SET specialist_id = $2,
    title = $3,
    description = $4,
    start_date = $5,
    end_date = $6,
    intensity_level = $7
WHERE id = $1
RETURNING ` + trainingPlanColumns + `;
`
	updated, err := scanTrainingPlan(r.db.QueryRowContext(ctx, q,
		p.ID, p.SpecialistID, p.Title, p.Description, p.StartDate, p.EndDate, p.IntensityLevel,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrainingPlan{}, domain.ErrTrainingPlanNotFound()
		}
		return domain.TrainingPlan{}, domain.ErrStorage(err)
	}
	return updated, nil
}

func (r *TrainingPlanRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM training_plans WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrStorage(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrTrainingPlanNotFound()
	}
	return nil
}
