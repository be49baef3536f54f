package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/endurancehub/endurance-hub/internal/application/plans"
	"github.com/endurancehub/endurance-hub/internal/domain"
)

// NutritionPlanRepo stores nutrition plans with the macronutrient ratio
// serialized as a JSONB column.
type NutritionPlanRepo struct {
	db *sql.DB
}

func NewNutritionPlanRepo(db *sql.DB) *NutritionPlanRepo {
	return &NutritionPlanRepo{db: db}
}

const nutritionPlanColumns = `id, athlete_id, specialist_id, title, description, calories_per_day, macronutrient_ratio, start_date, end_date, created_at`

func scanNutritionPlan(s interface{ Scan(dest ...any) error }) (domain.NutritionPlan, error) {
	var (
		p     domain.NutritionPlan
		ratio []byte
	)
	err := s.Scan(
		&p.ID,
		&p.AthleteID,
		&p.SpecialistID,
		&p.Title,
		&p.Description,
		&p.CaloriesPerDay,
		&ratio,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.NutritionPlan{}, err
	}
	if len(ratio) > 0 {
		if err := json.Unmarshal(ratio, &p.MacronutrientRatio); err != nil {
			return domain.NutritionPlan{}, err
		}
	}
	return p, nil
}

func marshalRatio(ratio map[string]float64) (any, error) {
	if ratio == nil {
		return nil, nil
	}
	return json.Marshal(ratio)
}

func (r *NutritionPlanRepo) Create(ctx context.Context, p domain.NutritionPlan) (domain.NutritionPlan, error) {
	ratio, err := marshalRatio(p.MacronutrientRatio)
	if err != nil {
		return domain.NutritionPlan{}, domain.ErrStorage(err)
	}

	const q = `
INSERT INTO nutrition_plans (id, athlete_id, specialist_id, title, description, calories_per_day, macronutrient_ratio, start_date, end_date)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING ` + nutritionPlanColumns + `;
`
	created, err := scanNutritionPlan(r.db.QueryRowContext(ctx, q,
		p.ID, p.AthleteID, p.SpecialistID, p.Title, p.Description, p.CaloriesPerDay, ratio, p.StartDate, p.EndDate,
	))
	if err != nil {
		return domain.NutritionPlan{}, domain.ErrStorage(err)
	}
	return created, nil
}

func (r *NutritionPlanRepo) GetByID(ctx context.Context, id string) (domain.NutritionPlan, error) {
	const q = `
SELECT ` + nutritionPlanColumns + `
FROM nutrition_plans
WHERE id = $1
LIMIT 1;
`
	p, err := scanNutritionPlan(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NutritionPlan{}, domain.ErrNutritionPlanNotFound()
		}
		return domain.NutritionPlan{}, domain.ErrStorage(err)
	}
	return p, nil
}

func (r *NutritionPlanRepo) List(ctx context.Context, f plans.ListFilter) ([]domain.NutritionPlan, error) {
	where, args := planFilterClause(f)
	q := `
SELECT ` + nutritionPlanColumns + `
FROM nutrition_plans
` + where + `ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrStorage(err)
	}
	defer rows.Close()

	out := []domain.NutritionPlan{}
	for rows.Next() {
		p, err := scanNutritionPlan(rows)
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

func (r *NutritionPlanRepo) Update(ctx context.Context, p domain.NutritionPlan) (domain.NutritionPlan, error) {
	ratio, err := marshalRatio(p.MacronutrientRatio)
	if err != nil {
		return domain.NutritionPlan{}, domain.ErrStorage(err)
	}

	const q = `
UPDATE nutrition_plans
SET specialist_id = $2,
    title = $3,
    description = $4,
    calories_per_day = $5,
    macronutrient_ratio = $6,
    start_date = $7,
    end_date = $8
WHERE id = $1
RETURNING ` + nutritionPlanColumns + `;
`
	updated, err := scanNutritionPlan(r.db.QueryRowContext(ctx, q,
		p.ID, p.SpecialistID, p.Title, p.Description, p.CaloriesPerDay, ratio, p.StartDate, p.EndDate,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NutritionPlan{}, domain.ErrNutritionPlanNotFound()
		}
		return domain.NutritionPlan{}, domain.ErrStorage(err)
	}
	return updated, nil
}

func (r *NutritionPlanRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM nutrition_plans WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrStorage(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrNutritionPlanNotFound()
	}
	return nil
}
