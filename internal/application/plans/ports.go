package plans

import (
	"context"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// ListFilter narrows plan queries. Empty fields match everything.
type ListFilter struct {
	AthleteID    string
	SpecialistID string
}

type TrainingRepo interface {
	Create(ctx context.Context, p domain.TrainingPlan) (domain.TrainingPlan, error)
	GetByID(ctx context.Context, id string) (domain.TrainingPlan, error)
	List(ctx context.Context, f ListFilter) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, p domain.TrainingPlan) (domain.TrainingPlan, error)
	Delete(ctx context.Context, id string) error
}

type NutritionRepo interface {
	Create(ctx context.Context, p domain.NutritionPlan) (domain.NutritionPlan, error)
	GetByID(ctx context.Context, id string) (domain.NutritionPlan, error)
	List(ctx context.Context, f ListFilter) ([]domain.NutritionPlan, error)
	Update(ctx context.Context, p domain.NutritionPlan) (domain.NutritionPlan, error)
	Delete(ctx context.Context, id string) error
}

type AthleteRepo interface {
	GetByID(ctx context.Context, id string) (domain.Athlete, error)
	GetByUserID(ctx context.Context, userID string) (domain.Athlete, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}
