package plans

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type NutritionService struct {
	plans    NutritionRepo
	athletes AthleteRepo
	users    UserRepo
}

func NewNutritionService(plans NutritionRepo, athletes AthleteRepo, users UserRepo) *NutritionService {
	return &NutritionService{plans: plans, athletes: athletes, users: users}
}

type CreateNutritionInput struct {
	AthleteID          string
	SpecialistID       string
	Title              string
	Description        *string
	CaloriesPerDay     *int
	MacronutrientRatio map[string]float64
	StartDate          time.Time
	EndDate            time.Time
}

// validMacroRatio accepts an empty ratio or one whose shares sum to 1
// within rounding tolerance.
func validMacroRatio(ratio map[string]float64) bool {
	if len(ratio) == 0 {
		return true
	}
	var sum float64
	for _, v := range ratio {
		if v < 0 {
			return false
		}
		sum += v
	}
	return math.Abs(sum-1.0) < 0.01
}

func (s *NutritionService) Create(ctx context.Context, actor Actor, in CreateNutritionInput) (domain.NutritionPlan, error) {
	if in.Title == "" {
		return domain.NutritionPlan{}, domain.ErrMissingField("title")
	}
	if in.EndDate.Before(in.StartDate) {
		return domain.NutritionPlan{}, domain.ErrInvalidField("endDate", "must not be before startDate")
	}
	if in.CaloriesPerDay != nil && *in.CaloriesPerDay <= 0 {
		return domain.NutritionPlan{}, domain.ErrInvalidField("caloriesPerDay", "must be positive")
	}
	if !validMacroRatio(in.MacronutrientRatio) {
		return domain.NutritionPlan{}, domain.ErrInvalidField("macronutrientRatio", "shares must be non-negative and sum to 1")
	}

	if _, err := s.athletes.GetByID(ctx, in.AthleteID); err != nil {
		return domain.NutritionPlan{}, err
	}
	specialistID, err := resolveSpecialist(ctx, s.users, actor, in.SpecialistID)
	if err != nil {
		return domain.NutritionPlan{}, err
	}

	return s.plans.Create(ctx, domain.NutritionPlan{
		ID:                 uuid.NewString(),
		AthleteID:          in.AthleteID,
		SpecialistID:       specialistID,
		Title:              in.Title,
		Description:        in.Description,
		CaloriesPerDay:     in.CaloriesPerDay,
		MacronutrientRatio: in.MacronutrientRatio,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
	})
}

func (s *NutritionService) List(ctx context.Context, actor Actor, f ListFilter) ([]domain.NutritionPlan, error) {
	scoped, any, err := scopeFilter(ctx, s.athletes, actor, f)
	if err != nil {
		return nil, err
	}
	if !any {
		return []domain.NutritionPlan{}, nil
	}
	return s.plans.List(ctx, scoped)
}

func (s *NutritionService) Get(ctx context.Context, actor Actor, id string) (domain.NutritionPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.NutritionPlan{}, err
	}
	if err := ensureAccess(ctx, s.athletes, actor, p.AthleteID, p.SpecialistID); err != nil {
		return domain.NutritionPlan{}, err
	}
	return p, nil
}

type UpdateNutritionInput struct {
	Title              *string
	Description        *string
	CaloriesPerDay     *int
	MacronutrientRatio map[string]float64
	StartDate          *time.Time
	EndDate            *time.Time
	SpecialistID       *string
}

func (s *NutritionService) Update(ctx context.Context, actor Actor, id string, in UpdateNutritionInput) (domain.NutritionPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.NutritionPlan{}, err
	}
	if err := ensureAccess(ctx, s.athletes, actor, p.AthleteID, p.SpecialistID); err != nil {
		return domain.NutritionPlan{}, err
	}

	if in.SpecialistID != nil && *in.SpecialistID != p.SpecialistID {
		if !actor.isAdmin() {
			return domain.NutritionPlan{}, domain.ErrForbidden("Only administrators can reassign specialists")
		}
		u, err := s.users.GetByID(ctx, *in.SpecialistID)
		if err != nil || u.Role != string(domain.RoleSpecialist) {
			return domain.NutritionPlan{}, domain.ErrUnprocessable("Invalid specialistId")
		}
		p.SpecialistID = *in.SpecialistID
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.CaloriesPerDay != nil {
		if *in.CaloriesPerDay <= 0 {
			return domain.NutritionPlan{}, domain.ErrInvalidField("caloriesPerDay", "must be positive")
		}
		p.CaloriesPerDay = in.CaloriesPerDay
	}
	if in.MacronutrientRatio != nil {
		if !validMacroRatio(in.MacronutrientRatio) {
			return domain.NutritionPlan{}, domain.ErrInvalidField("macronutrientRatio", "shares must be non-negative and sum to 1")
		}
		p.MacronutrientRatio = in.MacronutrientRatio
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}
	if p.EndDate.Before(p.StartDate) {
		return domain.NutritionPlan{}, domain.ErrInvalidField("endDate", "must not be before startDate")
	}

	return s.plans.Update(ctx, p)
}

func (s *NutritionService) Delete(ctx context.Context, actor Actor, id string) error {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureAccess(ctx, s.athletes, actor, p.AthleteID, p.SpecialistID); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}
