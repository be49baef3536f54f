package plans

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type TrainingService struct {
	plans    TrainingRepo
	athletes AthleteRepo
	users    UserRepo
}

func NewTrainingService(plans TrainingRepo, athletes AthleteRepo, users UserRepo) *TrainingService {
	return &TrainingService{plans: plans, athletes: athletes, users: users}
}

type CreateTrainingInput struct {
	AthleteID      string
	SpecialistID   string
	Title          string
	Description    *string
	StartDate      time.Time
	EndDate        time.Time
	IntensityLevel string
}

func (s *TrainingService) Create(ctx context.Context, actor Actor, in CreateTrainingInput) (domain.TrainingPlan, error) {
	if in.Title == "" {
		return domain.TrainingPlan{}, domain.ErrMissingField("title")
	}
	if !domain.IsValidIntensity(in.IntensityLevel) {
		return domain.TrainingPlan{}, domain.ErrInvalidField("intensityLevel", "must be LOW, MEDIUM or HIGH")
	}
	if in.EndDate.Before(in.StartDate) {
		return domain.TrainingPlan{}, domain.ErrInvalidField("endDate", "must not be before startDate")
	}

	if _, err := s.athletes.GetByID(ctx, in.AthleteID); err != nil {
		return domain.TrainingPlan{}, err
	}
	specialistID, err := resolveSpecialist(ctx, s.users, actor, in.SpecialistID)
	if err != nil {
		return domain.TrainingPlan{}, err
	}

	return s.plans.Create(ctx, domain.TrainingPlan{
		ID:             uuid.NewString(),
		AthleteID:      in.AthleteID,
		SpecialistID:   specialistID,
		Title:          in.Title,
		Description:    in.Description,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		IntensityLevel: in.IntensityLevel,
	})
}

func (s *TrainingService) List(ctx context.Context, actor Actor, f ListFilter) ([]domain.TrainingPlan, error) {
	scoped, any, err := scopeFilter(ctx, s.athletes, actor, f)
	if err != nil {
		return nil, err
	}
	if !any {
		return []domain.TrainingPlan{}, nil
	}
	return s.plans.List(ctx, scoped)
}

func (s *TrainingService) Get(ctx context.Context, actor Actor, id string) (domain.TrainingPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	if err := ensureAccess(ctx, s.athletes, actor, p.AthleteID, p.SpecialistID); err != nil {
		return domain.TrainingPlan{}, err
	}
	return p, nil
}

type UpdateTrainingInput struct {
	Title          *string
	Description    *string
	StartDate      *time.Time
	EndDate        *time.Time
	IntensityLevel *string
	SpecialistID   *string
}

func (s *TrainingService) Update(ctx context.Context, actor Actor, id string, in UpdateTrainingInput) (domain.TrainingPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.TrainingPlan{}, err
	}
	if err := ensureAccess(ctx, s.athletes, actor, p.AthleteID, p.SpecialistID); err != nil {
		return domain.TrainingPlan{}, err
	}

	if in.SpecialistID != nil && *in.SpecialistID != p.SpecialistID {
		if !actor.isAdmin() {
			return domain.TrainingPlan{}, domain.ErrForbidden("Only administrators can reassign specialists")
		}
		u, err := s.users.GetByID(ctx, *in.SpecialistID)
		if err != nil || u.Role != string(domain.RoleSpecialist) {
			return domain.TrainingPlan{}, domain.ErrUnprocessable("Invalid specialistId")
		}
		p.SpecialistID = *in.SpecialistID
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}
	if in.IntensityLevel != nil {
		if !domain.IsValidIntensity(*in.IntensityLevel) {
			return domain.TrainingPlan{}, domain.ErrInvalidField("intensityLevel", "must be LOW, MEDIUM or HIGH")
		}
		p.IntensityLevel = *in.IntensityLevel
	}
	if p.EndDate.Before(p.StartDate) {
		return domain.TrainingPlan{}, domain.ErrInvalidField("endDate", "must not be before startDate")
	}

	return s.plans.Update(ctx, p)
}

func (s *TrainingService) Delete(ctx context.Context, actor Actor, id string) error {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureAccess(ctx, s.athletes, actor, p.AthleteID, p.SpecialistID); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}
