package dto

import (
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type CreateTrainingPlanRequest struct {
	AthleteID      string    `json:"athlete_id" validate:"required"`
	SpecialistID   string    `json:"specialist_id"`
	Title          string    `json:"title" validate:"required"`
	Description    *string   `json:"description,omitempty"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	EndDate        time.Time `json:"end_date" validate:"required"`
	IntensityLevel string    `json:"intensity_level" validate:"required,oneof=LOW MEDIUM HIGH"`
}

func (r *CreateTrainingPlanRequest) Validate() error {
	return checkStruct(r)
}

type UpdateTrainingPlanRequest struct {
	SpecialistID   *string    `json:"specialist_id,omitempty"`
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IntensityLevel *string    `json:"intensity_level,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

func (r *UpdateTrainingPlanRequest) Validate() error {
	return checkStruct(r)
}

type TrainingPlanView struct {
	ID             string    `json:"id"`
	AthleteID      string    `json:"athlete_id"`
	SpecialistID   string    `json:"specialist_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IntensityLevel string    `json:"intensity_level"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewTrainingPlanView(p domain.TrainingPlan) TrainingPlanView {
	return TrainingPlanView{
		ID:             p.ID,
		AthleteID:      p.AthleteID,
		SpecialistID:   p.SpecialistID,
		Title:          p.Title,
		Description:    p.Description,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		IntensityLevel: p.IntensityLevel,
		CreatedAt:      p.CreatedAt,
	}
}

func NewTrainingPlanViews(in []domain.TrainingPlan) []TrainingPlanView {
	out := make([]TrainingPlanView, 0, len(in))
	for _, p := range in {
		out = append(out, NewTrainingPlanView(p))
	}
	return out
}

type CreateNutritionPlanRequest struct {
	AthleteID          string             `json:"athlete_id" validate:"required"`
	SpecialistID       string             `json:"specialist_id"`
	Title              string             `json:"title" validate:"required"`
	Description        *string            `json:"description,omitempty"`
	CaloriesPerDay     *int               `json:"calories_per_day,omitempty" validate:"omitempty,gt=0"`
	MacronutrientRatio map[string]float64 `json:"macronutrient_ratio,omitempty"`
	StartDate          time.Time          `json:"start_date" validate:"required"`
	EndDate            time.Time          `json:"end_date" validate:"required"`
}

func (r *CreateNutritionPlanRequest) Validate() error {
	return checkStruct(r)
}

type UpdateNutritionPlanRequest struct {
	SpecialistID       *string            `json:"specialist_id,omitempty"`
	Title              *string            `json:"title,omitempty"`
	Description        *string            `json:"description,omitempty"`
	CaloriesPerDay     *int               `json:"calories_per_day,omitempty" validate:"omitempty,gt=0"`
	MacronutrientRatio map[string]float64 `json:"macronutrient_ratio,omitempty"`
	StartDate          *time.Time         `json:"start_date,omitempty"`
	EndDate            *time.Time         `json:"end_date,omitempty"`
}

func (r *UpdateNutritionPlanRequest) Validate() error {
	return checkStruct(r)
}

type NutritionPlanView struct {
	ID                 string             `json:"id"`
	AthleteID          string             `json:"athlete_id"`
	SpecialistID       string             `json:"specialist_id"`
	Title              string             `json:"title"`
	Description        *string            `json:"description,omitempty"`
	CaloriesPerDay     *int               `json:"calories_per_day,omitempty"`
	MacronutrientRatio map[string]float64 `json:"macronutrient_ratio,omitempty"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            time.Time          `json:"end_date"`
	CreatedAt          time.Time          `json:"created_at"`
}

func NewNutritionPlanView(p domain.NutritionPlan) NutritionPlanView {
	return NutritionPlanView{
		ID:                 p.ID,
		AthleteID:          p.AthleteID,
		SpecialistID:       p.SpecialistID,
		Title:              p.Title,
		Description:        p.Description,
		CaloriesPerDay:     p.CaloriesPerDay,
		MacronutrientRatio: p.MacronutrientRatio,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		CreatedAt:          p.CreatedAt,
	}
}

func NewNutritionPlanViews(in []domain.NutritionPlan) []NutritionPlanView {
	out := make([]NutritionPlanView, 0, len(in))
	for _, p := range in {
		out = append(out, NewNutritionPlanView(p))
	}
	return out
}
