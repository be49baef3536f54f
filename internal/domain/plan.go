package domain

import "time"

type Intensity string

const (
	IntensityLow    Intensity = "LOW"
	IntensityMedium Intensity = "MEDIUM"
	IntensityHigh   Intensity = "HIGH"
)

func IsValidIntensity(v string) bool {
	return v == string(IntensityLow) || v == string(IntensityMedium) || v == string(IntensityHigh)
}

type TrainingPlan struct {
	ID             string
	AthleteID      string
	SpecialistID   string
	Title          string
	Description    *string
	StartDate      time.Time
	EndDate        time.Time
	IntensityLevel string
	CreatedAt      time.Time
}

type NutritionPlan struct {
	ID                 string
	AthleteID          string
	SpecialistID       string
	Title              string
	Description        *string
	CaloriesPerDay     *int
	MacronutrientRatio map[string]float64
	StartDate          time.Time
	EndDate            time.Time
	CreatedAt          time.Time
}
