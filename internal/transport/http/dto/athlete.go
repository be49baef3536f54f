package dto

import (
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type CreateAthleteRequest struct {
	UserID string `json:"user_id" validate:"required"`
	AthleteProfilePayload
}

func (r *CreateAthleteRequest) Validate() error {
	return checkStruct(r)
}

type UpdateAthleteRequest struct {
	AthleteProfilePayload
}

func (r *UpdateAthleteRequest) Validate() error {
	return checkStruct(r)
}

type AthleteView struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	HeightCm         *int       `json:"height_cm,omitempty"`
	WeightKg         *float64   `json:"weight_kg,omitempty"`
	RestingHeartRate *int       `json:"resting_heart_rate,omitempty"`
	Bio              *string    `json:"bio,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func NewAthleteView(a domain.Athlete) AthleteView {
	return AthleteView{
		ID:               a.ID,
		UserID:           a.UserID,
		DateOfBirth:      a.DateOfBirth,
		HeightCm:         a.HeightCm,
		WeightKg:         a.WeightKg,
		RestingHeartRate: a.RestingHeartRate,
		Bio:              a.Bio,
		CreatedAt:        a.CreatedAt,
	}
}

func NewAthleteViews(in []domain.Athlete) []AthleteView {
	out := make([]AthleteView, 0, len(in))
	for _, a := range in {
		out = append(out, NewAthleteView(a))
	}
	return out
}
