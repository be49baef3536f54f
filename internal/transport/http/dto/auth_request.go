package dto

import (
	"strings"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type AthleteProfilePayload struct {
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	HeightCm         *int       `json:"height_cm,omitempty" validate:"omitempty,gte=100,lte=250"`
	WeightKg         *float64   `json:"weight_kg,omitempty" validate:"omitempty,gte=30,lte=250"`
	RestingHeartRate *int       `json:"resting_heart_rate,omitempty" validate:"omitempty,gte=30,lte=220"`
	Bio              *string    `json:"bio,omitempty" validate:"omitempty,max=1000"`
}

type RegisterRequest struct {
	Email     string                 `json:"email" validate:"required,email"`
	Password  string                 `json:"password" validate:"required"`
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	Role      string                 `json:"role"`
	Profile   *AthleteProfilePayload `json:"profile,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := checkStruct(r); err != nil {
		return err
	}
	if len(r.Password) < 8 {
		return domain.ErrWeakPassword("min length 8")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return checkStruct(r)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return domain.ErrRefreshTokenRequired()
	}
	return nil
}

// Logout accepts a missing or empty token and still succeeds.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}
