package domain

import "time"

// Athlete is the profile attached to a user with role ATHLETE.
// All measurement fields are optional.
type Athlete struct {
	ID               string
	UserID           string
	DateOfBirth      *time.Time
	HeightCm         *int
	WeightKg         *float64
	RestingHeartRate *int
	Bio              *string
	CreatedAt        time.Time
}
