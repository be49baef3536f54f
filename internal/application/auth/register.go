package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// AthleteProfileInput carries the optional profile extras supplied at
// registration. All fields may be nil.
type AthleteProfileInput struct {
	DateOfBirth      *time.Time
	HeightCm         *int
	WeightKg         *float64
	RestingHeartRate *int
	Bio              *string
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Profile   *AthleteProfileInput
}

// Register creates a user, an athlete profile when the role is ATHLETE, and
// issues the first token pair. An invalid or omitted role defaults to
// ATHLETE rather than failing.
func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if len(in.Password) < 8 {
		return RegisterResult{}, domain.ErrWeakPassword("min length 8")
	}
	role := domain.NormalizeRole(in.Role)

	// The unique index on email covers the race; this check exists to return
	// the conflict without paying for a bcrypt hash first.
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return RegisterResult{}, domain.ErrEmailAlreadyRegistered()
	} else if !domain.Is(err, "user_not_found") {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
	})
	if err != nil {
		return RegisterResult{}, err
	}

	if role == string(domain.RoleAthlete) {
		profile := domain.Athlete{
			ID:     uuid.NewString(),
			UserID: created.ID,
		}
		if in.Profile != nil {
			profile.DateOfBirth = in.Profile.DateOfBirth
			profile.HeightCm = in.Profile.HeightCm
			profile.WeightKg = in.Profile.WeightKg
			profile.RestingHeartRate = in.Profile.RestingHeartRate
			profile.Bio = in.Profile.Bio
		}
		if _, err := s.athletes.Create(ctx, profile); err != nil {
			return RegisterResult{}, err
		}
	}

	toks, err := s.issueTokens(ctx, created)
	if err != nil {
		return RegisterResult{}, err
	}

	// Best-effort: a broker outage must not fail registration.
	if err := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID: created.ID,
		Email:  created.Email,
		Role:   created.Role,
	}); err != nil {
		s.audit("user_registered_publish_failed", map[string]string{"user_id": created.ID})
	}

	s.audit("user_registered", map[string]string{"user_id": created.ID, "role": created.Role})

	return RegisterResult{User: created, Tokens: toks}, nil
}
