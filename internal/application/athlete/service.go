package athlete

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// Actor is the identity resolved by the access guard, as far as this
// service needs it.
type Actor struct {
	ID   string
	Role string
}

type Service struct {
	athletes Repo
	users    UserRepo
}

func NewService(athletes Repo, users UserRepo) *Service {
	return &Service{athletes: athletes, users: users}
}

type ProfileFields struct {
	DateOfBirth      *time.Time
	HeightCm         *int
	WeightKg         *float64
	RestingHeartRate *int
	Bio              *string
}

type CreateInput struct {
	UserID string
	ProfileFields
}

// Create adds a profile for an existing ATHLETE user. Admin-only at the
// router; the service enforces the semantic constraints.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Athlete, error) {
	u, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return domain.Athlete{}, err
	}
	if u.Role != string(domain.RoleAthlete) {
		return domain.Athlete{}, domain.ErrUnprocessable("User role must be ATHLETE to create an athlete profile")
	}

	if _, err := s.athletes.GetByUserID(ctx, in.UserID); err == nil {
		return domain.Athlete{}, domain.ErrAthleteProfileExists()
	} else if !domain.Is(err, "athlete_not_found") {
		return domain.Athlete{}, err
	}

	return s.athletes.Create(ctx, domain.Athlete{
		ID:               uuid.NewString(),
		UserID:           in.UserID,
		DateOfBirth:      in.DateOfBirth,
		HeightCm:         in.HeightCm,
		WeightKg:         in.WeightKg,
		RestingHeartRate: in.RestingHeartRate,
		Bio:              in.Bio,
	})
}

// List narrows to the caller's own profile for athletes; other roles may
// filter by owning user.
func (s *Service) List(ctx context.Context, actor Actor, filterUserID string) ([]domain.Athlete, error) {
	if actor.Role == string(domain.RoleAthlete) {
		filterUserID = actor.ID
	}
	return s.athletes.List(ctx, filterUserID)
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (domain.Athlete, error) {
	a, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return domain.Athlete{}, err
	}
	if actor.Role == string(domain.RoleAthlete) && a.UserID != actor.ID {
		return domain.Athlete{}, domain.ErrForbidden("Cannot access another athlete profile")
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, actor Actor, id string, in ProfileFields) (domain.Athlete, error) {
	a, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return domain.Athlete{}, err
	}
	if actor.Role == string(domain.RoleAthlete) && a.UserID != actor.ID {
		return domain.Athlete{}, domain.ErrForbidden("Cannot update another athlete profile")
	}

	if in.DateOfBirth != nil {
		a.DateOfBirth = in.DateOfBirth
	}
	if in.HeightCm != nil {
		a.HeightCm = in.HeightCm
	}
	if in.WeightKg != nil {
		a.WeightKg = in.WeightKg
	}
	if in.RestingHeartRate != nil {
		a.RestingHeartRate = in.RestingHeartRate
	}
	if in.Bio != nil {
		a.Bio = in.Bio
	}

	return s.athletes.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.athletes.GetByID(ctx, id); err != nil {
		return err
	}
	return s.athletes.Delete(ctx, id)
}
