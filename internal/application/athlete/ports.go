package athlete

import (
	"context"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// Repo is the persistence port for athlete profiles.
type Repo interface {
	Create(ctx context.Context, a domain.Athlete) (domain.Athlete, error)
	GetByID(ctx context.Context, id string) (domain.Athlete, error)
	GetByUserID(ctx context.Context, userID string) (domain.Athlete, error)
	// List returns all profiles, optionally narrowed to one owning user.
	List(ctx context.Context, filterUserID string) ([]domain.Athlete, error)
	Update(ctx context.Context, a domain.Athlete) (domain.Athlete, error)
	Delete(ctx context.Context, id string) error
}

type UserRepo interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}
