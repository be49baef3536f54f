package postgres

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederUserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

type SeederAthleteRepo interface {
	Create(ctx context.Context, a domain.Athlete) (domain.Athlete, error)
}

// SeedUsers loads the fixed development accounts. Restart safe:
// duplicates are skipped silently.
func SeedUsers(ctx context.Context, users SeederUserRepo, athletes SeederAthleteRepo, hasher SeederHasher) {
	type seedUser struct {
		Email     string
		FirstName string
		LastName  string
		Role      string
		Pass      string
	}

	seeds := []seedUser{
		{Email: "admin@endurancehub.dev", FirstName: "Ada", LastName: "Admin", Role: "ADMIN", Pass: "AdminPassword123!"},
		{Email: "coach@endurancehub.dev", FirstName: "Sam", LastName: "Specialist", Role: "SPECIALIST", Pass: "CoachPassword123!"},
		{Email: "runner@endurancehub.dev", FirstName: "Rita", LastName: "Runner", Role: "ATHLETE", Pass: "RunnerPassword123!"},
		{Email: "cyclist@endurancehub.dev", FirstName: "Carl", LastName: "Cyclist", Role: "ATHLETE", Pass: "CyclistPassword123!"},
	}

	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Email, err)
			continue
		}

		u, err := users.Create(ctx, domain.User{
			ID:           uuid.NewString(),
			Email:        s.Email,
			PasswordHash: hash,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			Role:         s.Role,
		})
		if err != nil {
			// already seeded
			continue
		}

		if s.Role == string(domain.RoleAthlete) {
			if _, err := athletes.Create(ctx, domain.Athlete{ID: uuid.NewString(), UserID: u.ID}); err != nil {
				log.Printf("[seed] athlete profile failed (%s): %v", s.Email, err)
			}
		}
	}

	log.Println("[seed] postgres users seeded")
}
