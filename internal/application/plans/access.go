package plans

import (
	"context"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// Actor is the authenticated identity as resolved by the access guard.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) isAdmin() bool      { return a.Role == string(domain.RoleAdmin) }
func (a Actor) isSpecialist() bool { return a.Role == string(domain.RoleSpecialist) }
func (a Actor) isAthlete() bool    { return a.Role == string(domain.RoleAthlete) }

// ensureAccess gates a single plan. Admins see everything, specialists
// only the plans they author, athletes only the plans on their own
// profile.
func ensureAccess(ctx context.Context, athletes AthleteRepo, actor Actor, athleteID, specialistID string) error {
	switch {
	case actor.isAdmin():
		return nil
	case actor.isSpecialist():
		if specialistID != actor.ID {
			return domain.ErrForbidden("Cannot access plans of other specialists")
		}
		return nil
	default:
		a, err := athletes.GetByID(ctx, athleteID)
		if err != nil {
			return err
		}
		if a.UserID != actor.ID {
			return domain.ErrForbidden("Cannot access plans of another athlete")
		}
		return nil
	}
}

// scopeFilter constrains a list query to what the actor may see. The
// second return is false when the actor can own no plans at all.
func scopeFilter(ctx context.Context, athletes AthleteRepo, actor Actor, f ListFilter) (ListFilter, bool, error) {
	switch {
	case actor.isAdmin():
		return f, true, nil
	case actor.isSpecialist():
		f.SpecialistID = actor.ID
		return f, true, nil
	default:
		a, err := athletes.GetByUserID(ctx, actor.ID)
		if err != nil {
			// An athlete without a profile owns no plans.
			if domain.Is(err, "athlete_not_found") {
				return ListFilter{}, false, nil
			}
			return ListFilter{}, false, err
		}
		f.AthleteID = a.ID
		return f, true, nil
	}
}

// resolveSpecialist picks the authoring specialist for a new plan.
// Specialists always author their own plans; admins must name one.
func resolveSpecialist(ctx context.Context, users UserRepo, actor Actor, requested string) (string, error) {
	if actor.isSpecialist() {
		return actor.ID, nil
	}
	if requested == "" {
		return "", domain.ErrUnprocessable("specialistId is required")
	}
	u, err := users.GetByID(ctx, requested)
	if err != nil || u.Role != string(domain.RoleSpecialist) {
		return "", domain.ErrUnprocessable("Invalid specialistId")
	}
	return requested, nil
}
