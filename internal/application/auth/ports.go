package auth

import (
	"context"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

/*
UserRepo
--------
Persistence port for the credential store.
Only describes WHAT the auth service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

/*
AthleteRepo
-----------
Registration creates the athlete profile row for role ATHLETE.
The full profile CRUD lives in the athlete application service.
*/
type AthleteRepo interface {
	Create(ctx context.Context, a domain.Athlete) (domain.Athlete, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt. Compare returns nil on match.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

/*
TokenIssuer
-----------
Issues signed tokens. Access tokens are self-contained; refresh tokens are
persisted in the ledger by the caller.
*/
type TokenIssuer interface {
	SignAccessToken(userID, role, email string, ttl time.Duration) (string, error)
	SignRefreshToken(userID string, ttl time.Duration) (token string, expiresAt time.Time, err error)
	VerifyRefreshToken(token string) (userID string, err error)
}

/*
RefreshTokenLedger
------------------
The persisted set of refresh token records and their revocation state.
Records are soft-revoked, never deleted.
*/
type RefreshTokenLedger interface {
	Persist(ctx context.Context, userID, token string, expiresAt time.Time) error

	// FindActive looks up by exact token where revoked=false. Absent and
	// revoked are indistinguishable: both return found=false.
	FindActive(ctx context.Context, token string) (rec domain.RefreshToken, found bool, err error)

	// Revoke flips revoked=true and reports whether THIS call claimed the
	// record. Exactly one of N concurrent callers wins; revoking an
	// already-revoked record is a no-op, not an error.
	Revoke(ctx context.Context, token string) (claimed bool, err error)

	// RevokeByToken is the best-effort variant used by logout: unknown
	// tokens are a silent no-op.
	RevokeByToken(ctx context.Context, token string) error
}

/*
EventPublisher
--------------
Publishes auth events to the broker. The notification service consumes
these; auth never sends anything directly.
*/
type UserRegisteredEvent struct {
	UserID string
	Email  string
	Role   string
}

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
}
