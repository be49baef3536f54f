package auth

import (
	"context"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

type Service struct {
	users    UserRepo
	athletes AthleteRepo
	hasher   PasswordHasher
	issuer   TokenIssuer
	ledger   RefreshTokenLedger
	pub      EventPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration
	audit      func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(
	users UserRepo,
	athletes AthleteRepo,
	hasher PasswordHasher,
	issuer TokenIssuer,
	ledger RefreshTokenLedger,
	pub EventPublisher,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:    users,
		athletes: athletes,
		hasher:   hasher,
		issuer:   issuer,
		ledger:   ledger,
		pub:      pub,
		audit:    func(string, map[string]string) {},

		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // "Bearer"
	ExpiresIn    int64  // access token lifetime, seconds
}

type RegisterResult struct {
	User   domain.User
	Tokens AuthTokens
}

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

// issueTokens signs a new access/refresh pair and persists the refresh token
// in the ledger.
func (s *Service) issueTokens(ctx context.Context, u domain.User) (AuthTokens, error) {
	access, err := s.issuer.SignAccessToken(u.ID, u.Role, u.Email, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	refresh, expiresAt, err := s.issuer.SignRefreshToken(u.ID, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}

	if err := s.ledger.Persist(ctx, u.ID, refresh, expiresAt); err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// GetUserByID backs the /auth/me endpoint.
func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}
