package auth

import (
	"context"
	"strings"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// Login authenticates a user and issues a fresh token pair.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials.
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	toks, err := s.issueTokens(ctx, u)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("user_logged_in", map[string]string{"user_id": u.ID})

	return LoginResult{User: u, Tokens: toks}, nil
}
