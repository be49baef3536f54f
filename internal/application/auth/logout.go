package auth

import "context"

// Logout revokes the presented refresh token, best effort. A missing or
// unknown token is a silent no-op: logout is never blockable by token-state
// edge cases, so even a ledger failure is swallowed (and audited).
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.ledger.RevokeByToken(ctx, refreshToken); err != nil {
		s.audit("logout_revoke_failed", map[string]string{"error": err.Error()})
	}
	return nil
}
