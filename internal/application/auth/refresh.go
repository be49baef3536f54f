package auth

import (
	"context"
	"errors"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// Refresh redeems a refresh token for a new access/refresh pair.
// Rotation rule: a refresh token can be redeemed exactly once. The presented
// record is revoked before the replacement is persisted, so a replay of the
// same token fails with the not-found-or-revoked outcome.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, domain.ErrRefreshTokenRequired()
	}

	rec, found, err := s.ledger.FindActive(ctx, refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	if !found {
		return AuthTokens{}, domain.ErrRefreshTokenNotFound()
	}

	// Signature and claim expiry are checked independently of the stored
	// expiry field; either failing revokes the record.
	userID, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		_, _ = s.ledger.Revoke(ctx, refreshToken)
		return AuthTokens{}, normalizeRefreshErr(err)
	}

	if rec.ExpiresAt.Before(time.Now()) {
		_, _ = s.ledger.Revoke(ctx, refreshToken)
		return AuthTokens{}, domain.ErrRefreshTokenExpired()
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		// User gone since issuance: the session is no longer valid.
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}

	// Rotate. The atomic revoke-where-not-revoked picks exactly one winner
	// among concurrent redemptions of the same token.
	claimed, err := s.ledger.Revoke(ctx, refreshToken)
	if err != nil {
		return AuthTokens{}, normalizeRefreshErr(err)
	}
	if !claimed {
		return AuthTokens{}, domain.ErrRefreshTokenNotFound()
	}

	toks, err := s.issueTokens(ctx, u)
	if err != nil {
		return AuthTokens{}, normalizeRefreshErr(err)
	}

	s.audit("refresh_token_rotated", map[string]string{"user_id": u.ID})

	return toks, nil
}

// normalizeRefreshErr keeps already-classified auth failures and collapses
// everything else to a single 401, leaking no internal detail.
func normalizeRefreshErr(err error) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind == domain.KindAuth {
		return de
	}
	return domain.ErrRefreshTokenInvalid()
}
