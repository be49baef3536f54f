package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/security"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (security.AccessClaims, error)
}

// UserReader loads the live user record behind a token subject.
type UserReader interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <access_token>, looks the subject
// up in storage and injects the live identity into the request context.
// A valid signature over a deleted user still fails: the lookup is the
// source of truth for role and existence.
func Auth(verifier TokenVerifier, users UserReader, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrAuthenticationRequired())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			claims, err := verifier.VerifyAccessToken(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}
			if strings.TrimSpace(claims.Subject) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			u, err := users.GetByID(r.Context(), claims.Subject)
			if err != nil {
				// Token subject no longer resolves to an account.
				if domain.Is(err, "user_not_found") {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}
				writeErr(w, r, err)
				return
			}

			ctx := WithAuthUser(r.Context(), AuthUser{
				ID:        u.ID,
				Email:     u.Email,
				Role:      u.Role,
				FirstName: u.FirstName,
				LastName:  u.LastName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
