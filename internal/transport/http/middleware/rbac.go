package middleware

import (
	"net/http"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// RequireRoles gates a route to an allow-list of roles. An empty list
// passes any authenticated user. Assumes Auth() already injected the
// identity into context.
func RequireRoles(writeErr WriteErrFunc, allowed ...string) func(http.Handler) http.Handler {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		allowSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := AuthUserFromContext(r.Context())
			if !ok {
				// Auth middleware not applied or identity missing.
				writeErr(w, r, domain.ErrAuthenticationRequired())
				return
			}

			if len(allowSet) > 0 {
				if _, ok := allowSet[u.Role]; !ok {
					writeErr(w, r, domain.ErrInsufficientPermissions())
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
