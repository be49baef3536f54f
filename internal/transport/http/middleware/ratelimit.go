package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/redis"
)

type RateLimiter interface {
	Allow(ctx context.Context, scope, identity string, limit int, window time.Duration) redis.Decision
}

// RouteLimit is one fixed-window budget for a route.
type RouteLimit struct {
	Scope  string
	Limit  int
	Window time.Duration
}

// RateLimit rejects requests over the route budget with 429. A nil
// limiter disables the check.
func RateLimit(limiter RateLimiter, cfg RouteLimit, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Scope == "" {
		cfg.Scope = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			dec := limiter.Allow(r.Context(), cfg.Scope, userOrIP(r), cfg.Limit, cfg.Window)
			if !dec.Allowed {
				if dec.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(dec.RetryAfter.Seconds())))
				}
				writeErr(w, r, domain.ErrRateLimited(cfg.Scope))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// userOrIP prefers the authenticated user id; anonymous callers are
// keyed by client IP.
func userOrIP(r *http.Request) string {
	if u, ok := AuthUserFromContext(r.Context()); ok {
		return "u:" + u.ID
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For only behind a controlled proxy.
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
