package middleware

import "context"

// AuthUser is the live identity resolved by the access guard.
type AuthUser struct {
	ID        string
	Email     string
	Role      string
	FirstName string
	LastName  string
}

type ctxKey string

const ctxAuthUser ctxKey = "auth_user"

func WithAuthUser(ctx context.Context, u AuthUser) context.Context {
	return context.WithValue(ctx, ctxAuthUser, u)
}

func AuthUserFromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(ctxAuthUser).(AuthUser)
	return u, ok && u.ID != ""
}
