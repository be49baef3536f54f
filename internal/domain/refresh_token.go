package domain

import "time"

// RefreshToken is a ledger record for one issued refresh token.
// Records are soft-revoked, never deleted: a rotated or logged-out token
// stays in the table with Revoked=true.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}
