package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// RefreshTokenRepo is the durable ledger behind refresh token rotation.
// Rows are soft-revoked, never deleted.
type RefreshTokenRepo struct {
	db *sql.DB
}

func NewRefreshTokenRepo(db *sql.DB) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

func (r *RefreshTokenRepo) Persist(ctx context.Context, userID, token string, expiresAt time.Time) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if token == "" {
		return domain.ErrMissingField("token")
	}

	const q = `
INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked)
VALUES ($1,$2,$3,$4,FALSE);
`
	if _, err := r.db.ExecContext(ctx, q, uuid.NewString(), userID, token, expiresAt); err != nil {
		return domain.ErrStorage(err)
	}
	return nil
}

// FindActive looks up a non-revoked row for the token. Absent and
// revoked rows are indistinguishable to the caller.
func (r *RefreshTokenRepo) FindActive(ctx context.Context, token string) (domain.RefreshToken, bool, error) {
	const q = `
SELECT id, user_id, token, expires_at, revoked, created_at
FROM refresh_tokens
WHERE token = $1 AND revoked = FALSE
LIMIT 1;
`
	var rec domain.RefreshToken
	err := r.db.QueryRowContext(ctx, q, token).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Token,
		&rec.ExpiresAt,
		&rec.Revoked,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RefreshToken{}, false, nil
		}
		return domain.RefreshToken{}, false, domain.ErrStorage(err)
	}
	return rec, true, nil
}

// Revoke claims the token. The WHERE clause guarantees at most one
// concurrent caller observes claimed=true.
func (r *RefreshTokenRepo) Revoke(ctx context.Context, token string) (bool, error) {
	const q = `
UPDATE refresh_tokens
SET revoked = TRUE
WHERE token = $1 AND revoked = FALSE;
`
	res, err := r.db.ExecContext(ctx, q, token)
	if err != nil {
		return false, domain.ErrStorage(err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *RefreshTokenRepo) RevokeByToken(ctx context.Context, token string) error {
	_, err := r.Revoke(ctx, token)
	return err
}
