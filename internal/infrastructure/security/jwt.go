package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

// JWTIssuer signs and verifies both token classes. Access and refresh tokens
// use distinct secrets: a token signed with one never verifies under the
// other.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

func NewJWTIssuer(accessSecret, refreshSecret, issuer string) *JWTIssuer {
	return &JWTIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
	}
}

// AccessClaims is the self-contained identity assertion carried by an access
// token. Validity is signature + expiry only; it is never looked up in
// storage.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	jwt.RegisteredClaims
}

func (s *JWTIssuer) SignAccessToken(userID, role, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.accessSecret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// SignRefreshToken returns the signed token and its expiry timestamp; the
// caller persists both in the ledger.
func (s *JWTIssuer) SignRefreshToken(userID string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.refreshSecret)
	if err != nil {
		return "", time.Time{}, domain.ErrTokenSignFailed(err)
	}
	return signed, expiresAt, nil
}

func (s *JWTIssuer) VerifyAccessToken(token string) (AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Expired, malformed and wrong-signature all map to the same error;
		// the guard does not tell callers why verification failed.
		return AccessClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, domain.ErrTokenInvalid()
	}
	return *claims, nil
}

// VerifyRefreshToken checks signature and expiry of a refresh token and
// returns the subject user id.
func (s *JWTIssuer) VerifyRefreshToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &refreshClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrRefreshTokenInvalid()
		}
		return s.refreshSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrRefreshTokenExpired()
		}
		return "", domain.ErrRefreshTokenInvalid()
	}

	claims, ok := parsed.Claims.(*refreshClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	return claims.Subject, nil
}
