package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/security"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

type fakeUserReader struct {
	byID map[string]domain.User
}

func (f *fakeUserReader) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func newGuardForTest(t *testing.T) (*security.JWTIssuer, *fakeUserReader, func(http.Handler) http.Handler) {
	t.Helper()
	issuer := security.NewJWTIssuer("access-secret-0123456789", "refresh-secret-0123456789", "endurance-hub")
	users := &fakeUserReader{byID: map[string]domain.User{
		"u1": {ID: "u1", Email: "a@test.io", Role: "ATHLETE", FirstName: "Ada"},
	}}
	return issuer, users, Auth(issuer, users, response.WriteError)
}

func echoIdentity(t *testing.T, captured *AuthUser) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := AuthUserFromContext(r.Context())
		if !ok {
			t.Fatalf("expected identity in context")
		}
		*captured = u
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_NoHeader_401(t *testing.T) {
	t.Parallel()

	_, _, guard := newGuardForTest(t)
	rec := httptest.NewRecorder()
	guard(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader_401(t *testing.T) {
	t.Parallel()

	_, _, guard := newGuardForTest(t)
	for _, h := range []string{"Token abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", h)
		rec := httptest.NewRecorder()
		guard(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatalf("handler must not run for %q", h)
		})).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", h)
	}
}

func TestAuth_ValidToken_AttachesLiveIdentity(t *testing.T) {
	t.Parallel()

	issuer, users, guard := newGuardForTest(t)

	// The token carries a stale role; the live record wins.
	tok, err := issuer.SignAccessToken("u1", "ADMIN", "a@test.io", time.Minute)
	require.NoError(t, err)
	users.byID["u1"] = domain.User{ID: "u1", Email: "a@test.io", Role: "ATHLETE", FirstName: "Ada"}

	var got AuthUser
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard(echoIdentity(t, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "ATHLETE", got.Role, "role must come from storage, not the token")
	assert.Equal(t, "Ada", got.FirstName)
}

func TestAuth_DeletedUser_401(t *testing.T) {
	t.Parallel()

	issuer, _, guard := newGuardForTest(t)

	tok, err := issuer.SignAccessToken("ghost", "ATHLETE", "x@test.io", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken_401(t *testing.T) {
	t.Parallel()

	issuer, _, guard := newGuardForTest(t)

	tok, err := issuer.SignAccessToken("u1", "ATHLETE", "a@test.io", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
