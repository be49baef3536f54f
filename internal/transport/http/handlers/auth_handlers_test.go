package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endurancehub/endurance-hub/internal/application/auth"
	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/security"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

/*
In-memory ports backing a real auth.Service so the handlers are
exercised over HTTP end to end.
*/

type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]domain.User{}, byEmail: map[string]domain.User{}}
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (m *memUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyRegistered()
	}
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUserRepo) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
}

type memAthleteRepo struct {
	mu       sync.Mutex
	byUserID map[string]domain.Athlete
}

func (m *memAthleteRepo) Create(ctx context.Context, a domain.Athlete) (domain.Athlete, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUserID[a.UserID] = a
	return a, nil
}

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "plain:" + pw, nil }
func (plainHasher) Compare(hash, pw string) error {
	if hash != "plain:"+pw {
		return domain.ErrInvalidCredentials()
	}
	return nil
}

type memLedger struct {
	mu      sync.Mutex
	byToken map[string]domain.RefreshToken
}

func newMemLedger() *memLedger { return &memLedger{byToken: map[string]domain.RefreshToken{}} }

func (m *memLedger) Persist(ctx context.Context, userID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byToken[token] = domain.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (m *memLedger) FindActive(ctx context.Context, token string) (domain.RefreshToken, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byToken[token]
	if !ok || rec.Revoked {
		return domain.RefreshToken{}, false, nil
	}
	return rec, true, nil
}

func (m *memLedger) Revoke(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byToken[token]
	if !ok || rec.Revoked {
		return false, nil
	}
	rec.Revoked = true
	m.byToken[token] = rec
	return true, nil
}

func (m *memLedger) RevokeByToken(ctx context.Context, token string) error {
	_, err := m.Revoke(ctx, token)
	return err
}

type noopPublisher struct{}

func (noopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	return nil
}

type authStack struct {
	router http.Handler
	users  *memUserRepo
}

func newAuthStack(t *testing.T) *authStack {
	t.Helper()

	users := newMemUserRepo()
	athletes := &memAthleteRepo{byUserID: map[string]domain.Athlete{}}
	issuer := security.NewJWTIssuer("access-secret-0123456789", "refresh-secret-0123456789", "endurance-hub")

	svc := auth.NewService(users, athletes, plainHasher{}, issuer, newMemLedger(), noopPublisher{}, auth.Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	h := NewAuthHandler(svc)
	guard := middleware.Auth(issuer, users, response.WriteError)

	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/refresh", h.Refresh)
	r.Post("/api/auth/logout", h.Logout)
	r.With(guard).Get("/api/auth/me", h.Me)

	return &authStack{router: r, users: users}
}

func (s *authStack) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type tokensBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type authDataBody struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Tokens tokensBody `json:"tokens"`
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func register(t *testing.T, s *authStack, email string) authDataBody {
	t.Helper()
	rec := s.do(t, "POST", "/api/auth/register", map[string]any{
		"email":    email,
		"password": "Password1!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[authDataBody](t, rec)
}

func TestRegister_HTTP_CreatesUserWithTokens(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	data := register(t, s, "a@test.io")

	assert.NotEmpty(t, data.User.ID)
	assert.Equal(t, "ATHLETE", data.User.Role)
	assert.NotEmpty(t, data.Tokens.AccessToken)
	assert.NotEmpty(t, data.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", data.Tokens.TokenType)
}

func TestRegister_HTTP_ShortPassword_400(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	rec := s.do(t, "POST", "/api/auth/register", map[string]any{
		"email":    "a@test.io",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_HTTP_DuplicateEmail_409(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	register(t, s, "a@test.io")

	rec := s.do(t, "POST", "/api/auth/register", map[string]any{
		"email":    "a@test.io",
		"password": "Password1!",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_HTTP_IdenticalErrorForUnknownAndWrongPassword(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	register(t, s, "real@test.io")

	recUnknown := s.do(t, "POST", "/api/auth/login", map[string]any{
		"email": "unknown@test.io", "password": "whatever",
	})
	recWrong := s.do(t, "POST", "/api/auth/login", map[string]any{
		"email": "real@test.io", "password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	// Byte-identical bodies: no account enumeration.
	assert.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
}

func TestRefresh_HTTP_RotationAndReplay(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	data := register(t, s, "a@test.io")

	rec := s.do(t, "POST", "/api/auth/refresh", map[string]any{
		"refresh_token": data.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fresh := decodeData[tokensBody](t, rec)
	assert.NotEqual(t, data.Tokens.RefreshToken, fresh.RefreshToken)

	// Replaying the consumed token is rejected.
	rec = s.do(t, "POST", "/api/auth/refresh", map[string]any{
		"refresh_token": data.Tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The rotated token works exactly once.
	rec = s.do(t, "POST", "/api/auth/refresh", map[string]any{
		"refresh_token": fresh.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefresh_HTTP_MissingToken_400(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	rec := s.do(t, "POST", "/api/auth/refresh", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_HTTP_AlwaysSucceeds(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)

	rec := s.do(t, "POST", "/api/auth/logout", map[string]any{})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "POST", "/api/auth/logout", map[string]any{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout_HTTP_InvalidatesRefreshToken(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	data := register(t, s, "a@test.io")

	rec := s.do(t, "POST", "/api/auth/logout", map[string]any{
		"refresh_token": data.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, "POST", "/api/auth/refresh", map[string]any{
		"refresh_token": data.Tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_HTTP_LiveLookup(t *testing.T) {
	t.Parallel()

	s := newAuthStack(t)
	data := register(t, s, "a@test.io")

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+data.Tokens.AccessToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Once the account is gone the same token stops working.
	s.users.remove(data.User.ID)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
