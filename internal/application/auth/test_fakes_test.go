package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/endurancehub/endurance-hub/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	getByIDErr    error
	getByEmailErr error
	createErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyRegistered()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

type fakeAthleteRepo struct {
	mu        sync.Mutex
	byUserID  map[string]domain.Athlete
	createErr error
}

func newFakeAthleteRepo() *fakeAthleteRepo {
	return &fakeAthleteRepo{byUserID: map[string]domain.Athlete{}}
}

func (f *fakeAthleteRepo) Create(ctx context.Context, a domain.Athlete) (domain.Athlete, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Athlete{}, f.createErr
	}
	f.byUserID[a.UserID] = a
	return a, nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

// fakeIssuer mints predictable tokens: refresh tokens encode the user id and
// a per-issuer counter so every pair is unique.
type fakeIssuer struct {
	mu      sync.Mutex
	counter int

	signAccessFn  func(userID, role, email string, ttl time.Duration) (string, error)
	signRefreshFn func(userID string, ttl time.Duration) (string, time.Time, error)
	verifyFn      func(token string) (string, error)
}

func (f *fakeIssuer) SignAccessToken(userID, role, email string, ttl time.Duration) (string, error) {
	if f.signAccessFn != nil {
		return f.signAccessFn(userID, role, email, ttl)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	return fmt.Sprintf("at:%s:%d", userID, f.counter), nil
}

func (f *fakeIssuer) SignRefreshToken(userID string, ttl time.Duration) (string, time.Time, error) {
	if f.signRefreshFn != nil {
		return f.signRefreshFn(userID, ttl)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counter++
	return fmt.Sprintf("rt:%s:%d", userID, f.counter), time.Now().Add(ttl), nil
}

func (f *fakeIssuer) VerifyRefreshToken(token string) (string, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "rt" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	return parts[1], nil
}

type fakeLedger struct {
	mu      sync.Mutex
	byToken map[string]domain.RefreshToken

	persistErr error
	findErr    error
	revokeErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{byToken: map[string]domain.RefreshToken{}}
}

func (f *fakeLedger) Persist(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.persistErr != nil {
		return f.persistErr
	}
	f.byToken[token] = domain.RefreshToken{
		ID:        fmt.Sprintf("rec-%d", len(f.byToken)+1),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeLedger) FindActive(ctx context.Context, token string) (domain.RefreshToken, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.RefreshToken{}, false, f.findErr
	}
	rec, ok := f.byToken[token]
	if !ok || rec.Revoked {
		return domain.RefreshToken{}, false, nil
	}
	return rec, true, nil
}

func (f *fakeLedger) Revoke(ctx context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.revokeErr != nil {
		return false, f.revokeErr
	}
	rec, ok := f.byToken[token]
	if !ok || rec.Revoked {
		return false, nil
	}
	rec.Revoked = true
	f.byToken[token] = rec
	return true, nil
}

func (f *fakeLedger) RevokeByToken(ctx context.Context, token string) error {
	_, err := f.Revoke(ctx, token)
	return err
}

func (f *fakeLedger) isRevoked(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byToken[token]
	return ok && rec.Revoked
}

type fakePublisher struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	publishErr error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.registered = append(f.registered, evt)
	return nil
}

/*
Harness
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeAthleteRepo, *fakeHasher, *fakeIssuer, *fakeLedger, *fakePublisher) {
	t.Helper()

	users := newFakeUserRepo()
	athletes := newFakeAthleteRepo()
	hasher := &fakeHasher{}
	issuer := &fakeIssuer{}
	ledger := newFakeLedger()
	pub := &fakePublisher{}

	svc := NewService(users, athletes, hasher, issuer, ledger, pub, Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	return svc, users, athletes, hasher, issuer, ledger, pub
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}
