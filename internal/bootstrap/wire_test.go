package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endurancehub/endurance-hub/internal/application/auth"
	"github.com/endurancehub/endurance-hub/internal/application/message"
	"github.com/endurancehub/endurance-hub/internal/config"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/memory"
	"github.com/endurancehub/endurance-hub/internal/transport/http/router"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:      "test",
		HTTPAddr: ":0",

		JWTAccessSecret:  "access-secret-0123456789",
		JWTRefreshSecret: "refresh-secret-0123456789",
		JWTIssuer:        "endurance-hub",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		BcryptCost:       4,

		DBAddr: "postgres://test",

		HTTPReadTimeout:  10 * time.Second,
		HTTPWriteTimeout: 30 * time.Second,
		HTTPIdleTimeout:  time.Minute,
	}
}

func testDeps(t *testing.T) Deps {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return Deps{
		LoadConfig: func() (*config.Config, error) { return testConfig(), nil },
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return db, nil
		},
		NewPublisher: func(url string) (Publisher, error) {
			return memory.NewNoopPublisher(), nil
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

func TestNewServerWithDeps_WiresFullStack(t *testing.T) {
	srv, cleanup, err := NewServerWithDeps(testDeps(t))
	require.NoError(t, err)
	require.NotNil(t, srv)
	require.NotNil(t, cleanup)
	defer cleanup()

	assert.Equal(t, ":0", srv.Addr)
	assert.NotNil(t, srv.Handler)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
}

func TestNewServerWithDeps_ConfigLoadFails(t *testing.T) {
	deps := testDeps(t)
	deps.LoadConfig = func() (*config.Config, error) {
		return nil, errors.New("missing env")
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	assert.Error(t, err)
	assert.Nil(t, srv)
	assert.Nil(t, cleanup)
}

func TestNewServerWithDeps_DBConnectFails(t *testing.T) {
	deps := testDeps(t)
	deps.NewDB = func(addr string, debug bool) (DBCloser, error) {
		return nil, errors.New("connection refused")
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	assert.Error(t, err)
	assert.Nil(t, srv)
	assert.Nil(t, cleanup)
}

func TestNewServerWithDeps_RabbitUnavailable_DevFallsBackToNoop(t *testing.T) {
	deps := testDeps(t)
	deps.LoadConfig = func() (*config.Config, error) {
		cfg := testConfig()
		cfg.Env = "dev"
		return cfg, nil
	}
	deps.NewPublisher = func(url string) (Publisher, error) {
		return nil, errors.New("dial amqp: connection refused")
	}
	deps.NewDB = func(addr string, debug bool) (DBCloser, error) {
		// Seeding runs in dev; back it with a permissive mock.
		db, mock, err := sqlmock.New()
		if err != nil {
			return nil, err
		}
		mock.MatchExpectationsInOrder(false)
		t.Cleanup(func() { _ = db.Close() })
		return db, nil
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	require.NotNil(t, srv)
	cleanup()
}

func TestNewServerWithDeps_RabbitUnavailable_ProdFails(t *testing.T) {
	deps := testDeps(t)
	deps.LoadConfig = func() (*config.Config, error) {
		cfg := testConfig()
		cfg.Env = "prod"
		return cfg, nil
	}
	deps.NewPublisher = func(url string) (Publisher, error) {
		return nil, errors.New("dial amqp: connection refused")
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	assert.Error(t, err)
	assert.Nil(t, srv)
	assert.Nil(t, cleanup)
}

func TestNewServerWithDeps_RedisUnavailable_Degrades(t *testing.T) {
	deps := testDeps(t)
	deps.LoadConfig = func() (*config.Config, error) {
		cfg := testConfig()
		cfg.RedisAddr = "localhost:1"
		return cfg, nil
	}
	deps.NewRedis = func(addr, password string, db int) RedisClient {
		return failingRedis{}
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	require.NotNil(t, srv)
	cleanup()
}

type failingRedis struct{}

func (failingRedis) Ping(ctx context.Context) error { return errors.New("connection refused") }
func (failingRedis) Close() error                   { return nil }

// Both publisher implementations must satisfy every event port the services
// consume.
var (
	_ auth.EventPublisher    = (*memory.NoopPublisher)(nil)
	_ message.EventPublisher = (*memory.NoopPublisher)(nil)
)
