package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/endurancehub/endurance-hub/internal/infrastructure/redis"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

func newTestLimiter(t *testing.T) *redis.FixedWindowLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewFixedWindowLimiter(redis.NewFromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()})))
}

func TestRateLimit_AllowsWithinBudget(t *testing.T) {
	limiter := newTestLimiter(t)
	mw := RateLimit(limiter, RouteLimit{Scope: "login", Limit: 2, Window: time.Minute}, response.WriteError)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_NilLimiterDisabled(t *testing.T) {
	mw := RateLimit(nil, RouteLimit{Scope: "login", Limit: 1, Window: time.Minute}, response.WriteError)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_KeyedPerIdentity(t *testing.T) {
	limiter := newTestLimiter(t)
	mw := RateLimit(limiter, RouteLimit{Scope: "login", Limit: 1, Window: time.Minute}, response.WriteError)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	reqA := httptest.NewRequest("POST", "/", nil)
	reqA.RemoteAddr = "10.0.0.1:1234"
	reqB := httptest.NewRequest("POST", "/", nil)
	reqB.RemoteAddr = "10.0.0.2:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, reqA)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, reqA)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client IP still has budget.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, reqB)
	assert.Equal(t, http.StatusOK, rec.Code)
}
