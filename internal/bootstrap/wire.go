package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/endurancehub/endurance-hub/internal/application/athlete"
	"github.com/endurancehub/endurance-hub/internal/application/auth"
	"github.com/endurancehub/endurance-hub/internal/application/message"
	"github.com/endurancehub/endurance-hub/internal/application/plans"
	"github.com/endurancehub/endurance-hub/internal/config"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/db/postgres"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/memory"
	rabbitmq_pub "github.com/endurancehub/endurance-hub/internal/infrastructure/messaging/rabbitmq"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/redis"
	"github.com/endurancehub/endurance-hub/internal/infrastructure/security"
	"github.com/endurancehub/endurance-hub/internal/logger"
	http_handlers "github.com/endurancehub/endurance-hub/internal/transport/http/handlers"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
	"github.com/endurancehub/endurance-hub/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

// Publisher carries both event ports so a single broker connection serves
// registration and messaging events.
type Publisher interface {
	auth.EventPublisher
	message.EventPublisher
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) repositories
	userRepo := postgres.NewUserRepo(sqlDB)
	tokenRepo := postgres.NewRefreshTokenRepo(sqlDB)
	athleteRepo := postgres.NewAthleteRepo(sqlDB)
	trainingRepo := postgres.NewTrainingPlanRepo(sqlDB)
	nutritionRepo := postgres.NewNutritionPlanRepo(sqlDB)
	messageRepo := postgres.NewMessageRepo(sqlDB)

	// 3) redis (best-effort; only the rate limiter depends on it)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	pub, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt issuer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	issuer := security.NewJWTIssuer(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer)

	// seed (dev only)
	if cfg.Env == "dev" {
		postgres.SeedUsers(context.Background(), userRepo, athleteRepo, hasher)
	}

	// 6) services
	authSvc := auth.NewService(
		userRepo,
		athleteRepo,
		hasher,
		issuer,
		tokenRepo,
		pub,
		auth.Config{
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		},
	)

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	athleteSvc := athlete.NewService(athleteRepo, userRepo)
	trainingSvc := plans.NewTrainingService(trainingRepo, athleteRepo, userRepo)
	nutritionSvc := plans.NewNutritionService(nutritionRepo, athleteRepo, userRepo)
	messageSvc := message.NewService(messageRepo, userRepo, pub)

	// 7) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	athleteH := http_handlers.NewAthleteHandler(athleteSvc)
	trainingH := http_handlers.NewTrainingPlanHandler(trainingSvc)
	nutritionH := http_handlers.NewNutritionPlanHandler(nutritionSvc)
	messageH := http_handlers.NewMessageHandler(messageSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(issuer, userRepo, response.WriteError)
	requireRoles := func(roles ...string) func(http.Handler) http.Handler {
		return middleware.RequireRoles(response.WriteError, roles...)
	}

	// rate limit (fail-open)
	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		fwLimiter = redis.NewFixedWindowLimiter(redisCli.(*redis.Client))
	}

	rl := func(scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimit(
			fwLimiter,
			middleware.RouteLimit{
				Scope:  scope,
				Limit:  limit,
				Window: window,
			},
			response.WriteError,
		)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:    healthH,
		Auth:      authH,
		Athletes:  athleteH,
		Training:  trainingH,
		Nutrition: nutritionH,
		Messages:  messageH,

		AuthMW:       authMW,
		RequireRoles: requireRoles,

		RegisterLimitMW: rl("auth.register", 3, time.Minute),
		LoginLimitMW:    rl("auth.login", 5, time.Minute),
		RefreshLimitMW:  rl("auth.refresh", 10, time.Minute),

		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
