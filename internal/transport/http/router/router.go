package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type CrudHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// PlanHandler adds the /api/athletes/{id}/... list alias to plan CRUD.
type PlanHandler interface {
	CrudHandler
	ListForAthlete(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health    HealthHandler
	Auth      AuthHandler
	Athletes  CrudHandler
	Training  PlanHandler
	Nutrition PlanHandler
	Messages  MessageHandler

	AuthMW func(http.Handler) http.Handler
	// RequireRoles builds a role allow-list gate; an empty list admits any
	// authenticated user.
	RequireRoles func(roles ...string) func(http.Handler) http.Handler

	// Per-route rate limits; nil entries disable the limit.
	RegisterLimitMW func(http.Handler) http.Handler
	LoginLimitMW    func(http.Handler) http.Handler
	RefreshLimitMW  func(http.Handler) http.Handler

	// Browser origins allowed by CORS; empty means any origin.
	AllowedOrigins []string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Athletes == nil || deps.Training == nil || deps.Nutrition == nil || deps.Messages == nil {
		return nil, fmt.Errorf("nil resource handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.RequireRoles == nil {
		return nil, fmt.Errorf("nil RequireRoles builder")
	}

	pass := func(next http.Handler) http.Handler { return next }
	if deps.RegisterLimitMW == nil {
		deps.RegisterLimitMW = pass
	}
	if deps.LoginLimitMW == nil {
		deps.LoginLimitMW = pass
	}
	if deps.RefreshLimitMW == nil {
		deps.RefreshLimitMW = pass
	}

	admin := string(domain.RoleAdmin)
	specialist := string(domain.RoleSpecialist)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(deps.RegisterLimitMW).Post("/register", deps.Auth.Register)
			r.With(deps.LoginLimitMW).Post("/login", deps.Auth.Login)
			r.With(deps.RefreshLimitMW).Post("/refresh", deps.Auth.Refresh)
			r.Post("/logout", deps.Auth.Logout)
			r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
		})

		r.Route("/athletes", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.With(deps.RequireRoles(admin)).Post("/", deps.Athletes.Create)
			r.With(deps.RequireRoles()).Get("/", deps.Athletes.List)
			r.With(deps.RequireRoles()).Get("/{id}", deps.Athletes.Get)
			r.With(deps.RequireRoles()).Put("/{id}", deps.Athletes.Update)
			r.With(deps.RequireRoles(admin)).Delete("/{id}", deps.Athletes.Delete)

			// Aliases onto the filtered plan lists.
			r.With(deps.RequireRoles()).Get("/{id}/training-plans", deps.Training.ListForAthlete)
			r.With(deps.RequireRoles()).Get("/{id}/nutrition-plans", deps.Nutrition.ListForAthlete)
		})

		r.Route("/training-plans", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.With(deps.RequireRoles(admin, specialist)).Post("/", deps.Training.Create)
			r.With(deps.RequireRoles()).Get("/", deps.Training.List)
			r.With(deps.RequireRoles()).Get("/{id}", deps.Training.Get)
			r.With(deps.RequireRoles(admin, specialist)).Put("/{id}", deps.Training.Update)
			r.With(deps.RequireRoles(admin, specialist)).Delete("/{id}", deps.Training.Delete)
		})

		r.Route("/nutrition-plans", func(r chi.Router) {
			r.Use(deps.AuthMW)

			r.With(deps.RequireRoles(admin, specialist)).Post("/", deps.Nutrition.Create)
			r.With(deps.RequireRoles()).Get("/", deps.Nutrition.List)
			r.With(deps.RequireRoles()).Get("/{id}", deps.Nutrition.Get)
			r.With(deps.RequireRoles(admin, specialist)).Put("/{id}", deps.Nutrition.Update)
			r.With(deps.RequireRoles(admin, specialist)).Delete("/{id}", deps.Nutrition.Delete)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.RequireRoles())

			r.Post("/", deps.Messages.Send)
			r.Get("/", deps.Messages.List)
			r.Get("/{id}", deps.Messages.Get)
			r.Patch("/{id}/read", deps.Messages.MarkRead)
			r.Delete("/{id}", deps.Messages.Delete)
		})
	})

	return r, nil
}
