package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shayari/shayari-go/internal/middleware"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Auth        *AuthHandler
	Poems       *PoemHandler
	Insights    *InsightHandler
	Inspiration *InspirationHandler
	JWTSecret   string
	Logger      *slog.Logger
}

// NewRouter builds the HTTP routes. ctx bounds the rate limiters' background cleanup.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/inspiration", cfg.Inspiration.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, 5, 10))
			r.Post("/auth/register", cfg.Auth.HandleRegister)
			r.Post("/auth/login", cfg.Auth.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/auth/me", cfg.Auth.HandleMe)

			r.With(middleware.RateLimit(ctx, 1, 5)).Post("/insights", cfg.Insights.HandleGenerate)

			r.Route("/poems", func(r chi.Router) {
				r.Get("/", cfg.Poems.HandleList)
				r.Post("/", cfg.Poems.HandleCreate)
				r.Delete("/", cfg.Poems.HandleDeleteAll)
				r.Get("/stats", cfg.Poems.HandleStats)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.Poems.HandleGet)
					r.Put("/", cfg.Poems.HandleUpdate)
					r.Delete("/", cfg.Poems.HandleDelete)
					r.Post("/unlock", cfg.Poems.HandleUnlock)
				})
			})
		})
	})

	return r
}
