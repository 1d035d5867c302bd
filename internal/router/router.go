package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/config"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/handlers"
	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/middleware"
)

func New(log zerolog.Logger, cfg config.Config, ch *handlers.CommentHTTP) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))

	// Health
	r.Get("/healthz", handlers.Health())

	r.Route("/api/comments", func(r chi.Router) {
		r.Use(middleware.WithAuth(log, cfg))
		r.Use(middleware.RequirePrincipal)

		r.Get("/", ch.List())
		r.Post("/", ch.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ch.Get())
			r.Put("/", ch.Update())
			r.Delete("/", ch.Delete())
			r.Get("/history", ch.History())
		})
	})

	return r
}
