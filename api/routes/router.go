package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exptracker/api/handlers"
	"exptracker/api/middleware"
	"exptracker/auth"
	"exptracker/metrics"
	"exptracker/service"
)

// Dependencies are the collaborators the HTTP API is built from
type Dependencies struct {
	DB          handlers.Pinger
	Token       auth.TokenConfig
	Users       service.UserService
	Ledger      service.LedgerService
	Logs        service.LogService
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

// NewRouter builds the HTTP API
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logging(deps.HTTPMetrics),
		middleware.Recoverer,
	)

	r.Get("/healthz", handlers.Healthz(deps.DB))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/progression", handlers.Progression())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Token, deps.Users))

			r.Route("/user", func(r chi.Router) {
				r.Get("/", handlers.GetUser(deps.Users))
				r.Post("/adjust", handlers.AdjustPool(deps.Ledger))
				r.Get("/logs", handlers.ListLogs(deps.Logs))
			})

			r.Route("/characters", func(r chi.Router) {
				r.Get("/", handlers.ListCharacters(deps.Logs))
				r.Post("/", handlers.CreateCharacter(deps.Ledger))

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handlers.GetCharacter(deps.Logs))
					r.Put("/", handlers.UpdateCharacter(deps.Ledger))
					r.Patch("/", handlers.UpdateCharacter(deps.Ledger))
					r.Delete("/", handlers.DeleteCharacter(deps.Ledger))
					r.Post("/spend", handlers.SpendStars(deps.Ledger))
				})
			})
		})
	})

	return r
}
