package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fiskal-sk/fiskal/internal/filing"
	"github.com/fiskal-sk/fiskal/internal/statements"
	"github.com/fiskal-sk/fiskal/internal/vat"
	"github.com/fiskal-sk/fiskal/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	StatementsHandler *statements.Handler
	VATHandler        *vat.Handler
	FilingHandler     *filing.Handler
	JobHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		if params.StatementsHandler != nil {
			params.StatementsHandler.MountRoutes(r)
		}
		if params.VATHandler != nil {
			params.VATHandler.MountRoutes(r)
		}
		if params.FilingHandler != nil {
			params.FilingHandler.MountRoutes(r)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
