// Package diagnostics serves the optional health and profiling endpoints next to the console.
package diagnostics

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/stockmanager/internal/inventory/service"
	"github.com/abgdnv/stockmanager/internal/platform/web"
	"github.com/abgdnv/stockmanager/pkg/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Products int    `json:"products"`
}

// NewRouter creates the diagnostics routes:
//
//	GET /healthz   liveness and the number of stored products
//	GET /metrics   inventory metrics, when metrics is not nil
//	/debug/pprof/  runtime profiles
func NewRouter(svc service.InventoryService, metrics http.Handler, logger *slog.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	mux.Use(web.Recoverer(logger))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		web.RespondJSON(w, logger, http.StatusOK, HealthResponse{
			Status:   "ok",
			Products: svc.Count(r.Context()),
		})
	})
	if metrics != nil {
		mux.Method(http.MethodGet, "/metrics", metrics)
	}
	mux.Mount("/debug", middleware.Profiler())
	return mux
}

// NewServer creates the diagnostics http.Server. It does not start listening.
func NewServer(cfg config.DiagnosticsConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
