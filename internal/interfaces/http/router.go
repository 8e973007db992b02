package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/prometheus"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/http/handlers"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/http/middleware"
)

const defaultMetricsPath = "/metrics"

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree. Nil handlers leave their routes
// unregistered.
type RouterConfig struct {
	// Handlers
	DrugHandler      *handlers.DrugHandler
	NetworkHandler   *handlers.NetworkHandler
	DashboardHandler *handlers.DashboardHandler
	HealthHandler    *handlers.HealthHandler

	// Middleware
	CORS         middleware.CORSConfig
	Logging      middleware.LoggingConfig
	HTTPRecorder middleware.HTTPRecorder

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	}
	if cfg.HTTPRecorder != nil {
		r.Use(middleware.Metrics(cfg.HTTPRecorder))
	}

	// --- Probes and scrape ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = defaultMetricsPath
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	// --- Dashboard page ---
	if h := cfg.DashboardHandler; h != nil {
		r.Get("/", h.Index)
		r.Get("/drugs/{name}", h.Drug)
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		registerDrugRoutes(api, cfg.DrugHandler, cfg.NetworkHandler)
		if cfg.DrugHandler != nil {
			api.Get("/druglikeness", cfg.DrugHandler.DrugLikeness)
		}
	})

	return r
}

// registerDrugRoutes mounts the catalog and network endpoints under /drugs.
func registerDrugRoutes(r chi.Router, h *handlers.DrugHandler, nh *handlers.NetworkHandler) {
	if h == nil && nh == nil {
		return
	}
	r.Route("/drugs", func(dr chi.Router) {
		if h != nil {
			dr.Get("/search", h.Search)
			dr.Get("/top", h.Top)
		}

		dr.Route("/{name}", func(item chi.Router) {
			if h != nil {
				item.Get("/", h.Detail)
				item.Get("/properties", h.Properties)
				item.Get("/interactions", h.Interactions)
			}
			if nh != nil {
				item.Get("/network", nh.Graph)
				item.Get("/network.html", nh.Document)
				item.Post("/network/export", nh.Export)
			}
		})
	})
}

//Personal.AI order the ending
