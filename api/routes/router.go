package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasmoreno/pharmadash-backend/api/controllers"
	"github.com/lucasmoreno/pharmadash-backend/api/middleware"
	"github.com/lucasmoreno/pharmadash-backend/internal/auth"
	"github.com/lucasmoreno/pharmadash-backend/internal/dashboard"
	"github.com/lucasmoreno/pharmadash-backend/internal/orders"
	"github.com/lucasmoreno/pharmadash-backend/internal/products"
	"github.com/lucasmoreno/pharmadash-backend/internal/reporthistory"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

// Params bundles everything the router wires together.
type Params struct {
	Config *config.Config
	Logger *logger.Logger

	// Readiness dependencies, keyed by display name. Nil entries are
	// reported as skipped.
	Pingers map[string]controllers.Pinger

	AuthService      auth.Service
	DashboardService dashboard.Service
	OrdersService    orders.Service
	ProductsService  products.Service

	// HistoryService serves persisted report snapshots. When nil the
	// history endpoint is not mounted.
	HistoryService reporthistory.Service

	// Metrics is the prometheus registry exposed on /metrics. When nil the
	// endpoint is not mounted.
	Metrics prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(p.Config.App.Origins()),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.Pingers))
	})

	if p.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(p.AuthService, p.Logger))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Logger))
		r.Use(middleware.RequireLaboratory(p.Logger))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", controllers.DashboardMetrics(p.DashboardService, p.Logger))
			r.Get("/catalog", controllers.DashboardCatalog(p.DashboardService, p.Logger))
			if p.HistoryService != nil {
				r.Get("/history", controllers.DashboardHistory(p.HistoryService, p.Logger))
			}
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(p.OrdersService, p.Logger))
			r.Patch("/{orderID}", controllers.OrdersUpdate(p.OrdersService, p.Logger))
		})

		r.Patch("/products/{productID}/availability", controllers.ProductsUpdateAvailability(p.ProductsService, p.Logger))
	})

	return r
}
