package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/expirytracker/expirytracker-backend/api/controllers"
	"github.com/expirytracker/expirytracker-backend/api/middleware"
	"github.com/expirytracker/expirytracker-backend/internal/consumable"
	"github.com/expirytracker/expirytracker-backend/pkg/config"
	"github.com/expirytracker/expirytracker-backend/pkg/logger"
	"github.com/expirytracker/expirytracker-backend/pkg/metrics"
)

// NewRouter wires the service endpoints. Paths match the original server so
// the legacy desktop client keeps working unchanged.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *consumable.Store,
	flusher controllers.Flusher,
) http.Handler {
	r := chi.NewRouter()

	reg := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/ping", controllers.Ping())
	r.Get("/exit", controllers.FlushItems(flusher, logg))

	r.Get("/listAll", controllers.ListItems(store, logg, consumable.FilterAll))
	r.Get("/listExpired", controllers.ListItems(store, logg, consumable.FilterExpired))
	r.Get("/listNonExpired", controllers.ListItems(store, logg, consumable.FilterNotExpired))
	r.Get("/listExpiringIn7Days", controllers.ListItems(store, logg, consumable.FilterExpiringSoon))

	r.Post("/addItem/{kind}", controllers.AddItem(store, logg))
	r.Post("/removeItem/{id}", controllers.RemoveItem(store, logg))

	return r
}
