package router

import (
	"net/http"

	"discount-kart/internal/handler"
	"discount-kart/internal/metrics"
	"discount-kart/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Products *handler.ProductHandler
	Quotes   *handler.QuoteHandler
}

// New creates the HTTP router with all routes and middleware configured.
// gatherer serves /metrics and m records per-route request metrics.
func New(
	h Handlers,
	apiKey string,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/products", h.Products.GetAll)
	mux.HandleFunc("GET /api/products/{id}", h.Products.GetByID)

	mux.HandleFunc("POST /api/quotes", h.Quotes.Quote)
	mux.HandleFunc("POST /api/discounts/evaluate", h.Quotes.Evaluate)

	// Applied outermost first: Recovery -> CorrelationID -> Logging -> CORS -> APIKeyAuth -> Metrics
	var handler http.Handler = mux
	handler = middleware.Metrics(m)(handler)
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.CorrelationID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
