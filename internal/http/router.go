package http

import (
	"net/http"

	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// NewRouter builds the storefront API.
func NewRouter(cfg *config.Config, sessions *Sessions, log *zap.Logger) http.Handler {
	viewHandler := NewViewHandler(cfg.RequestTimeout)
	cartHandler := NewCartHandler(cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.RequestTimeout)
	catalogHandler := NewCatalogHandler(cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(LimitBody(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(sessions))

		r.Get("/view", viewHandler.Get)
		r.Post("/navigate", viewHandler.Navigate)
		r.Get("/products", catalogHandler.Products)
		r.Get("/orders", catalogHandler.Orders)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Get)
			r.Post("/", checkoutHandler.PlaceOrder)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
