package router

import (
	"net/http"

	"github.com/minhnion/WellHomeKitchen-BE/internal/handler"
	"github.com/minhnion/WellHomeKitchen-BE/internal/metrics"
	"github.com/minhnion/WellHomeKitchen-BE/internal/middleware"
	"github.com/minhnion/WellHomeKitchen-BE/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers bundles the endpoint handlers the router wires up.
type Handlers struct {
	Product *handler.ProductHandler
	Sale    *handler.SaleHandler
	Voucher *handler.VoucherHandler
	Order   *handler.OrderHandler
	Review  *handler.ReviewHandler
}

// New creates the HTTP router with all routes and middleware configured.
func New(h Handlers, jwtSecret string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(metrics.Instrument(routePattern))
	r.Use(middleware.Authenticate(jwtSecret, logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	staff := middleware.RequireRole(model.RoleProductManager, model.RoleAdmin)
	admin := middleware.RequireRole(model.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.List)
			r.Get("/{id}", h.Product.GetByID)
			r.Get("/{id}/reviews", h.Review.ListByProduct)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.Sale.GetAll)
			r.Get("/products", h.Sale.GetSaleProducts)
			r.Get("/categories", h.Sale.GetSaleCategories)

			r.Group(func(r chi.Router) {
				r.Use(staff)
				r.Post("/", h.Sale.Create)
				r.Put("/{id}", h.Sale.Update)
				r.Delete("/{id}", h.Sale.Delete)
			})
		})

		r.Route("/vouchers", func(r chi.Router) {
			r.Post("/validate", h.Voucher.Validate)
			r.Get("/{code}", h.Voucher.GetByCode)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/", h.Voucher.List)
				r.Post("/", h.Voucher.Create)
				r.Put("/{id}", h.Voucher.Update)
				r.Delete("/{id}", h.Voucher.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)
			r.Get("/{id}", h.Order.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(staff)
				r.Get("/", h.Order.List)
				r.Patch("/{id}/status", h.Order.UpdateStatus)
				r.Patch("/{id}/payment", h.Order.UpdatePaymentStatus)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Review.Create)
			r.Put("/{id}", h.Review.Update)
			r.Delete("/{id}", h.Review.Delete)
		})
	})

	return r
}

// routePattern resolves the matched chi route template for metrics labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
