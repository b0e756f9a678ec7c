package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marigoldevents/marigold-backend/api/controllers"
	"github.com/marigoldevents/marigold-backend/api/middleware"
	bookingsvc "github.com/marigoldevents/marigold-backend/internal/bookings"
	cartsvc "github.com/marigoldevents/marigold-backend/internal/cart"
	checkoutsvc "github.com/marigoldevents/marigold-backend/internal/checkout"
	gallerysvc "github.com/marigoldevents/marigold-backend/internal/gallery"
	ordersvc "github.com/marigoldevents/marigold-backend/internal/orders"
	productsvc "github.com/marigoldevents/marigold-backend/internal/products"
	"github.com/marigoldevents/marigold-backend/pkg/config"
	"github.com/marigoldevents/marigold-backend/pkg/db"
	"github.com/marigoldevents/marigold-backend/pkg/logger"
	"github.com/marigoldevents/marigold-backend/pkg/metrics"
	pkgredis "github.com/marigoldevents/marigold-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	cartService cartsvc.Service,
	productService productsvc.Service,
	galleryService gallerysvc.Service,
	bookingService bookingsvc.Service,
	checkoutService checkoutsvc.Service,
	orderService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(productService, logg))
		r.Get("/categories", controllers.ProductCategories(productService, logg))
		r.Get("/gallery", controllers.GalleryList(galleryService, logg))
		r.Post("/bookings", controllers.BookingCreate(bookingService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/track", controllers.OrderTrack(orderService, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).
				Get("/history", controllers.OrderHistory(orderService, logg))
			r.With(middleware.Idempotency(redisClient, logg)).
				Post("/", controllers.OrderSubmit(checkoutService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartToken(logg))
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{productID}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/toggle", controllers.CartToggle(cartService, logg))
			r.Post("/clear", controllers.CartClear(cartService, logg))
		})

		r.With(
			middleware.CartToken(logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/checkout", controllers.CheckoutSubmit(cartService, checkoutService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(orderService, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(orderService, logg))
		})
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(productService, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(productService, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(productService, logg))
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.AdminBookingList(bookingService, logg))
			r.Patch("/{bookingId}/status", controllers.AdminBookingUpdateStatus(bookingService, logg))
		})
		r.Route("/gallery", func(r chi.Router) {
			r.Post("/", controllers.AdminGalleryCreate(galleryService, logg))
			r.Delete("/{imageId}", controllers.AdminGalleryDelete(galleryService, logg))
		})
	})

	return r
}
