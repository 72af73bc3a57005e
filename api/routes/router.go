package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sivermarket/siver-backend/api/controllers"
	"github.com/sivermarket/siver-backend/api/middleware"
	"github.com/sivermarket/siver-backend/internal/consolidation"
	"github.com/sivermarket/siver-backend/internal/shipping"
	"github.com/sivermarket/siver-backend/pkg/config"
	"github.com/sivermarket/siver-backend/pkg/db"
	"github.com/sivermarket/siver-backend/pkg/logger"
	"github.com/sivermarket/siver-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	shippingService shipping.Service,
	consolidationService consolidation.Service,
	settingsService consolidation.SettingsService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Storefront surface: quoting and destination lookups need no token.
	r.Route("/api/v1/shipping", func(r chi.Router) {
		r.Post("/quote", controllers.ShippingQuote(shippingService, logg))
		r.Get("/communes", controllers.ListCommunes(shippingService, logg))
		r.Get("/departments", controllers.ListDepartments(shippingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/rates/brackets", controllers.ListRateBrackets(shippingService, logg))
			r.Get("/rates/categories", controllers.ListCategoryRates(shippingService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager(logg))
				r.Use(middleware.Idempotency(redisClient, logg))
				r.Post("/communes", controllers.CreateCommune(shippingService, logg))
				r.Patch("/communes/{communeId}", controllers.UpdateCommune(shippingService, logg))
				r.Put("/rates/brackets", controllers.ReplaceRateBrackets(shippingService, logg))
				r.Put("/rates/categories", controllers.UpsertCategoryRate(shippingService, logg))
				r.Delete("/rates/categories/{categoryId}", controllers.DeleteCategoryRate(shippingService, logg))
			})
		})
	})

	r.Route("/api/v1/purchase-orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/", controllers.ListPurchaseOrders(consolidationService, logg))
		r.Get("/open", controllers.GetOpenPurchaseOrder(consolidationService, logg))
		r.Get("/{poId}", controllers.GetPurchaseOrder(consolidationService, logg))
		r.Get("/{poId}/manifest", controllers.PurchaseOrderManifest(consolidationService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager(logg))
			r.Use(middleware.Idempotency(redisClient, logg))
			r.Post("/", controllers.OpenPurchaseOrder(consolidationService, logg))
			r.Post("/{poId}/close", controllers.ClosePurchaseOrder(consolidationService, logg))
			r.Post("/{poId}/tracking", controllers.AssignPurchaseOrderTracking(consolidationService, logg))
			r.Post("/{poId}/advance", controllers.AdvancePurchaseOrderStage(consolidationService, logg))
		})
	})

	r.Route("/api/v1/consolidation/settings", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/", controllers.GetConsolidationSettings(settingsService, logg))
		r.With(middleware.RequireManager(logg)).Put("/", controllers.UpdateConsolidationSettings(settingsService, logg))
	})

	return r
}
