package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sereneleaf/storefront-backend/api/controllers"
	"github.com/sereneleaf/storefront-backend/api/middleware"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
	"github.com/sereneleaf/storefront-backend/pkg/redis"
)

type eventsPinger interface {
	Ping(context.Context) error
}

type Services struct {
	Catalog   controllers.CatalogService
	Cart      controllers.CartService
	Checkout  controllers.CheckoutService
	Orders    controllers.OrdersService
	Wishlist  controllers.WishlistService
	Analytics controllers.AnalyticsService
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	events eventsPinger,
	gatherer prometheus.Gatherer,
	svcs Services,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient, events))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	currency := cfg.Checkout.Currency

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Catalog, svcs.Analytics, logg))
			r.Get("/featured", controllers.ProductFeatured(svcs.Catalog, svcs.Analytics, logg))
			r.Get("/{slug}", controllers.ProductDetail(svcs.Catalog, svcs.Analytics, logg))
			r.Post("/{slug}/click", controllers.ProductClick(svcs.Catalog, svcs.Analytics, logg))
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", controllers.PromotionList(svcs.Catalog, svcs.Analytics, logg))
			r.Post("/{promotionId}/click", controllers.PromotionClick(svcs.Catalog, svcs.Analytics, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(svcs.Cart, svcs.Analytics, currency, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, currency, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, svcs.Catalog, svcs.Analytics, currency, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(svcs.Cart, svcs.Analytics, currency, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, svcs.Analytics, currency, logg))
			r.With(middleware.CouponRateLimit(cfg.Coupon, redisClient, logg)).
				Post("/coupon", controllers.CartApplyCoupon(svcs.Cart, svcs.Catalog, svcs.Analytics, currency, logg))
			r.Delete("/coupon", controllers.CartRemoveCoupon(svcs.Cart, currency, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(svcs.Wishlist, logg))
			r.Post("/", controllers.WishlistToggle(svcs.Wishlist, svcs.Catalog, svcs.Analytics, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutStart(svcs.Checkout, logg))
			r.Get("/", controllers.CheckoutFetch(svcs.Checkout, logg))
			r.Post("/shipping", controllers.CheckoutShipping(svcs.Checkout, logg))
			r.Post("/payment", controllers.CheckoutPayment(svcs.Checkout, logg))
			r.Post("/place", controllers.CheckoutPlace(svcs.Checkout, logg))
		})

		r.Get("/orders/confirmation/{orderId}", controllers.OrderConfirmation(svcs.Orders, logg))

		r.Post("/identify", controllers.Identify(svcs.Analytics, logg))
		r.Post("/page", controllers.PageView(svcs.Analytics, logg))
	})

	return r
}
