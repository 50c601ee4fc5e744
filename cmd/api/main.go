package main

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sereneleaf/storefront-backend/api/routes"
	"github.com/sereneleaf/storefront-backend/internal/analytics"
	"github.com/sereneleaf/storefront-backend/internal/cart"
	"github.com/sereneleaf/storefront-backend/internal/catalog"
	"github.com/sereneleaf/storefront-backend/internal/checkout"
	"github.com/sereneleaf/storefront-backend/internal/orders"
	"github.com/sereneleaf/storefront-backend/internal/wishlist"
	"github.com/sereneleaf/storefront-backend/pkg/config"
	"github.com/sereneleaf/storefront-backend/pkg/logger"
	"github.com/sereneleaf/storefront-backend/pkg/metrics"
	"github.com/sereneleaf/storefront-backend/pkg/pubsub"
	"github.com/sereneleaf/storefront-backend/pkg/redis"
)

// eventTransport holds the Pub/Sub client once the analytics sink has
// resolved in the background. Before that, readiness skips the check.
type eventTransport struct {
	mu     sync.Mutex
	client *pubsub.Client
}

func (t *eventTransport) set(client *pubsub.Client) {
	t.mu.Lock()
	t.client = client
	t.mu.Unlock()
}

func (t *eventTransport) Ping(ctx context.Context) error {
	t.mu.Lock()
	client := t.client
	t.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Ping(ctx)
}

func (t *eventTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	catalogSvc, err := catalog.New()
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	analyticsMetrics := metrics.NewAnalyticsMetrics(registry)

	analyticsSvc := analytics.NewService(cfg.Analytics, cfg.Search, analyticsMetrics, logg)
	defer analyticsSvc.Close()

	events := &eventTransport{}
	if cfg.Analytics.Enabled {
		// Resolution runs in the background; events emitted before the
		// sink is ready are dropped, never queued.
		analyticsSvc.ResolveSink(context.Background(), func(ctx context.Context) (analytics.Sink, error) {
			client, err := pubsub.NewClient(ctx, cfg.GCP, cfg.Analytics, logg)
			if err != nil {
				return nil, err
			}
			events.set(client)
			return analytics.NewPubSubSink(client.AnalyticsPublisher()), nil
		})
	}
	defer func() {
		if err := events.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	cartSvc := cart.NewService(redisClient, cfg.Cart, logg)
	ordersSvc := orders.NewService(redisClient, analyticsSvc, cfg.Checkout, logg)
	checkoutSvc := checkout.NewService(redisClient, cartSvc, ordersSvc, analyticsSvc, cfg.Checkout, logg)
	wishlistSvc := wishlist.NewService(redisClient, cfg.Cart.TTL)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, events, registry, routes.Services{
			Catalog:   catalogSvc,
			Cart:      cartSvc,
			Checkout:  checkoutSvc,
			Orders:    ordersSvc,
			Wishlist:  wishlistSvc,
			Analytics: analyticsSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront api stopped unexpectedly", err)
		os.Exit(1)
	}
}
