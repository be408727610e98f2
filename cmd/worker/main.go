package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	cartcatalog "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/memory"
	cartpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/sportsstore/go-gin-store-server/internal/domains/cart/application"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
	catalogmemory "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/application"
	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
	orderscartstore "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/cartstore"
	orderscatalog "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/sportsstore/go-gin-store-server/internal/domains/orders/application"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	platformobservability "github.com/sportsstore/go-gin-store-server/internal/platform/observability"
	platformpostgres "github.com/sportsstore/go-gin-store-server/internal/platform/postgres"
	orderactivities "github.com/sportsstore/go-gin-store-server/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/sportsstore/go-gin-store-server/internal/platform/temporal/workflows/orders"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()

	ordersService := buildOrdersService(db, logger)
	checkoutActivities := orderactivities.NewActivities(ordersService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: orderworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(checkoutActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.CheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildOrdersService assembles the checkout service with the same collaborators
// the API process uses, so replayed activities observe identical semantics.
func buildOrdersService(db *gorm.DB, logger *slog.Logger) ordersports.Service {
	catalogService := buildCatalogService(db)
	cartService := buildCartService(db, catalogService)

	var (
		repo ordersports.Repository
		opts = []ordersapp.Option{ordersapp.WithLogger(logger)}
	)
	if db != nil {
		repo = orderspostgres.NewRepository(db)
		opts = append(opts, ordersapp.WithAtomic(platformpostgres.NewAtomic(db)))
	} else {
		logger.Warn("worker running without postgres, orders kept in memory")
		repo = ordersmemory.NewRepository()
	}
	bridge := orderscatalog.New(catalogService)
	return ordersapp.NewService(
		repo,
		bridge,
		bridge,
		orderscartstore.New(cartService),
		opts...,
	)
}

func buildCatalogService(db *gorm.DB) catalogports.Service {
	if db != nil {
		pg := catalogpostgres.NewRepository(db)
		return catalogapp.NewService(pg, pg)
	}
	mem := catalogmemory.NewRepository()
	return catalogapp.NewService(mem, mem)
}

func buildCartService(db *gorm.DB, catalogService catalogports.Service) cartports.Service {
	var repo cartports.Repository
	if db != nil {
		repo = cartpostgres.NewRepository(db)
	} else {
		repo = cartmemory.NewRepository()
	}
	return cartapp.NewService(repo, cartcatalog.New(catalogService))
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
