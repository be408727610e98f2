package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storeserver "github.com/sportsstore/go-gin-store-server/go"

	cartcatalog "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/memory"
	cartobs "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/sportsstore/go-gin-store-server/internal/domains/cart/application"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"

	catalogmemory "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/application"
	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"

	orderscartstore "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/cartstore"
	orderscatalog "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sportsstore/go-gin-store-server/internal/domains/orders/application"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"

	usermemory "github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/memory"
	userobs "github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/observability"
	userpostgres "github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/sportsstore/go-gin-store-server/internal/domains/users/application"
	userports "github.com/sportsstore/go-gin-store-server/internal/domains/users/ports"

	platformmigrations "github.com/sportsstore/go-gin-store-server/internal/platform/migrations"
	platformobservability "github.com/sportsstore/go-gin-store-server/internal/platform/observability"
	platformpostgres "github.com/sportsstore/go-gin-store-server/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	catalogService := buildCatalogService(db, instruments)
	cartService := buildCartService(db, catalogService, instruments)
	userService := buildUserService(db, cfg.SessionTTL, instruments)
	ordersService := buildOrdersService(db, catalogService, cartService, instruments)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(ordersService)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled, running checkout inline")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := storeserver.ApiHandleFunctions{
		ProductAPI:  storeserver.NewProductAPI(catalogService, userService),
		CartAPI:     storeserver.NewCartAPI(cartService, userService),
		CheckoutAPI: storeserver.NewCheckoutAPI(ordersService, orderWorkflows, userService),
		UserAPI:     storeserver.NewUserAPI(userService, cartService),
	}

	router := storeserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildCatalogService(db *gorm.DB, instruments *platformobservability.Instruments) catalogports.Service {
	var (
		repo   catalogports.Repository
		ledger catalogports.Ledger
	)
	if db != nil {
		pg := catalogpostgres.NewRepository(db)
		repo, ledger = pg, pg
	} else {
		mem := catalogmemory.NewRepository()
		repo, ledger = mem, mem
	}
	core := catalogapp.NewService(repo, ledger)
	return catalogobs.New(
		core,
		catalogobs.WithLogger(instruments.Logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
}

func buildCartService(db *gorm.DB, catalogService catalogports.Service, instruments *platformobservability.Instruments) cartports.Service {
	var repo cartports.Repository
	if db != nil {
		repo = cartpostgres.NewRepository(db)
	} else {
		repo = cartmemory.NewRepository()
	}
	core := cartapp.NewService(repo, cartcatalog.New(catalogService))
	return cartobs.New(
		core,
		cartobs.WithLogger(instruments.Logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
}

func buildUserService(db *gorm.DB, sessionTTL time.Duration, instruments *platformobservability.Instruments) userports.Service {
	var (
		repo     userports.Repository
		sessions userports.SessionStore
	)
	if db != nil {
		repo = userpostgres.NewRepository(db)
		sessions = userpostgres.NewSessionStore(db, sessionTTL)
	} else {
		repo = usermemory.NewRepository()
		sessions = usermemory.NewSessionStore(sessionTTL)
	}
	core := userapp.NewService(repo, sessions)
	return userobs.New(
		core,
		userobs.WithLogger(instruments.Logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
}

func buildOrdersService(db *gorm.DB, catalogService catalogports.Service, cartService cartports.Service, instruments *platformobservability.Instruments) ordersports.Service {
	var (
		repo ordersports.Repository
		opts = []ordersapp.Option{ordersapp.WithLogger(instruments.Logger)}
	)
	if db != nil {
		repo = orderspostgres.NewRepository(db)
		opts = append(opts, ordersapp.WithAtomic(platformpostgres.NewAtomic(db)))
	} else {
		repo = ordersmemory.NewRepository()
	}
	bridge := orderscatalog.New(catalogService)
	core := ordersapp.NewService(
		repo,
		bridge,
		bridge,
		orderscartstore.New(cartService),
		opts...,
	)
	return ordersobs.New(
		core,
		ordersobs.WithLogger(instruments.Logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
