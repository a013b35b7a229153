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

	shopserver "github.com/Apurer/go-gin-shop-server/go"

	catalogmemory "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"

	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/persistence/postgres"
	orderworkflowadapters "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"

	paymentmemory "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/memory"
	paymentsobs "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/observability"
	paymentpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/persistence/postgres"
	paymentsapp "github.com/Apurer/go-gin-shop-server/internal/domains/payments/application"
	paymentports "github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"

	usermemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/persistence/postgres"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"

	"github.com/Apurer/go-gin-shop-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"

	"github.com/google/uuid"
)

// Run boots the shop HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "shop-api"
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

	storage := buildStorage(ctx, cfg, logger)
	defer storage.cleanup()

	if cfg.SeedDemoData {
		seedDemoData(ctx, logger, storage)
	}

	coreOrderService := ordersapp.NewService(storage.orders, storage.payments, storage.products, storage.users, storage.txm)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = orderworkflowadapters.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflowadapters.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	corePaymentService := paymentsapp.NewService(storage.payments, storage.orders, storage.users, storage.txm)
	paymentService := paymentsobs.New(
		corePaymentService,
		paymentsobs.WithLogger(logger),
		paymentsobs.WithTracer(instruments.Tracer("internal.payments.application")),
		paymentsobs.WithMeter(instruments.Meter("internal.payments.application")),
	)
	productService := catalogapp.NewService(storage.products)

	handlers := shopserver.ApiHandleFunctions{
		OrderAPI:   shopserver.NewOrderAPI(orderService, orderWorkflows),
		PaymentAPI: shopserver.NewPaymentAPI(paymentService),
		ProductAPI: shopserver.NewProductAPI(productService),
	}

	router := shopserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type storage struct {
	products catalogports.Repository
	users    userports.Repository
	orders   ordersports.Repository
	payments paymentports.Repository
	txm      tx.Manager
	cleanup  func()
}

// buildStorage wires all repositories against one backend so the transaction
// manager can span every write of a workflow.
func buildStorage(ctx context.Context, cfg Config, logger *slog.Logger) storage {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryStorage()
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryStorage()
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return memoryStorage()
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryStorage()
	}
	logger.Info("repositories configured with postgres")
	return storage{
		products: catalogpostgres.NewRepository(db),
		users:    userpostgres.NewRepository(db),
		orders:   orderpostgres.NewRepository(db),
		payments: paymentpostgres.NewRepository(db),
		txm:      platformpostgres.NewTxManager(db),
		cleanup:  func() { _ = sqlDB.Close() },
	}
}

func memoryStorage() storage {
	return storage{
		products: catalogmemory.NewRepository(),
		users:    usermemory.NewRepository(),
		orders:   ordermemory.NewRepository(),
		payments: paymentmemory.NewRepository(),
		txm:      tx.NewSerial(),
		cleanup:  func() {},
	}
}

// seedDemoData provisions a handful of accounts and products so a fresh
// instance can serve requests immediately.
func seedDemoData(ctx context.Context, logger *slog.Logger, s storage) {
	if existing, err := s.products.List(ctx); err != nil || len(existing) > 0 {
		return
	}
	users := []struct {
		username string
		roles    []auth.Role
	}{
		{"admin", []auth.Role{auth.RoleAdmin}},
		{"manager", []auth.Role{auth.RoleManager}},
		{"customer", []auth.Role{auth.RoleCustomer}},
	}
	for _, seed := range users {
		user, err := userdomain.NewUser(uuid.New(), seed.username, seed.username+"@example.com", seed.roles...)
		if err != nil {
			logger.Warn("failed to build demo user", slog.String("username", seed.username), slog.String("error", err.Error()))
			continue
		}
		saved, err := s.users.Save(ctx, user)
		if err != nil {
			logger.Warn("failed to seed demo user", slog.String("username", seed.username), slog.String("error", err.Error()))
			continue
		}
		logger.Info("seeded demo user", slog.String("username", saved.Username), slog.String("id", saved.ID.String()))
	}
	products := []struct {
		name  string
		price int64
		stock int64
	}{
		{"Keyboard", 30000, 125},
		{"Mouse", 15000, 200},
		{"Monitor", 250000, 40},
	}
	for _, seed := range products {
		product, err := catalogdomain.NewProduct(uuid.New(), seed.name, seed.price, seed.stock)
		if err != nil {
			logger.Warn("failed to build demo product", slog.String("name", seed.name), slog.String("error", err.Error()))
			continue
		}
		saved, err := s.products.Save(ctx, product)
		if err != nil {
			logger.Warn("failed to seed demo product", slog.String("name", seed.name), slog.String("error", err.Error()))
			continue
		}
		logger.Info("seeded demo product", slog.String("name", saved.Name), slog.String("id", saved.ID.String()))
	}
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
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
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
