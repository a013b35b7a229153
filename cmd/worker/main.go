package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	paymentmemory "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/memory"
	paymentpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/persistence/postgres"
	paymentports "github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	usermemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	orderworkflows "github.com/Apurer/go-gin-shop-server/internal/durable/temporal/workflows/orders"
	"github.com/Apurer/go-gin-shop-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-shop-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	orderactivities "github.com/Apurer/go-gin-shop-server/internal/platform/temporal/activities/orders"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"
)

func main() {
	ctx := context.Background()
	const serviceName = "shop-worker"
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

	repos, cleanup := buildRepositories(ctx, logger)
	defer cleanup()
	coreOrderService := ordersapp.NewService(repos.orders, repos.payments, repos.products, repos.users, repos.txm)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService, ordermemory.NewIdempotencyStore())

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

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

type repositories struct {
	products catalogports.Repository
	users    userports.Repository
	orders   ordersports.Repository
	payments paymentports.Repository
	txm      tx.Manager
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (repositories, func()) {
	memory := repositories{
		products: catalogmemory.NewRepository(),
		users:    usermemory.NewRepository(),
		orders:   ordermemory.NewRepository(),
		payments: paymentmemory.NewRepository(),
		txm:      tx.NewSerial(),
	}
	dsn := os.Getenv("POSTGRES_DSN")
	if strings.TrimSpace(dsn) == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memory, func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	logger.Info("worker repositories configured with postgres")
	return repositories{
		products: catalogpostgres.NewRepository(db),
		users:    userpostgres.NewRepository(db),
		orders:   orderpostgres.NewRepository(db),
		payments: paymentpostgres.NewRepository(db),
		txm:      platformpostgres.NewTxManager(db),
	}, func() { _ = sqlDB.Close() }
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
