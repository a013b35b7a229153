//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	orderpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	paymentpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/persistence/postgres"
	userpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/persistence/postgres"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedOrder(t *testing.T, repo *orderpostgres.Repository, userID uuid.UUID) *domain.Order {
	t.Helper()
	order := domain.NewOrder(userID)
	item, err := domain.NewOrderItem(order.ID, uuid.New(), "Keyboard", 30000, 2)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))
	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, repo, uuid.New())

	retrieved, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCreated, retrieved.Status)
	assert.Equal(t, int64(60000), retrieved.TotalAmount)
	require.Len(t, retrieved.Items, 1)
	assert.Equal(t, "Keyboard", retrieved.Items[0].ProductName)
}

func TestPostgresRepository_SaveKeepsItemsImmutable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, repo, uuid.New())

	paymentID := uuid.New()
	require.NoError(t, order.MarkPaid(paymentID))
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	retrieved, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, retrieved.Status)
	require.NotNil(t, retrieved.PaymentID)
	assert.Equal(t, paymentID, *retrieved.PaymentID)
	assert.Len(t, retrieved.Items, 1)
}

func TestPostgresRepository_FindByUserIDPaged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	for i := 0; i < 3; i++ {
		seedOrder(t, repo, owner)
	}
	seedOrder(t, repo, uuid.New())

	page, err := repo.FindByUserID(ctx, owner, pagination.Request{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)

	all, err := repo.FindAll(ctx, pagination.Request{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
}

// TestOrderService_OutOfStockRollsBackTransaction drives the full placement
// workflow against a real database and checks that a failed order leaves no
// stock mutation and no order rows behind.
func TestOrderService_OutOfStockRollsBackTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	products := catalogpostgres.NewRepository(db)
	users := userpostgres.NewRepository(db)
	orders := orderpostgres.NewRepository(db)
	payments := paymentpostgres.NewRepository(db)
	service := ordersapp.NewService(orders, payments, products, users, platformpostgres.NewTxManager(db))

	buyer, err := userdomain.NewUser(uuid.New(), "buyer", "buyer@example.com")
	require.NoError(t, err)
	_, err = users.Save(ctx, buyer)
	require.NoError(t, err)

	inStock, err := catalogdomain.NewProduct(uuid.New(), "Keyboard", 30000, 5)
	require.NoError(t, err)
	_, err = products.Save(ctx, inStock)
	require.NoError(t, err)
	scarce, err := catalogdomain.NewProduct(uuid.New(), "Monitor", 250000, 1)
	require.NoError(t, err)
	_, err = products.Save(ctx, scarce)
	require.NoError(t, err)

	principal := auth.Principal{UserID: buyer.ID}
	_, err = service.CreateOrder(ctx, principal, []ports.OrderItemInput{
		{ProductID: inStock.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 3},
	})
	require.ErrorIs(t, err, ordersapp.ErrOutOfStock)

	// The first product's decrement must have rolled back with the order.
	fresh, err := products.GetByID(ctx, inStock.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), fresh.Stock)

	page, err := orders.FindByUserID(ctx, buyer.ID, pagination.Request{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestOrderService_CancelRestoresStockTransactionally(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	products := catalogpostgres.NewRepository(db)
	users := userpostgres.NewRepository(db)
	orders := orderpostgres.NewRepository(db)
	payments := paymentpostgres.NewRepository(db)
	service := ordersapp.NewService(orders, payments, products, users, platformpostgres.NewTxManager(db))

	buyer, err := userdomain.NewUser(uuid.New(), "buyer", "buyer@example.com")
	require.NoError(t, err)
	_, err = users.Save(ctx, buyer)
	require.NoError(t, err)

	product, err := catalogdomain.NewProduct(uuid.New(), "Mouse", 15000, 10)
	require.NoError(t, err)
	_, err = products.Save(ctx, product)
	require.NoError(t, err)

	principal := auth.Principal{UserID: buyer.ID}
	order, err := service.CreateOrder(ctx, principal, []ports.OrderItemInput{
		{ProductID: product.ID, Quantity: 4},
	})
	require.NoError(t, err)

	afterOrder, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), afterOrder.Stock)

	cancelled, err := service.CancelOrder(ctx, principal, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	afterCancel, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), afterCancel.Stock)
}
