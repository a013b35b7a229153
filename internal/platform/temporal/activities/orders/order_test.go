package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	catalogmemory "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	paymentmemory "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/memory"
	usermemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"
)

type activityFixture struct {
	activities *Activities
	orders     *ordermemory.Repository
	principal  auth.Principal
	product    catalogdomain.Product
}

func newActivityFixture(t *testing.T, stock int64) *activityFixture {
	t.Helper()
	orders := ordermemory.NewRepository()
	payments := paymentmemory.NewRepository()
	products := catalogmemory.NewRepository()
	users := usermemory.NewRepository()
	service := ordersapp.NewService(orders, payments, products, users, tx.NewSerial())

	user, err := userdomain.NewUser(uuid.New(), "buyer", "")
	require.NoError(t, err)
	savedUser, err := users.Save(context.Background(), user)
	require.NoError(t, err)

	product, err := catalogdomain.NewProduct(uuid.New(), "Keyboard", 1000, stock)
	require.NoError(t, err)
	savedProduct, err := products.Save(context.Background(), product)
	require.NoError(t, err)

	return &activityFixture{
		activities: NewActivities(service, ordermemory.NewIdempotencyStore()),
		orders:     orders,
		principal:  auth.Principal{UserID: savedUser.ID, Roles: []auth.Role{auth.RoleCustomer}},
		product:    savedProduct,
	}
}

func TestPlaceOrderActivity_RetryReplaysRecordedOrder(t *testing.T) {
	f := newActivityFixture(t, 10)
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(f.activities.PlaceOrder)

	input := PlaceOrderInput{
		Principal: f.principal,
		Items:     []ordersports.OrderItemInput{{ProductID: f.product.ID, Quantity: 2}},
	}

	first, err := env.ExecuteActivity(f.activities.PlaceOrder, input)
	require.NoError(t, err)
	var placed domain.Order
	require.NoError(t, first.Get(&placed))

	// Same run id, so a retried execution must not place a second order.
	second, err := env.ExecuteActivity(f.activities.PlaceOrder, input)
	require.NoError(t, err)
	var replayed domain.Order
	require.NoError(t, second.Get(&replayed))
	require.Equal(t, placed.ID, replayed.ID)

	page, err := f.orders.FindByUserID(context.Background(), f.principal.UserID, pagination.Request{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestPlaceOrderActivity_BusinessRejectionIsNonRetryable(t *testing.T) {
	f := newActivityFixture(t, 1)
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(f.activities.PlaceOrder)

	_, err := env.ExecuteActivity(f.activities.PlaceOrder, PlaceOrderInput{
		Principal: f.principal,
		Items:     []ordersports.OrderItemInput{{ProductID: f.product.ID, Quantity: 5}},
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.True(t, appErr.NonRetryable())
}
