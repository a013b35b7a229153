//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/go-gin-shop-server/test/pact"

	shopserver "github.com/Apurer/go-gin-shop-server/go"
	catalogmemory "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	paymentmemory "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/memory"
	paymentsobs "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/observability"
	paymentsapp "github.com/Apurer/go-gin-shop-server/internal/domains/payments/application"
	usermemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestShopProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedCatalog(t)
			}
			return nil, nil
		},
		pacttest.StateCustomerReady: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedCatalog(t)
				app.seedCustomer(t)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedCustomer(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	products *catalogmemory.Repository
	users    *usermemory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	products := catalogmemory.NewRepository()
	users := usermemory.NewRepository()
	orders := ordermemory.NewRepository()
	payments := paymentmemory.NewRepository()
	txm := tx.NewSerial()

	orderService := ordersobs.New(ordersapp.NewService(orders, payments, products, users, txm))
	paymentService := paymentsobs.New(paymentsapp.NewService(payments, orders, users, txm))
	productService := catalogapp.NewService(products)

	handlers := shopserver.ApiHandleFunctions{
		OrderAPI:   shopserver.NewOrderAPI(orderService, orderworkflows.NewInlineOrderWorkflows(orderService)),
		PaymentAPI: shopserver.NewPaymentAPI(paymentService),
		ProductAPI: shopserver.NewProductAPI(productService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = shopserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		products: products,
		users:    users,
		server:   server,
	}
}

// seedCatalog upserts the contract product at full stock so repeated
// verifications never run it dry.
func (a *contractProviderApp) seedCatalog(t testing.TB) {
	t.Helper()
	product, err := catalogdomain.NewProduct(
		uuid.MustParse(pacttest.ExistingProductID),
		pacttest.ExampleProductName,
		pacttest.ExampleProductPrice,
		pacttest.ExampleProductStock,
	)
	require.NoError(t, err)
	_, err = a.products.Save(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedCustomer(t testing.TB) {
	t.Helper()
	user, err := userdomain.NewUser(
		uuid.MustParse(pacttest.CustomerID),
		"pact-customer",
		"pact.customer@example.com",
	)
	require.NoError(t, err)
	_, err = a.users.Save(context.Background(), user)
	require.NoError(t, err)
}
