package shopserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	paymentmemory "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/memory"
	paymentsapp "github.com/Apurer/go-gin-shop-server/internal/domains/payments/application"
	usermemory "github.com/Apurer/go-gin-shop-server/internal/domains/users/adapters/memory"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"
)

type testServer struct {
	router   *gin.Engine
	users    *usermemory.Repository
	products *catalogmemory.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := catalogmemory.NewRepository()
	orders := ordermemory.NewRepository()
	payments := paymentmemory.NewRepository()
	users := usermemory.NewRepository()
	txm := tx.NewSerial()

	orderService := ordersapp.NewService(orders, payments, products, users, txm)
	paymentService := paymentsapp.NewService(payments, orders, users, txm)
	productService := catalogapp.NewService(products)

	handlers := ApiHandleFunctions{
		OrderAPI:   NewOrderAPI(orderService, nil),
		PaymentAPI: NewPaymentAPI(paymentService),
		ProductAPI: NewProductAPI(productService),
	}
	router := NewRouterWithGinEngine(gin.New(), handlers)
	return &testServer{router: router, users: users, products: products}
}

func (s *testServer) seedUser(t *testing.T, roles ...auth.Role) uuid.UUID {
	t.Helper()
	user, err := userdomain.NewUser(uuid.New(), "user-"+uuid.NewString()[:8], "", roles...)
	require.NoError(t, err)
	saved, err := s.users.Save(context.Background(), user)
	require.NoError(t, err)
	return saved.ID
}

func (s *testServer) seedProduct(t *testing.T, name string, price, stock int64) uuid.UUID {
	t.Helper()
	product, err := catalogdomain.NewProduct(uuid.New(), name, price, stock)
	require.NoError(t, err)
	saved, err := s.products.Save(context.Background(), product)
	require.NoError(t, err)
	return saved.ID
}

func (s *testServer) do(t *testing.T, method, path string, userID uuid.UUID, roles string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set(HeaderUserID, userID.String())
	}
	if roles != "" {
		req.Header.Set(HeaderUserRoles, roles)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func orderPayload(productID uuid.UUID, quantity int64) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"productId": productID.String(), "quantity": quantity},
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "Keyboard", 1500, 125)

	rec := s.do(t, http.MethodPost, "/api/v1/orders", userID, "", orderPayload(productID, 2))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		TotalAmount int64  `json:"totalAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "CREATED", body.Status)
	require.Equal(t, int64(3000), body.TotalAmount)

	product, err := s.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.Equal(t, int64(123), product.Stock)
}

func TestCreateOrderEndpoint_Unauthenticated(t *testing.T) {
	s := newTestServer(t)
	productID := s.seedProduct(t, "Keyboard", 1500, 10)

	rec := s.do(t, http.MethodPost, "/api/v1/orders", uuid.Nil, "", orderPayload(productID, 1))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderEndpoint_OutOfStockConflict(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "Keyboard", 1500, 1)

	rec := s.do(t, http.MethodPost, "/api/v1/orders", userID, "", orderPayload(productID, 5))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestOrderPaymentCancelFlow(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "Keyboard", 1500, 125)

	rec := s.do(t, http.MethodPost, "/api/v1/orders", userID, "", orderPayload(productID, 2))
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = s.do(t, http.MethodPost, "/api/v1/payments", userID, "", map[string]any{
		"orderId":        order.ID,
		"method":         "CARD",
		"transactionKey": "txn-flow-001",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var receipt struct {
		Payment struct {
			ID             string `json:"id"`
			Status         string `json:"status"`
			Amount         int64  `json:"amount"`
			TransactionKey string `json:"transactionKey"`
		} `json:"payment"`
		Order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	payment := receipt.Payment
	require.Equal(t, "COMPLETED", payment.Status)
	require.Equal(t, int64(3000), payment.Amount)
	require.Equal(t, "txn-flow-001", payment.TransactionKey)
	require.Equal(t, order.ID, receipt.Order.ID)
	require.Equal(t, "PAID", receipt.Order.Status)

	// A second payment for the same order conflicts.
	rec = s.do(t, http.MethodPost, "/api/v1/payments", userID, "", map[string]any{
		"orderId": order.ID,
		"method":  "MOBILE",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/cancel", order.ID), userID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cancelled struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cancelled))
	require.Equal(t, "CANCELLED", cancelled.Status)

	product, err := s.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.Equal(t, int64(125), product.Stock)

	rec = s.do(t, http.MethodGet, "/api/v1/payments/"+payment.ID, userID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details struct {
		Payment struct {
			Status string `json:"status"`
		} `json:"payment"`
		Order struct {
			Status string `json:"status"`
		} `json:"order"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	require.Equal(t, "CANCELLED", details.Payment.Status)
	require.Equal(t, "CANCELLED", details.Order.Status)
	require.Equal(t, userID.String(), details.User.ID)
}

func TestGetOrderEndpoint_ForbiddenForStranger(t *testing.T) {
	s := newTestServer(t)
	owner := s.seedUser(t)
	stranger := s.seedUser(t)
	productID := s.seedProduct(t, "Keyboard", 1500, 10)

	rec := s.do(t, http.MethodPost, "/api/v1/orders", owner, "", orderPayload(productID, 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = s.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, stranger, "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, stranger, "ADMIN", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListOrdersEndpoint_Paged(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "Keyboard", 1500, 100)

	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/api/v1/orders", userID, "", orderPayload(productID, 1))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/orders?page=0&size=2", userID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items         []json.RawMessage `json:"items"`
		TotalElements int64             `json:"totalElements"`
		TotalPages    int               `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(3), page.TotalElements)
	require.Equal(t, 2, page.TotalPages)
}

func TestProductEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.seedUser(t, auth.RoleAdmin)
	customer := s.seedUser(t)

	rec := s.do(t, http.MethodPost, "/api/v1/products", admin, "ADMIN", map[string]any{
		"name":  "Keyboard",
		"price": 3000,
		"stock": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))

	// Customers cannot manage the catalog.
	rec = s.do(t, http.MethodPost, "/api/v1/products", customer, "", map[string]any{
		"name":  "Mouse",
		"price": 500,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/products/"+product.ID, admin, "ADMIN", map[string]any{
		"price": 2500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/products/"+product.ID, uuid.Nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched struct {
		Price int64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, int64(2500), fetched.Price)

	rec = s.do(t, http.MethodGet, "/api/v1/products", uuid.Nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPaymentEndpoint_NotFound(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payments/"+uuid.NewString(), userID, "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
