package shopserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderhttpmapper "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	apierrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

// OrderAPI wires HTTP transport with the order bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/v1/orders
// Place a new order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	items, err := orderhttpmapper.ToItemInputs(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	order, err := api.placeOrder(c.Request.Context(), principal, items)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromOrder(order))
}

func (api *OrderAPI) placeOrder(ctx context.Context, principal auth.Principal, items []ordersports.OrderItemInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, principal, items)
	}
	return api.service.CreateOrder(ctx, principal, items)
}

// Post /api/v1/orders/:orderId/cancel
// Cancel an order, voiding its payment and restoring stock
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), principal, orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrder(order))
}

// Get /api/v1/orders/:orderId
// Load one order with its items
func (api *OrderAPI) GetOrder(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), principal, orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrder(order))
}

// Get /api/v1/orders
// List orders; admins and managers see all, customers their own
func (api *OrderAPI) ListOrders(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page := pagination.Request{
		Page: parseIntQuery(c, "page", 0),
		Size: parseIntQuery(c, "size", pagination.DefaultSize),
	}
	result, err := api.service.ListOrders(c.Request.Context(), principal, page)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromOrderPage(result))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+": "+err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
