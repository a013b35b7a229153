package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

// PlaceOrderActivityName runs the full order placement workflow step.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// PlaceOrderInput carries the caller identity and requested lines into the
// placement activity.
type PlaceOrderInput struct {
	Principal auth.Principal
	Items     []ordersports.OrderItemInput
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service     ordersports.Service
	idempotency ordersports.IdempotencyStore
}

// NewActivities wires the order service into the Temporal activities bundle.
// The idempotency store keeps retried executions from placing twice.
func NewActivities(service ordersports.Service, idempotency ordersports.IdempotencyStore) *Activities {
	return &Activities{service: service, idempotency: idempotency}
}

// PlaceOrder places an order and returns the stored aggregate. Each execution
// records the order it placed under the workflow run id; a retried attempt
// that committed before failing replays the recorded order instead of placing
// a second one. Business rule rejections come back non-retryable.
func (a *Activities) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized")
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.Principal.UserID, "items", len(input.Items))

	key := activity.GetInfo(ctx).WorkflowExecution.RunID
	if a.idempotency != nil && key != "" {
		record, err := a.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if record != nil {
			logger.Info("PlaceOrder replaying recorded placement", "orderId", record.OrderID)
			return a.service.GetOrder(ctx, input.Principal, record.OrderID)
		}
	}

	order, err := a.service.CreateOrder(ctx, input.Principal, input.Items)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.Principal.UserID, "error", err)
		return nil, classifyError(err)
	}
	if a.idempotency != nil && key != "" {
		if _, err := a.idempotency.Save(ctx, ordersports.IdempotencyRecord{Key: key, OrderID: order.ID}); err != nil {
			logger.Error("PlaceOrder failed to record placement", "orderId", order.ID, "error", err)
			return nil, err
		}
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "total", order.TotalAmount)
	return order, nil
}

// classifyError marks business rule rejections non-retryable; retrying cannot
// make an out-of-stock product available or an unknown user exist.
func classifyError(err error) error {
	for _, sentinel := range []error{
		ordersapp.ErrOrderItemsEmpty,
		ordersapp.ErrInvalidQuantity,
		ordersapp.ErrProductNotFound,
		ordersapp.ErrOutOfStock,
		ordersapp.ErrUserNotFound,
		ordersapp.ErrAmountOverflow,
		ordersapp.ErrOrderForbidden,
	} {
		if errors.Is(err, sentinel) {
			return temporal.NewNonRetryableApplicationError(err.Error(), "OrderRejected", err)
		}
	}
	return err
}
