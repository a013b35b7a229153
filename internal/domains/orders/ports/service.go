package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Service exposes the order workflow to inbound adapters.
type Service interface {
	CreateOrder(ctx context.Context, principal auth.Principal, items []OrderItemInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error)
	GetOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, principal auth.Principal, page pagination.Request) (pagination.Page[*domain.Order], error)
}

// WorkflowOrchestrator runs order placement, either inline or through a
// durable workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, principal auth.Principal, items []OrderItemInput) (*domain.Order, error)
}
