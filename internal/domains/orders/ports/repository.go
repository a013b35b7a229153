package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order aggregates together with their items.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page pagination.Request) (pagination.Page[*domain.Order], error)
	FindAll(ctx context.Context, page pagination.Request) (pagination.Page[*domain.Order], error)
}
