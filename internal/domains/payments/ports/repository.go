package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
)

var ErrNotFound = errors.New("payment not found")

// Repository persists payment records. An order has at most one payment.
type Repository interface {
	Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error)
}
