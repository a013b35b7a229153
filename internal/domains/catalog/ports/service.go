package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

// ProductInput carries the mutable product fields. Nil pointers on update
// leave the current value in place.
type ProductInput struct {
	Name  *string
	Price *int64
	Stock *int64
}

// Service exposes catalog management and browsing to inbound adapters.
type Service interface {
	CreateProduct(ctx context.Context, principal auth.Principal, input ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, principal auth.Principal, id uuid.UUID, input ProductInput) (domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
