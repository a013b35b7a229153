package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	// FindByIDs returns the products matching ids; missing ids are simply
	// absent from the result, callers compare counts.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	// FindByIDsForUpdate behaves like FindByIDs but acquires row locks within
	// the surrounding transaction so concurrent stock mutations serialize.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
