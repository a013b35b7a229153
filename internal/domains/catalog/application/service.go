package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

// Service orchestrates catalog management. Browsing is open; mutations
// require an admin or manager role.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a new catalog entry.
func (s *Service) CreateProduct(ctx context.Context, principal auth.Principal, input ports.ProductInput) (domain.Product, error) {
	if !principal.Elevated() {
		return domain.Product{}, ErrProductForbidden
	}
	var name string
	if input.Name != nil {
		name = *input.Name
	}
	var price, stock int64
	if input.Price != nil {
		price = *input.Price
	}
	if input.Stock != nil {
		stock = *input.Stock
	}
	product, err := domain.NewProduct(uuid.New(), name, price, stock)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	return saved, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, principal auth.Principal, id uuid.UUID, input ports.ProductInput) (domain.Product, error) {
	if !principal.Elevated() {
		return domain.Product{}, ErrProductForbidden
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	updated, err := existing.Update(input.Name, input.Price, input.Stock)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	return saved, nil
}

// GetProduct loads a single catalog entry.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, mapError(err)
	}
	return product, nil
}

// ListProducts returns the full catalog.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

var _ ports.Service = (*Service)(nil)
