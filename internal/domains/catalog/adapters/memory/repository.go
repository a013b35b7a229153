package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product domain.Product) (domain.Product, error) {
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return product, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, ports.ErrNotFound
	}
	return product, nil
}

func (r *Repository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Product, 0, len(ids))
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// FindByIDsForUpdate has no row locks to take in memory; callers serialize
// through the tx.Serial manager instead.
func (r *Repository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *Repository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, product)
	}
	return list, nil
}
