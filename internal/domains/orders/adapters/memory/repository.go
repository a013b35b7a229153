package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Insertion order is
// tracked so listings page newest first, matching the SQL adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
	seq    []uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, ports.ErrNotFound
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	if _, exists := r.orders[clone.ID]; !exists {
		r.seq = append(r.seq, clone.ID)
	}
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) FindByUserID(_ context.Context, userID uuid.UUID, page pagination.Request) (pagination.Page[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paged(page, func(order *domain.Order) bool {
		return order.UserID == userID
	}), nil
}

func (r *Repository) FindAll(_ context.Context, page pagination.Request) (pagination.Page[*domain.Order], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paged(page, func(*domain.Order) bool { return true }), nil
}

func (r *Repository) paged(page pagination.Request, match func(*domain.Order) bool) pagination.Page[*domain.Order] {
	page = page.Normalize()
	matched := make([]*domain.Order, 0, len(r.seq))
	for i := len(r.seq) - 1; i >= 0; i-- {
		order := r.orders[r.seq[i]]
		if match(order) {
			matched = append(matched, order)
		}
	}
	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	items := make([]*domain.Order, 0, end-start)
	for _, order := range matched[start:end] {
		items = append(items, order.Clone())
	}
	return pagination.NewPage(items, page, total)
}
