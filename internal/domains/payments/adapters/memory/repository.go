package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory payment persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*domain.Payment
	byOrder  map[uuid.UUID]uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{
		payments: map[uuid.UUID]*domain.Payment{},
		byOrder:  map[uuid.UUID]uuid.UUID{},
	}
}

func (r *Repository) Save(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil {
		return nil, ports.ErrNotFound
	}
	clone := payment.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.payments[clone.ID] = clone
	r.byOrder[clone.OrderID] = clone.ID
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return payment.Clone(), nil
}

func (r *Repository) FindByOrderID(_ context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.payments[id].Clone(), nil
}
