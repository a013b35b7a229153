package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
)

// IdempotencyStore is an in-memory ports.IdempotencyStore.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
	now     func() time.Time
}

type IdempotencyOption func(*IdempotencyStore)

// WithClock overrides the store clock, for tests.
func WithClock(now func() time.Time) IdempotencyOption {
	return func(s *IdempotencyStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewIdempotencyStore builds an empty store.
func NewIdempotencyStore(opts ...IdempotencyOption) *IdempotencyStore {
	s := &IdempotencyStore{
		records: make(map[string]ports.IdempotencyRecord),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns a copy of the record for key, or nil when absent.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	stored := record
	return &stored, nil
}

// Save stores record when the key is free. An existing record for the same
// order is returned unchanged; a different order fails with
// ErrIdempotencyConflict.
func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok {
		stored := existing
		if existing.OrderID != record.OrderID {
			return &stored, ports.ErrIdempotencyConflict
		}
		return &stored, nil
	}
	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	s.records[record.Key] = record
	stored := record
	return &stored, nil
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)
