// Package tx defines the unit-of-work port the workflow services run inside.
// Every order/payment workflow executes its reads and writes within a single
// Execute call so a failure aborts all of them together.
package tx

import (
	"context"
	"sync"
)

// Manager runs fn inside one logical transaction. Implementations must
// discard all writes performed by fn when it returns an error.
type Manager interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}

// Serial is the Manager used with the in-memory adapters. It provides the
// serialization guarantee (two concurrent stock decrements never interleave)
// by funneling every transaction through one mutex; rollback is not needed
// because the workflows only persist after all checks have passed.
type Serial struct {
	mu sync.Mutex
}

// NewSerial builds a mutex-backed Manager for in-memory wiring and tests.
func NewSerial() *Serial {
	return &Serial{}
}

// Execute runs fn while holding the transaction lock.
func (s *Serial) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

var _ Manager = (*Serial)(nil)
