package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrIdempotencyConflict signals a key reuse that maps to a different order.
var ErrIdempotencyConflict = errors.New("idempotency key already used for another order")

// IdempotencyRecord links an execution key to the order it produced.
type IdempotencyRecord struct {
	Key       string
	OrderID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IdempotencyStore persists placement outcomes keyed by execution so a
// retried activity replays the stored order instead of placing a second one.
type IdempotencyStore interface {
	// Get returns the record for key, or nil when none exists.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores record when the key is free and returns the stored value.
	// Saving a key recorded against a different order fails with
	// ErrIdempotencyConflict, returning the existing record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
