package domain

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/shared/money"
)

// Status captures the order lifecycle. Transitions are
// CREATED -> PAID and {CREATED, PAID} -> CANCELLED.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("order item quantity must be positive")
	ErrAlreadyPaid      = errors.New("order is already paid")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
	ErrNotCancellable   = errors.New("order cannot be cancelled")
)

// OrderItem is an immutable snapshot of one order line. Product name and unit
// price are copied at ordering time so later catalog edits do not rewrite
// history.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   int64
	Quantity    int64
	LineTotal   int64
}

// NewOrderItem snapshots a product line, computing the line total with
// overflow checks.
func NewOrderItem(orderID, productID uuid.UUID, productName string, unitPrice, quantity int64) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	lineTotal, err := money.SafeMultiply(unitPrice, quantity)
	if err != nil {
		return OrderItem{}, err
	}
	return OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		LineTotal:   lineTotal,
	}, nil
}

// Order is the purchase aggregate. Items and totals are fixed at creation;
// only status and the payment reference change afterwards.
type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Status      Status
	TotalAmount int64
	Items       []OrderItem
	PaymentID   *uuid.UUID
}

// NewOrder starts an empty CREATED order for a user.
func NewOrder(userID uuid.UUID) *Order {
	return &Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: StatusCreated,
	}
}

// AddItem appends a line and accumulates the total with overflow checks.
func (o *Order) AddItem(item OrderItem) error {
	total, err := money.SafeAdd(o.TotalAmount, item.LineTotal)
	if err != nil {
		return err
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	o.TotalAmount = total
	return nil
}

// Validate checks aggregate invariants before persistence.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// MarkPaid records a completed payment against a CREATED order.
func (o *Order) MarkPaid(paymentID uuid.UUID) error {
	switch o.Status {
	case StatusPaid:
		return ErrAlreadyPaid
	case StatusCancelled:
		return ErrAlreadyCancelled
	}
	o.Status = StatusPaid
	o.PaymentID = &paymentID
	return nil
}

// MarkCancelled transitions the order to CANCELLED. Cancelling twice fails.
func (o *Order) MarkCancelled() error {
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.Status = StatusCancelled
	return nil
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// Clone returns a deep copy so callers can mutate safely.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Items = append([]OrderItem(nil), o.Items...)
	if o.PaymentID != nil {
		paymentID := *o.PaymentID
		clone.PaymentID = &paymentID
	}
	return &clone
}
