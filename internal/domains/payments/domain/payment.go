package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Status is the payment lifecycle. Payments are born COMPLETED; a cancelled
// order flips its payment to CANCELLED.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Method enumerates the accepted payment instruments.
type Method string

const (
	MethodCard         Method = "CARD"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodMobile       Method = "MOBILE"
	MethodPoint        Method = "POINT"
)

var (
	ErrInvalidMethod    = errors.New("unsupported payment method")
	ErrInvalidAmount    = errors.New("payment amount must be positive")
	ErrAlreadyCancelled = errors.New("payment is already cancelled")
)

// ParseMethod validates a wire-level method string.
func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodCard, MethodBankTransfer, MethodMobile, MethodPoint:
		return Method(raw), nil
	default:
		return "", ErrInvalidMethod
	}
}

// Payment records a settled charge for exactly one order.
type Payment struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	UserID         uuid.UUID
	Status         Status
	Method         Method
	Amount         int64
	TransactionKey string
}

// NewPayment settles a charge immediately. Callers that hold a gateway
// reference pass it as the transaction key; a blank key gets a generated one.
func NewPayment(orderID, userID uuid.UUID, method Method, amount int64, transactionKey string) (*Payment, error) {
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	transactionKey = strings.TrimSpace(transactionKey)
	if transactionKey == "" {
		transactionKey = uuid.NewString()
	}
	return &Payment{
		ID:             uuid.New(),
		OrderID:        orderID,
		UserID:         userID,
		Status:         StatusCompleted,
		Method:         method,
		Amount:         amount,
		TransactionKey: transactionKey,
	}, nil
}

// MarkCancelled voids the payment. Cancelling twice fails.
func (p *Payment) MarkCancelled() error {
	if p.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	p.Status = StatusCancelled
	return nil
}

// IsOwnedBy reports whether userID made the payment.
func (p *Payment) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// Clone returns a copy safe for caller mutation.
func (p *Payment) Clone() *Payment {
	clone := *p
	return &clone
}
