package ports

import (
	"context"

	"github.com/google/uuid"

	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

// CreatePaymentInput carries the settlement request. TransactionKey is
// optional; callers without a gateway reference leave it blank.
type CreatePaymentInput struct {
	OrderID        uuid.UUID
	Method         domain.Method
	TransactionKey string
}

// PaymentReceipt pairs a settled payment with the order it marked paid.
type PaymentReceipt struct {
	Payment *domain.Payment
	Order   *orderdomain.Order
}

// PaymentDetails is the read model for one payment: the record itself plus
// snapshots of the order it covers and the account that paid.
type PaymentDetails struct {
	Payment *domain.Payment
	Order   *orderdomain.Order
	User    *userdomain.User
}

// Service exposes the payment workflow to inbound adapters.
type Service interface {
	CreatePayment(ctx context.Context, principal auth.Principal, input CreatePaymentInput) (*PaymentReceipt, error)
	GetPayment(ctx context.Context, principal auth.Principal, paymentID uuid.UUID) (*PaymentDetails, error)
}
