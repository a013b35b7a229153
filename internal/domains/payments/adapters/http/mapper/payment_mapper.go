package mapper

import (
	"fmt"

	"github.com/google/uuid"

	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	userdomain "github.com/Apurer/go-gin-shop-server/internal/domains/users/domain"
)

// CreatePaymentRequest captures the inbound create-payment payload.
// TransactionKey is optional; omitted keys are generated server-side.
type CreatePaymentRequest struct {
	OrderID        string `json:"orderId"`
	Method         string `json:"method"`
	TransactionKey string `json:"transactionKey,omitempty"`
}

// Payment is the HTTP representation of a payment record.
type Payment struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	UserID         string `json:"userId"`
	Status         string `json:"status"`
	Method         string `json:"method"`
	Amount         int64  `json:"amount"`
	TransactionKey string `json:"transactionKey"`
}

// OrderSummary mirrors the order state a payment response carries.
type OrderSummary struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
}

// UserSummary identifies the paying account.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PaymentReceipt is the create-payment response: the settled payment plus the
// order it marked paid.
type PaymentReceipt struct {
	Payment Payment      `json:"payment"`
	Order   OrderSummary `json:"order"`
}

// PaymentDetails is the single-payment read response, adding the paying user.
type PaymentDetails struct {
	Payment Payment      `json:"payment"`
	Order   OrderSummary `json:"order"`
	User    UserSummary  `json:"user"`
}

// ToInput validates the payload and maps it onto the service input.
func ToInput(req CreatePaymentRequest) (ports.CreatePaymentInput, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return ports.CreatePaymentInput{}, fmt.Errorf("invalid orderId %q: %w", req.OrderID, err)
	}
	return ports.CreatePaymentInput{
		OrderID:        orderID,
		Method:         domain.Method(req.Method),
		TransactionKey: req.TransactionKey,
	}, nil
}

// FromPayment maps a domain payment onto the transport shape.
func FromPayment(payment *domain.Payment) Payment {
	return Payment{
		ID:             payment.ID.String(),
		OrderID:        payment.OrderID.String(),
		UserID:         payment.UserID.String(),
		Status:         string(payment.Status),
		Method:         string(payment.Method),
		Amount:         payment.Amount,
		TransactionKey: payment.TransactionKey,
	}
}

func fromOrder(order *orderdomain.Order) OrderSummary {
	return OrderSummary{
		ID:          order.ID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
	}
}

func fromUser(user *userdomain.User) UserSummary {
	return UserSummary{
		ID:       user.ID.String(),
		Username: user.Username,
	}
}

// FromReceipt maps the settlement result onto the transport shape.
func FromReceipt(receipt *ports.PaymentReceipt) PaymentReceipt {
	return PaymentReceipt{
		Payment: FromPayment(receipt.Payment),
		Order:   fromOrder(receipt.Order),
	}
}

// FromDetails maps the payment read model onto the transport shape.
func FromDetails(details *ports.PaymentDetails) PaymentDetails {
	return PaymentDetails{
		Payment: FromPayment(details.Payment),
		Order:   fromOrder(details.Order),
		User:    fromUser(details.User),
	}
}
