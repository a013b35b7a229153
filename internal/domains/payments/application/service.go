package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	userports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"
)

// Service orchestrates the payment bounded context use cases. Payment
// creation settles immediately and marks the order paid in the same
// transaction.
type Service struct {
	payments ports.Repository
	orders   orderports.Repository
	users    userports.Repository
	txm      tx.Manager
}

// NewService wires the payment service with its collaborators.
func NewService(
	payments ports.Repository,
	orders orderports.Repository,
	users userports.Repository,
	txm tx.Manager,
) *Service {
	return &Service{
		payments: payments,
		orders:   orders,
		users:    users,
		txm:      txm,
	}
}

// CreatePayment settles a charge for an order the principal owns. The amount
// is always the order total; an order accepts exactly one payment. The
// receipt carries the order as it reads after being marked paid.
func (s *Service) CreatePayment(ctx context.Context, principal auth.Principal, input ports.CreatePaymentInput) (*ports.PaymentReceipt, error) {
	if _, err := domain.ParseMethod(string(input.Method)); err != nil {
		return nil, mapError(err)
	}

	var receipt *ports.PaymentReceipt
	err := s.txm.Execute(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, input.OrderID)
		if err != nil {
			return mapError(err)
		}
		if !order.IsOwnedBy(principal.UserID) {
			return ErrOrderForbidden
		}
		switch order.Status {
		case orderdomain.StatusCancelled:
			return ErrOrderCancelled
		case orderdomain.StatusPaid:
			return ErrPaymentAlreadyExists
		}
		if existing, err := s.payments.FindByOrderID(ctx, input.OrderID); err == nil && existing != nil {
			return ErrPaymentAlreadyExists
		} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		if _, err := s.users.GetByID(ctx, principal.UserID); err != nil {
			return mapError(err)
		}

		payment, err := domain.NewPayment(order.ID, principal.UserID, input.Method, order.TotalAmount, input.TransactionKey)
		if err != nil {
			return mapError(err)
		}
		saved, err := s.payments.Save(ctx, payment)
		if err != nil {
			return mapError(err)
		}
		if err := order.MarkPaid(saved.ID); err != nil {
			return mapError(err)
		}
		paid, err := s.orders.Save(ctx, order)
		if err != nil {
			return mapError(err)
		}
		receipt = &ports.PaymentReceipt{Payment: saved, Order: paid}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetPayment loads one payment with the order and user it references,
// enforcing ownership for non-elevated principals.
func (s *Service) GetPayment(ctx context.Context, principal auth.Principal, paymentID uuid.UUID) (*ports.PaymentDetails, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, mapError(err)
	}
	if !payment.IsOwnedBy(principal.UserID) && !principal.Elevated() {
		return nil, ErrPaymentForbidden
	}
	order, err := s.orders.GetByID(ctx, payment.OrderID)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.users.GetByID(ctx, payment.UserID)
	if err != nil {
		return nil, mapError(err)
	}
	return &ports.PaymentDetails{Payment: payment, Order: order, User: user}, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrPaymentNotFound, err)
	case errors.Is(err, orderports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	case errors.Is(err, userports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, domain.ErrInvalidMethod):
		return fmt.Errorf("%w: %w", ErrInvalidMethod, err)
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return fmt.Errorf("%w: %w", ErrPaymentAlreadyCancelled, err)
	case errors.Is(err, orderdomain.ErrAlreadyPaid):
		return fmt.Errorf("%w: %w", ErrPaymentAlreadyExists, err)
	case errors.Is(err, orderdomain.ErrAlreadyCancelled):
		return fmt.Errorf("%w: %w", ErrOrderCancelled, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
