package application

import (
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	paymentdomain "github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	userports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/money"
)

var (
	ErrOrderItemsEmpty         = errors.New("order requires at least one item")
	ErrInvalidQuantity         = errors.New("order item quantity must be positive")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderForbidden          = errors.New("order belongs to another user")
	ErrOrderAlreadyCancelled   = errors.New("order is already cancelled")
	ErrProductNotFound         = errors.New("product not found")
	ErrOutOfStock              = errors.New("insufficient stock")
	ErrUserNotFound            = errors.New("user not found")
	ErrAmountOverflow          = errors.New("order amount overflows")
	ErrPaymentNotFound         = errors.New("payment not found for paid order")
	ErrPaymentForbidden        = errors.New("payment belongs to another user")
	ErrPaymentAlreadyCancelled = errors.New("payment is already cancelled")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	case errors.Is(err, catalogports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	case errors.Is(err, userports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, catalogdomain.ErrOutOfStock):
		return fmt.Errorf("%w: %w", ErrOutOfStock, err)
	case errors.Is(err, money.ErrAmountOverflow):
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return fmt.Errorf("%w: %w", ErrOrderAlreadyCancelled, err)
	case errors.Is(err, paymentdomain.ErrAlreadyCancelled):
		return fmt.Errorf("%w: %w", ErrPaymentAlreadyCancelled, err)
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrInvalidQuantity, err)
	case errors.Is(err, domain.ErrNoItems):
		return fmt.Errorf("%w: %w", ErrOrderItemsEmpty, err)
	}
	return err
}
