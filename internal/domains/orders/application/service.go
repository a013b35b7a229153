package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	paymentdomain "github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	paymentports "github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	userports "github.com/Apurer/go-gin-shop-server/internal/domains/users/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"
)

// catalogProduct tracks a locked product and whether its stock changed.
type catalogProduct struct {
	product catalogdomain.Product
	dirty   bool
}

// Service orchestrates the order bounded context use cases. Order placement
// and cancellation each run inside a single transaction so stock, order and
// payment writes commit or roll back together.
type Service struct {
	orders   ports.Repository
	payments paymentports.Repository
	products catalogports.Repository
	users    userports.Repository
	txm      tx.Manager
}

// NewService wires the order service with its collaborators.
func NewService(
	orders ports.Repository,
	payments paymentports.Repository,
	products catalogports.Repository,
	users userports.Repository,
	txm tx.Manager,
) *Service {
	return &Service{
		orders:   orders,
		payments: payments,
		products: products,
		users:    users,
		txm:      txm,
	}
}

// CreateOrder places an order for the principal. All requested products are
// row-locked up front, stock is decremented per aggregated quantity, line
// totals and the order total are computed with overflow checks, and nothing
// is persisted unless every step succeeds.
func (s *Service) CreateOrder(ctx context.Context, principal auth.Principal, items []ports.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrOrderItemsEmpty
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	var created *domain.Order
	err := s.txm.Execute(ctx, func(ctx context.Context) error {
		ids := make([]uuid.UUID, 0, len(items))
		seen := map[uuid.UUID]struct{}{}
		for _, item := range items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}

		locked, err := s.products.FindByIDsForUpdate(ctx, ids)
		if err != nil {
			return mapError(err)
		}
		if len(locked) != len(ids) {
			return ErrProductNotFound
		}
		if _, err := s.users.GetByID(ctx, principal.UserID); err != nil {
			return mapError(err)
		}
		byID := make(map[uuid.UUID]*catalogProduct, len(locked))
		for i := range locked {
			product := locked[i]
			byID[product.ID] = &catalogProduct{product: product}
		}

		order := domain.NewOrder(principal.UserID)
		for _, requested := range items {
			entry := byID[requested.ProductID]
			next, err := entry.product.DecrementStock(requested.Quantity)
			if err != nil {
				return mapError(err)
			}
			entry.product = next
			item, err := domain.NewOrderItem(order.ID, entry.product.ID, entry.product.Name, entry.product.Price, requested.Quantity)
			if err != nil {
				return mapError(err)
			}
			if err := order.AddItem(item); err != nil {
				return mapError(err)
			}
			entry.dirty = true
		}

		for _, id := range ids {
			entry := byID[id]
			if !entry.dirty {
				continue
			}
			if _, err := s.products.Save(ctx, entry.product); err != nil {
				return mapError(err)
			}
		}

		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return mapError(err)
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelOrder cancels an order, voiding its payment when one is attached and
// restoring the reserved stock. Owners may cancel their own orders; admins
// and managers may cancel any. Every check runs before the first write so a
// late failure leaves no stray mutation behind.
func (s *Service) CancelOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.txm.Execute(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return mapError(err)
		}
		if !order.IsOwnedBy(principal.UserID) && !principal.Elevated() {
			return ErrOrderForbidden
		}
		if order.Status == domain.StatusCancelled {
			return ErrOrderAlreadyCancelled
		}

		var payment *paymentdomain.Payment
		if order.PaymentID != nil || order.Status == domain.StatusPaid {
			payment, err = s.paymentFor(ctx, order)
			if err != nil {
				return err
			}
			if !payment.IsOwnedBy(principal.UserID) && !principal.Elevated() {
				return ErrPaymentForbidden
			}
			if err := payment.MarkCancelled(); err != nil {
				return mapError(err)
			}
		}

		restored, err := s.restockedProducts(ctx, order)
		if err != nil {
			return err
		}
		if err := order.MarkCancelled(); err != nil {
			return mapError(err)
		}

		for i := range restored {
			if _, err := s.products.Save(ctx, restored[i]); err != nil {
				return mapError(err)
			}
		}
		if payment != nil {
			if _, err := s.payments.Save(ctx, payment); err != nil {
				return mapError(err)
			}
		}
		saved, err := s.orders.Save(ctx, order)
		if err != nil {
			return mapError(err)
		}
		cancelled = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// GetOrder loads one order, enforcing ownership for non-elevated principals.
func (s *Service) GetOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if !order.IsOwnedBy(principal.UserID) && !principal.Elevated() {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

// ListOrders pages through orders. Admins and managers see every order;
// customers see only their own.
func (s *Service) ListOrders(ctx context.Context, principal auth.Principal, page pagination.Request) (pagination.Page[*domain.Order], error) {
	if principal.Elevated() {
		result, err := s.orders.FindAll(ctx, page)
		if err != nil {
			return pagination.Page[*domain.Order]{}, mapError(err)
		}
		return result, nil
	}
	result, err := s.orders.FindByUserID(ctx, principal.UserID, page)
	if err != nil {
		return pagination.Page[*domain.Order]{}, mapError(err)
	}
	return result, nil
}

func (s *Service) paymentFor(ctx context.Context, order *domain.Order) (*paymentdomain.Payment, error) {
	if order.PaymentID == nil {
		return nil, ErrPaymentNotFound
	}
	payment, err := s.payments.GetByID(ctx, *order.PaymentID)
	if err != nil {
		if errors.Is(err, paymentports.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrPaymentNotFound, err)
		}
		return nil, err
	}
	return payment, nil
}

// restockedProducts row-locks every product the order references and returns
// snapshots with the ordered quantities added back. Nothing is persisted here;
// the caller saves the snapshots once the whole cancellation validates.
func (s *Service) restockedProducts(ctx context.Context, order *domain.Order) ([]catalogdomain.Product, error) {
	quantities := make(map[uuid.UUID]int64, len(order.Items))
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		if _, ok := quantities[item.ProductID]; !ok {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	locked, err := s.products.FindByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, mapError(err)
	}
	if len(locked) != len(ids) {
		return nil, ErrProductNotFound
	}
	restored := make([]catalogdomain.Product, 0, len(locked))
	for i := range locked {
		next, err := locked[i].IncrementStock(quantities[locked[i].ID])
		if err != nil {
			return nil, mapError(err)
		}
		restored = append(restored, next)
	}
	return restored, nil
}

var _ ports.Service = (*Service)(nil)
