package mapper

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

var errNoItems = errors.New("items is required")

// OrderItemRequest is one requested line in a create-order payload.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest captures the inbound create-order payload.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItem is the HTTP representation of a stored order line.
type OrderItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int64  `json:"quantity"`
	LineTotal   int64  `json:"lineTotal"`
}

// Order is the HTTP representation of an order aggregate.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Status      string      `json:"status"`
	TotalAmount int64       `json:"totalAmount"`
	PaymentID   *string     `json:"paymentId,omitempty"`
	Items       []OrderItem `json:"items"`
}

// OrderPage is one page of orders with paging metadata.
type OrderPage struct {
	Items         []Order `json:"items"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

// ToItemInputs converts the payload lines into service inputs, validating
// product identifiers.
func ToItemInputs(req CreateOrderRequest) ([]ports.OrderItemInput, error) {
	if len(req.Items) == 0 {
		return nil, errNoItems
	}
	inputs := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid productId %q: %w", item.ProductID, err)
		}
		inputs = append(inputs, ports.OrderItemInput{ProductID: productID, Quantity: item.Quantity})
	}
	return inputs, nil
}

// FromOrder maps a domain order onto the transport shape.
func FromOrder(order *domain.Order) Order {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	var paymentID *string
	if order.PaymentID != nil {
		value := order.PaymentID.String()
		paymentID = &value
	}
	return Order{
		ID:          order.ID.String(),
		UserID:      order.UserID.String(),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		PaymentID:   paymentID,
		Items:       items,
	}
}

// FromOrderPage maps a result page onto the transport shape.
func FromOrderPage(page pagination.Page[*domain.Order]) OrderPage {
	items := make([]Order, 0, len(page.Items))
	for _, order := range page.Items {
		items = append(items, FromOrder(order))
	}
	return OrderPage{
		Items:         items,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
