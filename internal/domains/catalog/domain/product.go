package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/shared/money"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
	ErrNegativeStock = errors.New("product stock must not be negative")
	// ErrOutOfStock signals a decrement would drive available stock below zero.
	ErrOutOfStock = errors.New("product out of stock")
)

// Product models a catalog entry whose stock the order workflows mutate.
// Values are immutable; every mutation returns a new snapshot and the caller
// is responsible for persisting it.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price int64
	Stock int64
}

// NewProduct validates and constructs a product aggregate.
func NewProduct(id uuid.UUID, name string, price, stock int64) (Product, error) {
	product := Product{ID: id, Name: strings.TrimSpace(name), Price: price, Stock: stock}
	if err := product.Validate(); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Update applies the optional catalog fields, keeping unset ones unchanged.
func (p Product) Update(name *string, price *int64, stock *int64) (Product, error) {
	next := p
	if name != nil {
		next.Name = strings.TrimSpace(*name)
	}
	if price != nil {
		next.Price = *price
	}
	if stock != nil {
		next.Stock = *stock
	}
	if err := next.Validate(); err != nil {
		return Product{}, err
	}
	return next, nil
}

// DecrementStock returns a snapshot with quantity removed from stock.
// Fails with ErrOutOfStock when the result would be negative.
func (p Product) DecrementStock(quantity int64) (Product, error) {
	updated := p.Stock - quantity
	if updated < 0 {
		return Product{}, ErrOutOfStock
	}
	next := p
	next.Stock = updated
	return next, nil
}

// IncrementStock returns a snapshot with quantity added back to stock,
// overflow-checked.
func (p Product) IncrementStock(quantity int64) (Product, error) {
	restored, err := money.SafeAdd(p.Stock, quantity)
	if err != nil {
		return Product{}, err
	}
	next := p
	next.Stock = restored
	return next, nil
}
