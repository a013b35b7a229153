package mapper

import (
	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
)

// ProductMutation captures create/update payloads while preserving field
// presence for partial updates.
type ProductMutation struct {
	Name  *string `json:"name,omitempty"`
	Price *int64  `json:"price,omitempty"`
	Stock *int64  `json:"stock,omitempty"`
}

// Product is the HTTP representation of a catalog entry.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

// ToInput converts a mutation payload into a service input.
func ToInput(mutation ProductMutation) ports.ProductInput {
	return ports.ProductInput{Name: mutation.Name, Price: mutation.Price, Stock: mutation.Stock}
}

// FromProduct maps a domain product onto the transport shape.
func FromProduct(product domain.Product) Product {
	return Product{
		ID:    product.ID.String(),
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}

// FromProductList maps a product slice onto the transport shape.
func FromProductList(products []domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromProduct(product))
	}
	return result
}
