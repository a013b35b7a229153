package domain

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-server/internal/shared/money"
)

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct(uuid.New(), "  ", 1000, 5)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct(uuid.New(), "Keyboard", -1, 5)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct(uuid.New(), "Keyboard", 1000, -5)
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestDecrementStock(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Keyboard", 1000, 5)
	require.NoError(t, err)

	updated, err := product.DecrementStock(3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Stock)
	// original snapshot is untouched
	assert.Equal(t, int64(5), product.Stock)

	updated, err = updated.DecrementStock(2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Stock)

	_, err = updated.DecrementStock(1)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestIncrementStock(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Keyboard", 1000, 5)
	require.NoError(t, err)

	updated, err := product.IncrementStock(2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.Stock)

	product.Stock = math.MaxInt64
	_, err = product.IncrementStock(1)
	assert.ErrorIs(t, err, money.ErrAmountOverflow)
}

func TestUpdate(t *testing.T) {
	product, err := NewProduct(uuid.New(), "Keyboard", 1000, 5)
	require.NoError(t, err)

	name := "Mechanical Keyboard"
	price := int64(1500)
	updated, err := product.Update(&name, &price, nil)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", updated.Name)
	assert.Equal(t, int64(1500), updated.Price)
	assert.Equal(t, int64(5), updated.Stock)

	bad := int64(-10)
	_, err = product.Update(nil, nil, &bad)
	assert.ErrorIs(t, err, ErrNegativeStock)
}
