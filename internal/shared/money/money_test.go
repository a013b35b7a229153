package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeAdd(t *testing.T) {
	sum, err := SafeAdd(2000, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), sum)

	sum, err = SafeAdd(-100, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestSafeAdd_Overflow(t *testing.T) {
	_, err := SafeAdd(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = SafeAdd(math.MinInt64, -1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	sum, err := SafeAdd(math.MaxInt64, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)
}

func TestSafeMultiply(t *testing.T) {
	product, err := SafeMultiply(3000, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), product)

	product, err = SafeMultiply(0, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(0), product)
}

func TestSafeMultiply_Overflow(t *testing.T) {
	_, err := SafeMultiply(math.MaxInt64, 2)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = SafeMultiply(math.MinInt64, -1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	_, err = SafeMultiply(-1, math.MinInt64)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	product, err := SafeMultiply(math.MaxInt64, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), product)
}
