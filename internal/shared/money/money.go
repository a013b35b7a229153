// Package money provides overflow-checked arithmetic over integral currency
// minor units (e.g. cents, won). Amounts are plain int64 values; any result
// that would leave the int64 range fails instead of wrapping.
package money

import (
	"errors"
	"math"
)

// ErrAmountOverflow signals the exact result does not fit in an int64.
var ErrAmountOverflow = errors.New("amount arithmetic overflow")

// SafeAdd returns a+b or ErrAmountOverflow.
func SafeAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// SafeMultiply returns a*b or ErrAmountOverflow.
func SafeMultiply(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	// MinInt64 * -1 wraps and would make the division check below panic.
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, ErrAmountOverflow
	}
	result := a * b
	if result/b != a {
		return 0, ErrAmountOverflow
	}
	return result, nil
}
