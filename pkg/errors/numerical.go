package errors

import (
	"fmt"
	"math"
)

// CheckFinite returns a ValueError if any value is NaN or Inf.
func CheckFinite(operation string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation, fmt.Sprintf("non-finite value at index %d", i))
		}
	}
	return nil
}

// CheckScalar returns a ValueError if value is NaN or Inf.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValueError(operation, "non-finite scalar value")
	}
	return nil
}
