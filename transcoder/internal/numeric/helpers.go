package numeric

import (
	"math"
	"reflect"
)

// MaxSafeInteger is the largest magnitude at which every integer is exactly
// representable as a float64.
const MaxSafeInteger = 1 << 53

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// IsIntegral reports whether f is finite and has no fractional part.
func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
