package numeric

import "math"

// IntFromFloat converts f to a signed integer of the given bit width.
// It fails on NaN, infinities, fractional values and values outside the
// width; 64-bit targets are further limited to ±MaxSafeInteger.
func IntFromFloat(f float64, bits int) (int64, bool) {
	if !IsIntegral(f) {
		return 0, false
	}
	var lo, hi float64
	switch bits {
	case 8:
		lo, hi = math.MinInt8, math.MaxInt8
	case 16:
		lo, hi = math.MinInt16, math.MaxInt16
	case 32:
		lo, hi = math.MinInt32, math.MaxInt32
	case 64:
		lo, hi = -MaxSafeInteger, MaxSafeInteger
	default:
		return 0, false
	}
	if f < lo || f > hi {
		return 0, false
	}
	return int64(f), true
}

// UintFromFloat converts f to an unsigned integer of the given bit width.
// Negative values fail; negative zero converts to 0.
func UintFromFloat(f float64, bits int) (uint64, bool) {
	if !IsIntegral(f) || f < 0 {
		return 0, false
	}
	var hi float64
	switch bits {
	case 8:
		hi = math.MaxUint8
	case 16:
		hi = math.MaxUint16
	case 32:
		hi = math.MaxUint32
	case 64:
		hi = MaxSafeInteger
	default:
		return 0, false
	}
	if f > hi {
		return 0, false
	}
	return uint64(f), true
}

// FloatFromInt widens v to float64; it fails beyond ±MaxSafeInteger.
func FloatFromInt(v int64) (float64, bool) {
	if v > MaxSafeInteger || v < -MaxSafeInteger {
		return 0, false
	}
	return float64(v), true
}

// FloatFromUint widens v to float64; it fails beyond MaxSafeInteger.
func FloatFromUint(v uint64) (float64, bool) {
	if v > MaxSafeInteger {
		return 0, false
	}
	return float64(v), true
}

// Float32FromFloat narrows f to float32. Precision loss is accepted; finite
// values beyond float32 range fail. NaN and infinities pass through.
func Float32FromFloat(f float64) (float32, bool) {
	if IsFinite(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}
