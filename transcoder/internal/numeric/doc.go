// Package numeric provides the range checks between the value tree's single
// float64 number and Go's fixed-width numeric types.
//
// # Contents
//
//   - coerce.go: exact float64 <-> integer conversion with overflow detection
//   - helpers.go: type names and safe-integer bounds
//
// Integers are exact in a float64 only up to 2^53 in magnitude. Conversions
// in both directions reject anything beyond that bound rather than rounding.
//
// This package is internal to the transcoder.
package numeric
