// Package errors provides structured error types for the scriptvalue codec.
//
// Errors are categorized by Phase (encode or decode) and Kind (error category).
// The Error type carries the coding path from the tree root to the failure,
// the expected and found types, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("user", "age").
//		Expected("int32").
//		Found("string").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.KeyNotFound(errors.PhaseDecode, path, "name")
//	err := errors.ValueExhausted(errors.PhaseDecode, path, 2, 2)
//
// Rendered form:
//
//	[decode] type_mismatch at user.tags[2]: expected string, found number
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with an empty Phase matches errors of its Kind in either phase.
package errors
