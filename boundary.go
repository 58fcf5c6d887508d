package scriptvalue

import "github.com/wippyai/scriptvalue/value"

// Constructor creates engine-native values. Handles are opaque to the codec.
type Constructor interface {
	Null() any
	Bool(b bool) any
	Number(f float64) any
	String(s string) any
	NewArray() any
	NewObject() any

	// SetKey stores v under key on an object handle. Existing keys are overwritten.
	SetKey(obj any, key string, v any) error
	// SetIndex stores v at i on an array handle; i == Len(arr) appends.
	SetIndex(arr any, i int, v any) error
}

// Inspector classifies and reads engine-native values.
type Inspector interface {
	Kind(v any) value.Kind

	// GetKey reports false when key is absent, which must stay distinct from a stored null.
	GetKey(obj any, key string) (any, bool)
	Keys(obj any) []string
	// GetIndex reports false when i is out of range.
	GetIndex(arr any, i int) (any, bool)
	Len(arr any) int

	AsBool(v any) bool
	AsNumber(v any) float64
	AsString(v any) string
}

// Boundary is the contract between the codec and an embedded engine.
type Boundary interface {
	Constructor
	Inspector
}
