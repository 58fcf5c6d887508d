// Package transcoder converts Go values to and from the dynamic values of an
// embedded script engine.
//
// The engine is reached through a Boundary, which creates and inspects
// opaque handles. value.Tree is the in-process boundary; engine.Goja adapts a
// goja runtime.
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Go value ←→ [Encoder / Decoder] ←→ Boundary ←→ engine    │
//	└──────────────────────────────────────────────────────────┘
//
// # Type Mapping
//
//	Go                          Engine value
//	──────────────────────────────────────────────
//	bool                        bool
//	int*, uint*, float*         number (float64)
//	string                      string
//	time.Time                   string (RFC 3339) or number (Unix ms)
//	url.URL, uuid.UUID          string
//	[]byte                      string (base64)
//	TextMarshaler               string
//	slice, array                array
//	struct                      object
//	map[string]T                object
//	map[int]T                   array of [key, value] pairs
//	nil pointer, nil interface  null
//
// Struct fields are keyed by their `js` tag or by the lowerCamel form of the
// field name. Untagged embedded structs share the outer object; a nil
// embedded pointer writes nothing and decodes back to nil when none of its
// fields are present. A field coded as "super" is an ordinary nested member.
//
// # Numbers
//
// Every number crosses as a float64. Integers beyond ±2^53 fail with
// numeric_overflow in both directions. Decoding into an integer fails for
// fractional, non-finite or out-of-range values. NaN and infinities pass
// through float targets unchanged.
//
// # Containers
//
// Types that implement Marshaler or Unmarshaler code themselves through a
// Writer or Reader, which hands out one of three containers per level:
//
//	KeyedContainer        object members by key
//	UnkeyedContainer      array elements in order
//	SingleValueContainer  exactly one value
//
// SuperKey, or SuperWriter/SuperReader, addresses the same object from a base
// type so that composed types share one node.
//
// # Absence and Null
//
// A missing key and a key holding null are distinct. A missing key decodes
// into a pointer or interface as nil and fails with key_not_found otherwise.
// A null decodes into a pointer or interface as nil and fails with
// value_not_found otherwise.
//
// # Key Strategies
//
// WithKeyStrategy transforms keys: on encode before a key is stored, on
// decode applied to the stored keys before lookup. Map keys are data and are
// never transformed.
//
// # Thread Safety
//
// Encoder, Decoder and Compiler are safe for concurrent use. Writer, Reader
// and their containers belong to a single call.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] type_mismatch at items[2].name: expected string, found number
//	[decode] key_not_found at user: no value associated with key "email"
package transcoder
