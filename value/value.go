package value

import (
	"math"
	"strconv"
)

// Kind classifies a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is one node of the dynamic value tree.
//
// Scalars are immutable. Arrays and objects are mutated in place, so a *Value
// handed to a parent container keeps reflecting later writes.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal bool
	numVal  float64
	strVal  string

	// Container values
	items   []*Value
	members []Member
	index   map[string]int
}

// Member is one key/value pair of an object, in insertion order.
type Member struct {
	Key   string
	Value *Value
}

var null = &Value{kind: KindNull}

// Null returns the null value.
func Null() *Value { return null }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// Number returns a numeric value.
func Number(f float64) *Value { return &Value{kind: KindNumber, numVal: f} }

// String returns a string value.
func String(s string) *Value { return &Value{kind: KindString, strVal: s} }

// NewArray returns an array holding items in order.
func NewArray(items ...*Value) *Value {
	v := &Value{kind: KindArray, items: make([]*Value, 0, len(items))}
	for _, it := range items {
		v.items = append(v.items, orNull(it))
	}
	return v
}

// NewObject returns an empty object.
func NewObject() *Value {
	return &Value{kind: KindObject}
}

func orNull(v *Value) *Value {
	if v == nil {
		return null
	}
	return v
}

// Kind returns the node kind. A nil *Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool { return v.Kind() == KindNull }

// AsBool returns the boolean payload; ok is false for other kinds.
func (v *Value) AsBool() (b, ok bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.boolVal, true
}

// AsNumber returns the numeric payload; ok is false for other kinds.
func (v *Value) AsNumber() (float64, bool) {
	if v.Kind() != KindNumber {
		return 0, false
	}
	return v.numVal, true
}

// AsString returns the string payload; ok is false for other kinds.
func (v *Value) AsString() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return v.strVal, true
}

// Set stores child under key. An existing key is overwritten in place and
// keeps its original position. Set on a non-object is a no-op.
func (v *Value) Set(key string, child *Value) {
	if v.Kind() != KindObject {
		return
	}
	child = orNull(child)
	if i, ok := v.index[key]; ok {
		v.members[i].Value = child
		return
	}
	if v.index == nil {
		v.index = make(map[string]int)
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: child})
}

// Get returns the child stored under key. The second result is false when
// the key is absent, which is distinct from a stored null.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[i].Value, true
}

// Keys returns object keys in insertion order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns the object members in insertion order. The slice must not
// be modified.
func (v *Value) Members() []Member {
	if v.Kind() != KindObject {
		return nil
	}
	return v.members
}

// Append adds child at the end of an array.
func (v *Value) Append(child *Value) {
	if v.Kind() != KindArray {
		return
	}
	v.items = append(v.items, orNull(child))
}

// SetIndex replaces the element at i, or appends when i equals Len.
// It reports false when i is out of range.
func (v *Value) SetIndex(i int, child *Value) bool {
	if v.Kind() != KindArray || i < 0 || i > len(v.items) {
		return false
	}
	if i == len(v.items) {
		v.items = append(v.items, orNull(child))
		return true
	}
	v.items[i] = orNull(child)
	return true
}

// Index returns the element at i; ok is false when i is out of range.
func (v *Value) Index(i int) (*Value, bool) {
	if v.Kind() != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Len returns the element count of an array or the member count of an
// object, and zero for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Export converts the tree to plain Go values: nil, bool, float64, string,
// []any and map[string]any.
func (v *Value) Export() any {
	switch v.Kind() {
	case KindBool:
		return v.boolVal
	case KindNumber:
		return v.numVal
	case KindString:
		return v.strVal
	case KindArray:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Export()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Export()
		}
		return out
	default:
		return nil
	}
}

// String renders a short debug form. It is not a serialization format.
func (v *Value) String() string {
	switch v.Kind() {
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindNumber:
		return strconv.FormatFloat(v.numVal, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.strVal)
	case KindArray:
		return "array(" + strconv.Itoa(len(v.items)) + ")"
	case KindObject:
		return "object(" + strconv.Itoa(len(v.members)) + ")"
	default:
		return "null"
	}
}

// Equal reports deep structural equality. Object member order is ignored;
// array order is not. NaN numbers compare equal to each other.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindNumber:
		if math.IsNaN(a.numVal) && math.IsNaN(b.numVal) {
			return true
		}
		return a.numVal == b.numVal
	case KindString:
		return a.strVal == b.strVal
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}
