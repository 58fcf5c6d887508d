package value

import "fmt"

// Tree is the in-process boundary whose handles are *Value nodes.
// It holds no state and is safe for concurrent use.
type Tree struct{}

func (Tree) Null() any            { return Null() }
func (Tree) Bool(b bool) any      { return Bool(b) }
func (Tree) Number(f float64) any { return Number(f) }
func (Tree) String(s string) any  { return String(s) }
func (Tree) NewArray() any        { return NewArray() }
func (Tree) NewObject() any       { return NewObject() }

func (Tree) SetKey(obj any, key string, v any) error {
	o := node(obj)
	if o.Kind() != KindObject {
		return fmt.Errorf("set key %q on %s", key, o.Kind())
	}
	o.Set(key, node(v))
	return nil
}

func (Tree) SetIndex(arr any, i int, v any) error {
	a := node(arr)
	if a.Kind() != KindArray {
		return fmt.Errorf("set index %d on %s", i, a.Kind())
	}
	if !a.SetIndex(i, node(v)) {
		return fmt.Errorf("index %d out of bounds (length %d)", i, a.Len())
	}
	return nil
}

func (Tree) Kind(v any) Kind { return node(v).Kind() }

func (Tree) GetKey(obj any, key string) (any, bool) {
	child, ok := node(obj).Get(key)
	if !ok {
		return nil, false
	}
	return child, true
}

func (Tree) Keys(obj any) []string { return node(obj).Keys() }

func (Tree) GetIndex(arr any, i int) (any, bool) {
	child, ok := node(arr).Index(i)
	if !ok {
		return nil, false
	}
	return child, true
}

func (Tree) Len(arr any) int { return node(arr).Len() }

func (Tree) AsBool(v any) bool {
	b, _ := node(v).AsBool()
	return b
}

func (Tree) AsNumber(v any) float64 {
	f, _ := node(v).AsNumber()
	return f
}

func (Tree) AsString(v any) string {
	s, _ := node(v).AsString()
	return s
}

// node unwraps a handle; foreign handles read as null.
func node(h any) *Value {
	v, _ := h.(*Value)
	return v
}
