package transcoder

import (
	"reflect"

	"github.com/wippyai/scriptvalue/errors"
	"github.com/wippyai/scriptvalue/transcoder/internal/numeric"
	"github.com/wippyai/scriptvalue/value"
)

type decodeState struct {
	cfg *Config
	b   Boundary
}

// Reader is one level of decoding, positioned on one engine value. It is
// handed to Unmarshaler hooks, which request a container matching the
// value's kind and read their content from it.
type Reader struct {
	st   *decodeState
	node any
	path []string
}

func (r *Reader) child(step string, node any) *Reader {
	return &Reader{st: r.st, node: node, path: appendPath(r.path, step)}
}

func (r *Reader) CodingPath() []string {
	return append([]string(nil), r.path...)
}

func (r *Reader) UserInfo() map[string]any {
	return r.st.cfg.UserInfo
}

// Kind reports the kind of the value at this level.
func (r *Reader) Kind() value.Kind {
	return r.st.b.Kind(r.node)
}

// Decode reads this level into the value dst points to.
func (r *Reader) Decode(dst any) error {
	target, err := targetOf(errors.PhaseDecode, r.path, dst)
	if err != nil {
		return err
	}
	return r.decode(target)
}

// KeyedContainer requires this level to be an object.
func (r *Reader) KeyedContainer() (*KeyedReader, error) {
	if k := r.Kind(); k != value.KindObject {
		return nil, errors.TypeMismatch(errors.PhaseDecode, r.CodingPath(), value.KindObject.String(), k.String())
	}
	k := &KeyedReader{r: r}
	if r.st.cfg.KeyStrategy != nil {
		k.index()
	}
	return k, nil
}

// UnkeyedContainer requires this level to be an array.
func (r *Reader) UnkeyedContainer() (*UnkeyedReader, error) {
	if k := r.Kind(); k != value.KindArray {
		return nil, errors.TypeMismatch(errors.PhaseDecode, r.CodingPath(), value.KindArray.String(), k.String())
	}
	return &UnkeyedReader{r: r, count: r.st.b.Len(r.node)}, nil
}

func (r *Reader) SingleValueContainer() *SingleValueReader {
	return &SingleValueReader{r: r}
}

// KeyedReader reads named members of one object. With a key strategy set,
// requested keys are matched against the transformed stored keys.
type KeyedReader struct {
	r    *Reader
	keys map[string]string // transformed -> stored
}

func (k *KeyedReader) index() {
	stored := k.r.st.b.Keys(k.r.node)
	k.keys = make(map[string]string, len(stored))
	for _, s := range stored {
		t := k.r.st.cfg.key(s)
		if _, dup := k.keys[t]; !dup {
			k.keys[t] = s
		}
	}
}

func (k *KeyedReader) lookup(key string) (any, bool) {
	stored := key
	if k.keys != nil {
		s, ok := k.keys[key]
		if !ok {
			return nil, false
		}
		stored = s
	}
	return k.r.st.b.GetKey(k.r.node, stored)
}

func (k *KeyedReader) CodingPath() []string { return k.r.CodingPath() }

// Keys lists the object's keys as the key strategy presents them.
func (k *KeyedReader) Keys() []string {
	stored := k.r.st.b.Keys(k.r.node)
	if k.keys == nil {
		return stored
	}
	out := make([]string, len(stored))
	for i, s := range stored {
		out[i] = k.r.st.cfg.key(s)
	}
	return out
}

// Contains reports whether key is present. A key holding null is present.
func (k *KeyedReader) Contains(key string) bool {
	_, ok := k.lookup(key)
	return ok
}

// DecodeNil reports whether key holds null. An absent key is an error.
func (k *KeyedReader) DecodeNil(key string) (bool, error) {
	node, ok := k.lookup(key)
	if !ok {
		return false, errors.KeyNotFound(errors.PhaseDecode, k.r.CodingPath(), key)
	}
	return k.r.st.b.Kind(node) == value.KindNull, nil
}

// Decode reads key into the value dst points to. An absent key leaves a
// pointer or interface target nil and fails for any other target. SuperKey
// decodes dst from this same object.
func (k *KeyedReader) Decode(key string, dst any) error {
	target, err := targetOf(errors.PhaseDecode, appendPath(k.r.path, key), dst)
	if err != nil {
		return err
	}
	return k.decodeField(key, target)
}

func (k *KeyedReader) decodeField(key string, target reflect.Value) error {
	if key == SuperKey {
		return k.SuperReader().decode(target)
	}
	return k.decodeMember(key, target)
}

// decodeMember reads a plain member. Struct fields come through here, so a
// field coded as "super" is an ordinary nested value.
func (k *KeyedReader) decodeMember(key string, target reflect.Value) error {
	node, ok := k.lookup(key)
	if !ok {
		if k.r.st.cfg.Compiler.Plan(target.Type()).IsOptional() {
			target.SetZero()
			return nil
		}
		return errors.KeyNotFound(errors.PhaseDecode, k.r.CodingPath(), key)
	}
	return k.r.child(key, node).decode(target)
}

func (k *KeyedReader) NestedKeyedContainer(key string) (*KeyedReader, error) {
	r, err := k.nested(key)
	if err != nil {
		return nil, err
	}
	return r.KeyedContainer()
}

func (k *KeyedReader) NestedUnkeyedContainer(key string) (*UnkeyedReader, error) {
	r, err := k.nested(key)
	if err != nil {
		return nil, err
	}
	return r.UnkeyedContainer()
}

func (k *KeyedReader) nested(key string) (*Reader, error) {
	node, ok := k.lookup(key)
	if !ok {
		return nil, errors.KeyNotFound(errors.PhaseDecode, k.r.CodingPath(), key)
	}
	return k.r.child(key, node), nil
}

// SuperReader returns a reader positioned on this same object.
func (k *KeyedReader) SuperReader() *Reader {
	return &Reader{st: k.r.st, node: k.r.node, path: k.r.path}
}

// UnkeyedReader reads array elements in order. The cursor advances only
// when a read succeeds.
type UnkeyedReader struct {
	r     *Reader
	index int
	count int
}

func (u *UnkeyedReader) CodingPath() []string { return u.r.CodingPath() }

// Len returns the number of elements in the array.
func (u *UnkeyedReader) Len() int { return u.count }

// Index returns the position of the next element.
func (u *UnkeyedReader) Index() int { return u.index }

func (u *UnkeyedReader) IsAtEnd() bool { return u.index >= u.count }

func (u *UnkeyedReader) Remaining() int { return u.count - u.index }

func (u *UnkeyedReader) Decode(dst any) error {
	target, err := targetOf(errors.PhaseDecode, appendPath(u.r.path, indexStep(u.index)), dst)
	if err != nil {
		return err
	}
	return u.decodeNext(target)
}

// DecodeNil consumes the next element if it is null and reports whether it was.
func (u *UnkeyedReader) DecodeNil() (bool, error) {
	node, err := u.peek()
	if err != nil {
		return false, err
	}
	if u.r.st.b.Kind(node) != value.KindNull {
		return false, nil
	}
	u.index++
	return true, nil
}

func (u *UnkeyedReader) NestedKeyedContainer() (*KeyedReader, error) {
	node, err := u.peek()
	if err != nil {
		return nil, err
	}
	k, err := u.r.child(indexStep(u.index), node).KeyedContainer()
	if err != nil {
		return nil, err
	}
	u.index++
	return k, nil
}

func (u *UnkeyedReader) NestedUnkeyedContainer() (*UnkeyedReader, error) {
	node, err := u.peek()
	if err != nil {
		return nil, err
	}
	nested, err := u.r.child(indexStep(u.index), node).UnkeyedContainer()
	if err != nil {
		return nil, err
	}
	u.index++
	return nested, nil
}

func (u *UnkeyedReader) peek() (any, error) {
	if u.IsAtEnd() {
		return nil, errors.ValueExhausted(errors.PhaseDecode, u.r.CodingPath(), u.index, u.count)
	}
	node, ok := u.r.st.b.GetIndex(u.r.node, u.index)
	if !ok {
		return nil, errors.ValueExhausted(errors.PhaseDecode, u.r.CodingPath(), u.index, u.count)
	}
	return node, nil
}

func (u *UnkeyedReader) decodeNext(target reflect.Value) error {
	node, err := u.peek()
	if err != nil {
		return err
	}
	if err := u.r.child(indexStep(u.index), node).decode(target); err != nil {
		return err
	}
	u.index++
	return nil
}

// SingleValueReader reads the one value of a level.
type SingleValueReader struct {
	r *Reader
}

func (s *SingleValueReader) CodingPath() []string { return s.r.CodingPath() }

func (s *SingleValueReader) IsNull() bool {
	return s.r.Kind() == value.KindNull
}

func (s *SingleValueReader) Decode(dst any) error {
	return s.r.Decode(dst)
}

// Get decodes key from k as a T.
func Get[T any](k *KeyedReader, key string) (T, error) {
	var v T
	err := k.decodeField(key, reflect.ValueOf(&v).Elem())
	return v, err
}

// Next decodes the next element of u as a T.
func Next[T any](u *UnkeyedReader) (T, error) {
	var v T
	err := u.decodeNext(reflect.ValueOf(&v).Elem())
	return v, err
}

// As decodes the single value of s as a T.
func As[T any](s *SingleValueReader) (T, error) {
	var v T
	err := s.r.decode(reflect.ValueOf(&v).Elem())
	return v, err
}

func targetOf(phase errors.Phase, path []string, dst any) (reflect.Value, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, errors.New(phase, errors.KindInvalidInput).
			Path(path...).
			Expected("non-nil pointer").
			Found(numeric.TypeName(dst)).
			Build()
	}
	return rv.Elem(), nil
}
