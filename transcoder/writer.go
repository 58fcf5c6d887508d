package transcoder

import (
	"reflect"
	"strconv"

	"github.com/wippyai/scriptvalue/errors"
	"go.uber.org/zap"
)

type containerKind uint8

const (
	containerNone containerKind = iota
	containerKeyed
	containerUnkeyed
	containerSingle
)

var containerNames = [...]string{
	containerNone:    "none",
	containerKeyed:   "keyed",
	containerUnkeyed: "unkeyed",
	containerSingle:  "single",
}

// slot is the node one level of encoding produces.
type slot struct {
	handle  any
	kind    containerKind
	written bool // single value container already holds a value
}

type encodeState struct {
	cfg *Config
	b   Boundary
}

// Writer is one level of encoding. It is handed to Marshaler hooks, which
// request exactly one container from it and write their content there.
type Writer struct {
	st   *encodeState
	slot *slot
	path []string
}

func (st *encodeState) writer(path []string) *Writer {
	return &Writer{st: st, slot: &slot{}, path: path}
}

func (w *Writer) child(step string) *Writer {
	return w.st.writer(appendPath(w.path, step))
}

// CodingPath returns the keys and indices from the root to this level.
func (w *Writer) CodingPath() []string {
	return append([]string(nil), w.path...)
}

func (w *Writer) UserInfo() map[string]any {
	return w.st.cfg.UserInfo
}

// Encode writes v as the content of this level.
func (w *Writer) Encode(v any) error {
	return w.encode(reflect.ValueOf(v))
}

// KeyedContainer returns the object container for this level. Asking again
// returns a container over the same object; asking after a different
// container kind replaces what that container wrote.
func (w *Writer) KeyedContainer() *KeyedWriter {
	if w.slot.kind != containerKeyed {
		w.replace(containerKeyed, w.st.b.NewObject())
	}
	return &KeyedWriter{w: w, obj: w.slot.handle}
}

// UnkeyedContainer returns the array container for this level. Appends
// continue after the array's current end.
func (w *Writer) UnkeyedContainer() *UnkeyedWriter {
	if w.slot.kind != containerUnkeyed {
		w.replace(containerUnkeyed, w.st.b.NewArray())
	}
	return &UnkeyedWriter{w: w, arr: w.slot.handle}
}

// SingleValueContainer returns a container that accepts exactly one value.
func (w *Writer) SingleValueContainer() *SingleValueWriter {
	return &SingleValueWriter{w: w}
}

func (w *Writer) replace(kind containerKind, handle any) {
	if w.slot.kind != containerNone {
		w.st.cfg.log().Debug("container replaced",
			zap.String("path", errors.FormatPath(w.path)),
			zap.String("from", containerNames[w.slot.kind]),
			zap.String("to", containerNames[kind]))
	}
	w.slot.kind = kind
	w.slot.handle = handle
	w.slot.written = false
}

func (w *Writer) setScalar(handle any) {
	w.replace(containerSingle, handle)
}

// result is the node this level produced. A level nothing was written to
// yields an empty object.
func (w *Writer) result() any {
	if w.slot.kind == containerNone {
		return w.st.b.NewObject()
	}
	return w.slot.handle
}

// KeyedWriter writes named members of one object.
type KeyedWriter struct {
	w   *Writer
	obj any
}

func (k *KeyedWriter) CodingPath() []string { return k.w.CodingPath() }

// Encode stores v under key, after the key strategy. SuperKey encodes v into
// this same object instead.
func (k *KeyedWriter) Encode(key string, v any) error {
	if key == SuperKey {
		return k.SuperWriter().encode(reflect.ValueOf(v))
	}
	return k.encodeValue(key, k.w.st.cfg.key(key), reflect.ValueOf(v))
}

// EncodeNil stores an explicit null under key.
func (k *KeyedWriter) EncodeNil(key string) error {
	return k.set(key, k.w.st.cfg.key(key), k.w.st.b.Null())
}

// NestedKeyedContainer stores a fresh object under key and returns its container.
func (k *KeyedWriter) NestedKeyedContainer(key string) (*KeyedWriter, error) {
	child := k.w.child(key)
	nested := child.KeyedContainer()
	if err := k.set(key, k.w.st.cfg.key(key), child.slot.handle); err != nil {
		return nil, err
	}
	return nested, nil
}

// NestedUnkeyedContainer stores a fresh array under key and returns its container.
func (k *KeyedWriter) NestedUnkeyedContainer(key string) (*UnkeyedWriter, error) {
	child := k.w.child(key)
	nested := child.UnkeyedContainer()
	if err := k.set(key, k.w.st.cfg.key(key), child.slot.handle); err != nil {
		return nil, err
	}
	return nested, nil
}

// SuperWriter returns a writer whose keyed container is this object.
func (k *KeyedWriter) SuperWriter() *Writer {
	return &Writer{st: k.w.st, slot: k.w.slot, path: k.w.path}
}

// encodeValue encodes rv under pathKey in the coding path and stores it as storeKey.
func (k *KeyedWriter) encodeValue(pathKey, storeKey string, rv reflect.Value) error {
	child := k.w.child(pathKey)
	if err := child.encode(rv); err != nil {
		return err
	}
	return k.set(pathKey, storeKey, child.result())
}

func (k *KeyedWriter) set(pathKey, storeKey string, handle any) error {
	if err := k.w.st.b.SetKey(k.obj, storeKey, handle); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindUnsupported, appendPath(k.w.path, pathKey), err, "engine rejected key write")
	}
	return nil
}

// UnkeyedWriter appends elements to one array.
type UnkeyedWriter struct {
	w   *Writer
	arr any
}

func (u *UnkeyedWriter) CodingPath() []string { return u.w.CodingPath() }

// Len returns the number of elements written so far.
func (u *UnkeyedWriter) Len() int {
	return u.w.st.b.Len(u.arr)
}

func (u *UnkeyedWriter) Encode(v any) error {
	return u.encodeValue(reflect.ValueOf(v))
}

func (u *UnkeyedWriter) EncodeNil() error {
	i := u.Len()
	return u.set(i, u.w.st.b.Null())
}

func (u *UnkeyedWriter) NestedKeyedContainer() (*KeyedWriter, error) {
	i := u.Len()
	child := u.w.child(indexStep(i))
	nested := child.KeyedContainer()
	if err := u.set(i, child.slot.handle); err != nil {
		return nil, err
	}
	return nested, nil
}

func (u *UnkeyedWriter) NestedUnkeyedContainer() (*UnkeyedWriter, error) {
	i := u.Len()
	child := u.w.child(indexStep(i))
	nested := child.UnkeyedContainer()
	if err := u.set(i, child.slot.handle); err != nil {
		return nil, err
	}
	return nested, nil
}

func (u *UnkeyedWriter) encodeValue(rv reflect.Value) error {
	i := u.Len()
	child := u.w.child(indexStep(i))
	if err := child.encode(rv); err != nil {
		return err
	}
	return u.set(i, child.result())
}

func (u *UnkeyedWriter) set(i int, handle any) error {
	if err := u.w.st.b.SetIndex(u.arr, i, handle); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindUnsupported, appendPath(u.w.path, indexStep(i)), err, "engine rejected index write")
	}
	return nil
}

// SingleValueWriter writes the one value of a level.
type SingleValueWriter struct {
	w *Writer
}

func (s *SingleValueWriter) CodingPath() []string { return s.w.CodingPath() }

// Encode writes v. A second write through any single value container of the
// same level fails with an unsupported error.
func (s *SingleValueWriter) Encode(v any) error {
	if err := s.check(); err != nil {
		return err
	}
	err := s.w.encode(reflect.ValueOf(v))
	s.w.slot.written = true
	return err
}

func (s *SingleValueWriter) EncodeNil() error {
	if err := s.check(); err != nil {
		return err
	}
	s.w.setScalar(s.w.st.b.Null())
	s.w.slot.written = true
	return nil
}

func (s *SingleValueWriter) check() error {
	if s.w.slot.written {
		return errors.Unsupported(errors.PhaseEncode, s.w.CodingPath(), "single value container already holds a value")
	}
	return nil
}

func appendPath(path []string, step string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = step
	return out
}

func indexStep(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
