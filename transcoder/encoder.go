package transcoder

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/wippyai/scriptvalue/errors"
	"github.com/wippyai/scriptvalue/transcoder/internal/numeric"
	"github.com/wippyai/scriptvalue/value"
	"go.uber.org/zap"
)

// Encoder converts Go values into engine values. It is safe for concurrent
// use; every call builds its own state.
type Encoder struct {
	cfg Config
}

func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{cfg: newConfig(opts)}
}

// Encode converts v into a handle created by b.
func (e *Encoder) Encode(v any, b Boundary) (any, error) {
	if b == nil {
		return nil, errors.InvalidInput(errors.PhaseEncode, "boundary is nil")
	}
	st := &encodeState{cfg: &e.cfg, b: b}
	w := st.writer(nil)
	if err := w.encode(reflect.ValueOf(v)); err != nil {
		e.cfg.log().Debug("encode failed", zap.String("type", numeric.TypeName(v)), zap.Error(err))
		return nil, err
	}
	return w.result(), nil
}

// EncodeTree converts v into an in-process value tree.
func (e *Encoder) EncodeTree(v any) (*value.Value, error) {
	h, err := e.Encode(v, value.Tree{})
	if err != nil {
		return nil, err
	}
	return h.(*value.Value), nil
}

func Encode(v any, b Boundary, opts ...Option) (any, error) {
	return NewEncoder(opts...).Encode(v, b)
}

func EncodeTree(v any, opts ...Option) (*value.Value, error) {
	return NewEncoder(opts...).EncodeTree(v)
}

func (w *Writer) encode(rv reflect.Value) error {
	if !rv.IsValid() {
		w.setScalar(w.st.b.Null())
		return nil
	}
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		w.setScalar(w.st.b.Null())
		return nil
	}

	plan := w.st.cfg.Compiler.Plan(rv.Type())
	// Pointer-receiver hooks on non-addressable values run on a copy.
	if plan.HasHook(true) && rv.CanInterface() {
		return w.marshal(plan, rv)
	}
	if plan.Kind.IsBridge() {
		return w.encodeBridge(plan, rv)
	}

	b := w.st.b
	switch plan.Kind {
	case KindBool:
		w.setScalar(b.Bool(rv.Bool()))
	case KindInt8, KindInt16, KindInt32, KindInt64:
		f, ok := numeric.FloatFromInt(rv.Int())
		if !ok {
			return errors.NumericOverflow(errors.PhaseEncode, w.CodingPath(), rv.Int(), "number")
		}
		w.setScalar(b.Number(f))
	case KindUint8, KindUint16, KindUint32, KindUint64:
		f, ok := numeric.FloatFromUint(rv.Uint())
		if !ok {
			return errors.NumericOverflow(errors.PhaseEncode, w.CodingPath(), rv.Uint(), "number")
		}
		w.setScalar(b.Number(f))
	case KindFloat32, KindFloat64:
		w.setScalar(b.Number(rv.Float()))
	case KindString:
		w.setScalar(b.String(rv.String()))
	case KindPointer, KindInterface:
		return w.encode(rv.Elem())
	case KindSlice, KindArray:
		return w.encodeSequence(rv)
	case KindMap:
		return w.encodeMap(rv)
	case KindStruct:
		return w.encodeStruct(plan, rv)
	default:
		return errors.Unsupported(errors.PhaseEncode, w.CodingPath(), "cannot encode "+rv.Type().String())
	}
	return nil
}

func (w *Writer) marshal(plan *Plan, rv reflect.Value) error {
	if !plan.Marshaler {
		if !rv.CanAddr() {
			cp := reflect.New(rv.Type())
			cp.Elem().Set(rv)
			rv = cp.Elem()
		}
		rv = rv.Addr()
	}
	m := rv.Interface().(Marshaler)
	if err := m.MarshalScript(w); err != nil {
		return hookError(errors.PhaseEncode, w.path, err, "MarshalScript")
	}
	return nil
}

func (w *Writer) encodeSequence(rv reflect.Value) error {
	u := w.UnkeyedContainer()
	for i := 0; i < rv.Len(); i++ {
		if err := u.encodeValue(rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) encodeStruct(plan *Plan, rv reflect.Value) error {
	k := w.KeyedContainer()
	for _, f := range plan.Fields {
		fv := rv.Field(f.Index)
		if f.Embedded {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if err := k.SuperWriter().encode(fv); err != nil {
				return err
			}
			continue
		}
		if err := k.encodeValue(f.Name, w.st.cfg.key(f.Name), fv); err != nil {
			return err
		}
	}
	return nil
}

// encodeMap writes maps keyed by strings, text marshalers or UUIDs as objects,
// and all other maps as arrays of [key, value] pairs. Entries are sorted by key
// so output is deterministic. Map keys bypass the key strategy.
func (w *Writer) encodeMap(rv reflect.Value) error {
	keyPlan := w.st.cfg.Compiler.Plan(rv.Type().Key())
	if asObject(keyPlan.Kind, w.st.cfg.IntegerKeyObjects) {
		return w.encodeObjectMap(keyPlan, rv)
	}
	return w.encodePairMap(rv)
}

func asObject(k TypeKind, intObjects bool) bool {
	switch {
	case k == KindString, k == KindText, k == KindUUID:
		return true
	case intObjects && k.IsInteger():
		return true
	}
	return false
}

func (w *Writer) encodeObjectMap(keyPlan *Plan, rv reflect.Value) error {
	k := w.KeyedContainer()

	entries := getEntries()
	defer putEntries(entries)
	iter := rv.MapRange()
	for iter.Next() {
		text, err := mapKeyText(keyPlan, iter.Key())
		if err != nil {
			return errors.DataCorrupted(errors.PhaseEncode, w.CodingPath(), "map key", err)
		}
		*entries = append(*entries, mapEntry{key: iter.Key(), val: iter.Value(), text: text})
	}
	slices.SortFunc(*entries, func(a, b mapEntry) int { return cmp.Compare(a.text, b.text) })

	for _, e := range *entries {
		if err := k.encodeValue(e.text, e.text, e.val); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) encodePairMap(rv reflect.Value) error {
	u := w.UnkeyedContainer()

	entries := getEntries()
	defer putEntries(entries)
	iter := rv.MapRange()
	for iter.Next() {
		*entries = append(*entries, mapEntry{key: iter.Key(), val: iter.Value()})
	}
	slices.SortFunc(*entries, func(a, b mapEntry) int { return compareKeys(a.key, b.key) })

	for _, e := range *entries {
		pair, err := u.NestedUnkeyedContainer()
		if err != nil {
			return err
		}
		if err := pair.encodeValue(e.key); err != nil {
			return err
		}
		if err := pair.encodeValue(e.val); err != nil {
			return err
		}
	}
	return nil
}

func mapKeyText(plan *Plan, key reflect.Value) (string, error) {
	switch {
	case plan.Kind == KindString:
		return key.String(), nil
	case plan.Kind.IsSigned():
		return strconv.FormatInt(key.Int(), 10), nil
	case plan.Kind.IsUnsigned():
		return strconv.FormatUint(key.Uint(), 10), nil
	}
	// UUID and text keys.
	text, err := key.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// compareKeys orders map keys of one type: numbers numerically, strings and
// bools by value, anything else by its formatted form.
func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		}
		return 1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// hookError passes structured errors through and wraps anything else with
// the coding path of the hook that returned it.
func hookError(phase errors.Phase, path []string, err error, hook string) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return errors.Wrap(phase, errors.KindHookFailed, append([]string(nil), path...), err, hook+" failed")
}
