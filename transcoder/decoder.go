package transcoder

import (
	"reflect"
	"strconv"

	"github.com/google/uuid"
	"github.com/wippyai/scriptvalue/errors"
	"github.com/wippyai/scriptvalue/transcoder/internal/numeric"
	"github.com/wippyai/scriptvalue/value"
	"go.uber.org/zap"
)

// Decoder converts engine values into Go values. It is safe for concurrent
// use; every call builds its own state.
type Decoder struct {
	cfg Config
}

func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{cfg: newConfig(opts)}
}

// Decode reads node, inspected through b, into the value dst points to.
// dst is written only when decoding succeeds, and is replaced rather than
// merged into.
func (d *Decoder) Decode(node any, b Boundary, dst any) error {
	if b == nil {
		return errors.InvalidInput(errors.PhaseDecode, "boundary is nil")
	}
	target, err := targetOf(errors.PhaseDecode, nil, dst)
	if err != nil {
		return err
	}

	st := &decodeState{cfg: &d.cfg, b: b}
	r := &Reader{st: st, node: node}
	tmp := reflect.New(target.Type()).Elem()
	if err := r.decode(tmp); err != nil {
		d.cfg.log().Debug("decode failed", zap.String("type", target.Type().String()), zap.Error(err))
		return err
	}
	target.Set(tmp)
	return nil
}

func (d *Decoder) DecodeTree(v *value.Value, dst any) error {
	return d.Decode(v, value.Tree{}, dst)
}

func Decode(node any, b Boundary, dst any, opts ...Option) error {
	return NewDecoder(opts...).Decode(node, b, dst)
}

// DecodeAs decodes node as a T.
func DecodeAs[T any](node any, b Boundary, opts ...Option) (T, error) {
	var v T
	err := NewDecoder(opts...).Decode(node, b, &v)
	return v, err
}

// DecodeTree decodes an in-process value tree as a T.
func DecodeTree[T any](v *value.Value, opts ...Option) (T, error) {
	return DecodeAs[T](v, value.Tree{}, opts...)
}

func (r *Reader) decode(target reflect.Value) error {
	plan := r.st.cfg.Compiler.Plan(target.Type())
	kind := r.Kind()

	if plan.Kind == KindPointer {
		if kind == value.KindNull {
			target.SetZero()
			return nil
		}
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		return r.decode(target.Elem())
	}

	if plan.PtrUnmarshaler && target.CanAddr() && target.Addr().CanInterface() {
		u := target.Addr().Interface().(Unmarshaler)
		if err := u.UnmarshalScript(r); err != nil {
			return hookError(errors.PhaseDecode, r.path, err, "UnmarshalScript")
		}
		return nil
	}

	if kind == value.KindNull {
		if plan.Kind == KindInterface {
			target.SetZero()
			return nil
		}
		return errors.ValueNotFound(errors.PhaseDecode, r.CodingPath(), target.Type().String())
	}

	if plan.Kind.IsBridge() {
		return r.decodeBridge(plan, target)
	}

	switch plan.Kind {
	case KindBool:
		if kind != value.KindBool {
			return r.mismatch(value.KindBool, target.Type())
		}
		target.SetBool(r.st.b.AsBool(r.node))
	case KindInt8, KindInt16, KindInt32, KindInt64:
		f, err := r.number(target.Type())
		if err != nil {
			return err
		}
		n, ok := numeric.IntFromFloat(f, plan.Kind.Bits())
		if !ok {
			return errors.NumericOverflow(errors.PhaseDecode, r.CodingPath(), f, target.Type().String())
		}
		target.SetInt(n)
	case KindUint8, KindUint16, KindUint32, KindUint64:
		f, err := r.number(target.Type())
		if err != nil {
			return err
		}
		n, ok := numeric.UintFromFloat(f, plan.Kind.Bits())
		if !ok {
			return errors.NumericOverflow(errors.PhaseDecode, r.CodingPath(), f, target.Type().String())
		}
		target.SetUint(n)
	case KindFloat32:
		f, err := r.number(target.Type())
		if err != nil {
			return err
		}
		f32, ok := numeric.Float32FromFloat(f)
		if !ok {
			return errors.NumericOverflow(errors.PhaseDecode, r.CodingPath(), f, target.Type().String())
		}
		target.SetFloat(float64(f32))
	case KindFloat64:
		f, err := r.number(target.Type())
		if err != nil {
			return err
		}
		target.SetFloat(f)
	case KindString:
		if kind != value.KindString {
			return r.mismatch(value.KindString, target.Type())
		}
		target.SetString(r.st.b.AsString(r.node))
	case KindInterface:
		if target.NumMethod() != 0 {
			return errors.Unsupported(errors.PhaseDecode, r.CodingPath(), "cannot decode into non-empty interface "+target.Type().String())
		}
		target.Set(reflect.ValueOf(r.natural(r.node)))
	case KindSlice:
		return r.decodeSlice(target)
	case KindArray:
		return r.decodeArray(target)
	case KindMap:
		return r.decodeMap(target)
	case KindStruct:
		return r.decodeStruct(plan, target)
	default:
		return errors.Unsupported(errors.PhaseDecode, r.CodingPath(), "cannot decode into "+target.Type().String())
	}
	return nil
}

func (r *Reader) mismatch(want value.Kind, t reflect.Type) error {
	return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
		Path(r.CodingPath()...).
		Expected(want.String()).
		Found(r.Kind().String()).
		Detail("decoding %s", t).
		Build()
}

func (r *Reader) number(t reflect.Type) (float64, error) {
	if r.Kind() != value.KindNumber {
		return 0, r.mismatch(value.KindNumber, t)
	}
	return r.st.b.AsNumber(r.node), nil
}

// natural converts node into nil, bool, float64, string, []any or map[string]any.
func (r *Reader) natural(node any) any {
	b := r.st.b
	switch b.Kind(node) {
	case value.KindBool:
		return b.AsBool(node)
	case value.KindNumber:
		return b.AsNumber(node)
	case value.KindString:
		return b.AsString(node)
	case value.KindArray:
		n := b.Len(node)
		out := make([]any, n)
		for i := 0; i < n; i++ {
			if child, ok := b.GetIndex(node, i); ok {
				out[i] = r.natural(child)
			}
		}
		return out
	case value.KindObject:
		keys := b.Keys(node)
		out := make(map[string]any, len(keys))
		for _, key := range keys {
			child, _ := b.GetKey(node, key)
			out[key] = r.natural(child)
		}
		return out
	}
	return nil
}

func (r *Reader) decodeSlice(target reflect.Value) error {
	u, err := r.UnkeyedContainer()
	if err != nil {
		return err
	}
	s := reflect.MakeSlice(target.Type(), u.Len(), u.Len())
	for i := 0; i < s.Len(); i++ {
		if err := u.decodeNext(s.Index(i)); err != nil {
			return err
		}
	}
	target.Set(s)
	return nil
}

// decodeArray fills a fixed-size array; a shorter source is exhausted and
// extra source elements are ignored.
func (r *Reader) decodeArray(target reflect.Value) error {
	u, err := r.UnkeyedContainer()
	if err != nil {
		return err
	}
	for i := 0; i < target.Len(); i++ {
		if err := u.decodeNext(target.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) decodeStruct(plan *Plan, target reflect.Value) error {
	k, err := r.KeyedContainer()
	if err != nil {
		return err
	}
	for _, f := range plan.Fields {
		fv := target.Field(f.Index)
		if f.Embedded {
			if fv.Kind() == reflect.Pointer {
				if err := r.decodeEmbeddedPtr(k, fv); err != nil {
					return err
				}
				continue
			}
			if err := k.SuperReader().decode(fv); err != nil {
				return err
			}
			continue
		}
		if err := k.decodeMember(f.Name, fv); err != nil {
			return err
		}
	}
	return nil
}

// decodeEmbeddedPtr leaves an embedded pointer nil when none of its fields
// are present, mirroring the encoder skipping a nil one.
func (r *Reader) decodeEmbeddedPtr(k *KeyedReader, fv reflect.Value) error {
	elem := fv.Type().Elem()
	if !r.anyMember(k, r.st.cfg.Compiler.Plan(elem)) {
		fv.SetZero()
		return nil
	}
	ptr := reflect.New(elem)
	if err := k.SuperReader().decode(ptr.Elem()); err != nil {
		return err
	}
	fv.Set(ptr)
	return nil
}

// anyMember reports whether k holds at least one field of plan, looking
// through embedded structs. Types with their own Unmarshaler count as present.
func (r *Reader) anyMember(k *KeyedReader, plan *Plan) bool {
	if plan.PtrUnmarshaler || plan.Kind != KindStruct {
		return true
	}
	for _, f := range plan.Fields {
		if !f.Embedded {
			if k.Contains(f.Name) {
				return true
			}
			continue
		}
		ft := plan.GoType.Field(f.Index).Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if r.anyMember(k, r.st.cfg.Compiler.Plan(ft)) {
			return true
		}
	}
	return false
}

// decodeMap accepts an object, whose keys are parsed into the map's key
// type, or an array of [key, value] pairs.
func (r *Reader) decodeMap(target reflect.Value) error {
	mt := target.Type()
	m := reflect.MakeMap(mt)
	b := r.st.b

	switch kind := r.Kind(); kind {
	case value.KindObject:
		keyPlan := r.st.cfg.Compiler.Plan(mt.Key())
		for _, stored := range b.Keys(r.node) {
			kv := reflect.New(mt.Key()).Elem()
			if err := r.parseMapKey(keyPlan, stored, kv); err != nil {
				return err
			}
			node, _ := b.GetKey(r.node, stored)
			vv := reflect.New(mt.Elem()).Elem()
			if err := r.child(stored, node).decode(vv); err != nil {
				return err
			}
			m.SetMapIndex(kv, vv)
		}
	case value.KindArray:
		u, err := r.UnkeyedContainer()
		if err != nil {
			return err
		}
		for !u.IsAtEnd() {
			pair, err := u.NestedUnkeyedContainer()
			if err != nil {
				return err
			}
			if pair.Len() != 2 {
				return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
					Path(pair.CodingPath()...).
					Expected("[key, value] pair").
					Found("array of length " + strconv.Itoa(pair.Len())).
					Build()
			}
			kv := reflect.New(mt.Key()).Elem()
			vv := reflect.New(mt.Elem()).Elem()
			if err := pair.decodeNext(kv); err != nil {
				return err
			}
			if err := pair.decodeNext(vv); err != nil {
				return err
			}
			m.SetMapIndex(kv, vv)
		}
	default:
		return errors.TypeMismatch(errors.PhaseDecode, r.CodingPath(), value.KindObject.String(), kind.String())
	}
	target.Set(m)
	return nil
}

func (r *Reader) parseMapKey(plan *Plan, stored string, kv reflect.Value) error {
	path := appendPath(r.path, stored)
	switch {
	case plan.Kind == KindString:
		kv.SetString(stored)
	case plan.Kind.IsSigned():
		n, err := strconv.ParseInt(stored, 10, plan.Kind.Bits())
		if err != nil {
			return errors.DataCorrupted(errors.PhaseDecode, path, kv.Type().String()+" map key", err)
		}
		kv.SetInt(n)
	case plan.Kind.IsUnsigned():
		n, err := strconv.ParseUint(stored, 10, plan.Kind.Bits())
		if err != nil {
			return errors.DataCorrupted(errors.PhaseDecode, path, kv.Type().String()+" map key", err)
		}
		kv.SetUint(n)
	case plan.Kind == KindUUID:
		id, err := uuid.Parse(stored)
		if err != nil {
			return errors.DataCorrupted(errors.PhaseDecode, path, "uuid map key", err)
		}
		kv.Set(reflect.ValueOf(id))
	case plan.Kind == KindText:
		if err := unmarshalText(kv, stored); err != nil {
			return errors.DataCorrupted(errors.PhaseDecode, path, kv.Type().String()+" map key", err)
		}
	default:
		return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(r.CodingPath()...).
			Expected(value.KindArray.String()).
			Found(value.KindObject.String()).
			Detail("%s map keys decode only from [key, value] pairs", kv.Type()).
			Build()
	}
	return nil
}
