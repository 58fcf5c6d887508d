package engine

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/scriptvalue/transcoder"
	"github.com/wippyai/scriptvalue/value"
)

// Goja implements scriptvalue.Boundary over a goja runtime.
type Goja struct {
	vm     *goja.Runtime
	hasOwn goja.Callable
	enc    *transcoder.Encoder
	dec    *transcoder.Decoder
}

// Option configures a Goja.
type Option func(*Goja)

// WithEncoder sets the encoder used by Set and Call.
func WithEncoder(e *transcoder.Encoder) Option {
	return func(g *Goja) { g.enc = e }
}

// WithDecoder sets the decoder used by Export and Get.
func WithDecoder(d *transcoder.Decoder) Option {
	return func(g *Goja) { g.dec = d }
}

// NewGoja binds a boundary to vm. The runtime must not be used from another
// goroutine while the boundary is in use.
func NewGoja(vm *goja.Runtime, opts ...Option) *Goja {
	g := &Goja{vm: vm}
	for _, opt := range opts {
		opt(g)
	}
	if g.enc == nil {
		g.enc = transcoder.NewEncoder()
	}
	if g.dec == nil {
		g.dec = transcoder.NewDecoder()
	}

	fn, err := vm.RunString("Object.prototype.hasOwnProperty")
	if err == nil {
		g.hasOwn, _ = goja.AssertFunction(fn)
	}
	if g.hasOwn == nil {
		Logger().Debug("hasOwnProperty unavailable; inherited properties will be visible")
	}
	return g
}

func (g *Goja) Runtime() *goja.Runtime { return g.vm }

func (g *Goja) Null() any            { return goja.Null() }
func (g *Goja) Bool(b bool) any      { return g.vm.ToValue(b) }
func (g *Goja) Number(f float64) any { return g.vm.ToValue(f) }
func (g *Goja) String(s string) any  { return g.vm.ToValue(s) }
func (g *Goja) NewArray() any        { return g.vm.NewArray() }
func (g *Goja) NewObject() any       { return g.vm.NewObject() }

func (g *Goja) SetKey(obj any, key string, v any) error {
	o, ok := obj.(*goja.Object)
	if !ok {
		return fmt.Errorf("set key %q on %T", key, obj)
	}
	return o.Set(key, v)
}

func (g *Goja) SetIndex(arr any, i int, v any) error {
	o, ok := obj(arr)
	if !ok || o.ClassName() != "Array" {
		return fmt.Errorf("set index %d on %T", i, arr)
	}
	return o.Set(strconv.Itoa(i), v)
}

func (g *Goja) Kind(v any) value.Kind {
	val := jsValue(v)
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return value.KindNull
	}
	if o, ok := val.(*goja.Object); ok {
		if o.ClassName() == "Array" {
			return value.KindArray
		}
		return value.KindObject
	}
	switch val.ExportType().Kind() {
	case reflect.Bool:
		return value.KindBool
	case reflect.Int64, reflect.Float64:
		return value.KindNumber
	case reflect.String:
		return value.KindString
	}
	// Symbols and other exotic primitives have no tree form.
	return value.KindNull
}

// GetKey reads an own property. Undefined counts as absent.
func (g *Goja) GetKey(o any, key string) (any, bool) {
	target, ok := obj(o)
	if !ok {
		return nil, false
	}
	if g.hasOwn != nil {
		own, err := g.hasOwn(target, g.vm.ToValue(key))
		if err != nil || !own.ToBoolean() {
			return nil, false
		}
	}
	v := target.Get(key)
	if v == nil || goja.IsUndefined(v) {
		return nil, false
	}
	return v, true
}

func (g *Goja) Keys(o any) []string {
	target, ok := obj(o)
	if !ok {
		return nil
	}
	return target.Keys()
}

// GetIndex reads element i; holes read as undefined.
func (g *Goja) GetIndex(arr any, i int) (any, bool) {
	if i < 0 || i >= g.Len(arr) {
		return nil, false
	}
	target, _ := obj(arr)
	v := target.Get(strconv.Itoa(i))
	if v == nil {
		return goja.Undefined(), true
	}
	return v, true
}

func (g *Goja) Len(arr any) int {
	target, ok := obj(arr)
	if !ok {
		return 0
	}
	length := target.Get("length")
	if length == nil {
		return 0
	}
	return int(length.ToInteger())
}

func (g *Goja) AsBool(v any) bool {
	if val := jsValue(v); val != nil {
		return val.ToBoolean()
	}
	return false
}

func (g *Goja) AsNumber(v any) float64 {
	if val := jsValue(v); val != nil {
		return val.ToFloat()
	}
	return 0
}

func (g *Goja) AsString(v any) string {
	if val := jsValue(v); val != nil {
		return val.String()
	}
	return ""
}

// Set encodes v and binds it to the global name.
func (g *Goja) Set(name string, v any) error {
	h, err := g.enc.Encode(v, g)
	if err != nil {
		return err
	}
	return g.vm.Set(name, h)
}

// Run evaluates src in the runtime.
func (g *Goja) Run(src string) (goja.Value, error) {
	v, err := g.vm.RunString(src)
	if err != nil {
		Logger().Debug("script failed", zap.Error(err))
		return nil, err
	}
	return v, nil
}

// Call invokes the global function name with each argument encoded.
func (g *Goja) Call(name string, args ...any) (goja.Value, error) {
	fn, ok := goja.AssertFunction(g.vm.Get(name))
	if !ok {
		return nil, fmt.Errorf("%s is not a function", name)
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		h, err := g.enc.Encode(a, g)
		if err != nil {
			return nil, err
		}
		vals[i] = h.(goja.Value)
	}
	return fn(goja.Undefined(), vals...)
}

// Export decodes a script value into a T.
func Export[T any](g *Goja, v goja.Value) (T, error) {
	var out T
	err := g.dec.Decode(v, g, &out)
	return out, err
}

// Get decodes the global name into a T.
func Get[T any](g *Goja, name string) (T, error) {
	return Export[T](g, g.vm.Get(name))
}

func jsValue(h any) goja.Value {
	v, _ := h.(goja.Value)
	return v
}

func obj(h any) (*goja.Object, bool) {
	o, ok := h.(*goja.Object)
	return o, ok && o != nil
}
