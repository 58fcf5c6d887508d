package transcoder

import (
	"encoding"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wippyai/scriptvalue/keycase"
)

var (
	marshalerType       = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	timeType            = reflect.TypeOf(time.Time{})
	urlType             = reflect.TypeOf(url.URL{})
	uuidType            = reflect.TypeOf(uuid.UUID{})
)

// Compiler classifies Go types once and caches the resulting plans.
// It is safe for concurrent use.
type Compiler struct {
	cache sync.Map // reflect.Type -> *Plan
}

var defaultCompiler = NewCompiler()

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Plan returns the cached plan for t, compiling it on first use.
func (c *Compiler) Plan(t reflect.Type) *Plan {
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*Plan)
	}
	actual, _ := c.cache.LoadOrStore(t, c.compile(t))
	return actual.(*Plan)
}

func (c *Compiler) compile(t reflect.Type) *Plan {
	p := &Plan{GoType: t, Kind: classify(t)}

	p.Marshaler = t.Implements(marshalerType)
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		ptr := reflect.PointerTo(t)
		p.PtrMarshaler = !p.Marshaler && ptr.Implements(marshalerType)
		p.PtrUnmarshaler = ptr.Implements(unmarshalerType)
	}

	if p.Kind == KindStruct {
		p.Fields = structFields(t)
	}
	return p
}

func classify(t reflect.Type) TypeKind {
	switch t {
	case timeType:
		return KindTime
	case urlType:
		return KindURL
	case uuidType:
		return KindUUID
	}

	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface &&
		t.Implements(textMarshalerType) && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return KindText
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Int:
		if t.Size() == 4 {
			return KindInt32
		}
		return KindInt64
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Uint, reflect.Uintptr:
		if t.Size() == 4 {
			return KindUint32
		}
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.String:
		return KindString
	case reflect.Pointer:
		return KindPointer
	case reflect.Interface:
		return KindInterface
	case reflect.Slice:
		elem := t.Elem()
		if elem.Kind() == reflect.Uint8 && !hasHooks(elem) {
			return KindBytes
		}
		return KindSlice
	case reflect.Array:
		return KindArray
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		return KindStruct
	default:
		return KindUnsupported
	}
}

func hasHooks(t reflect.Type) bool {
	ptr := reflect.PointerTo(t)
	return ptr.Implements(marshalerType) || ptr.Implements(unmarshalerType) || ptr.Implements(textMarshalerType)
}

// structFields lists the coded fields of t in declaration order.
// Exported fields are keyed by their `js` tag name or, failing that, by the
// lowerCamel form of the Go name. `js:"-"` skips a field. Untagged embedded
// structs are marked Embedded and coded through the super slot; embedded
// bridged types such as time.Time stay ordinary fields.
func structFields(t reflect.Type) []PlanField {
	fields := make([]PlanField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("js")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if classify(ft) == KindStruct {
				// Unexported embedded pointers cannot be allocated on decode.
				if !sf.IsExported() && sf.Type.Kind() == reflect.Pointer {
					continue
				}
				fields = append(fields, PlanField{GoName: sf.Name, Index: i, Embedded: true})
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = keycase.LowerCamel(sf.Name)
		}
		k := sf.Type.Kind()
		fields = append(fields, PlanField{
			Name:     name,
			GoName:   sf.Name,
			Index:    i,
			Optional: k == reflect.Pointer || k == reflect.Interface,
		})
	}
	return fields
}
