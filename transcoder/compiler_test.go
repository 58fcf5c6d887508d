package transcoder

import (
	"net"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCompiler_Classify(t *testing.T) {
	type named int16
	type blob []byte
	tests := []struct {
		typ  reflect.Type
		want TypeKind
	}{
		{reflect.TypeOf(true), KindBool},
		{reflect.TypeOf(int8(0)), KindInt8},
		{reflect.TypeOf(named(0)), KindInt16},
		{reflect.TypeOf(int64(0)), KindInt64},
		{reflect.TypeOf(uint(0)), KindUint64},
		{reflect.TypeOf(float32(0)), KindFloat32},
		{reflect.TypeOf(""), KindString},
		{reflect.TypeOf(time.Time{}), KindTime},
		{reflect.TypeOf(url.URL{}), KindURL},
		{reflect.TypeOf(uuid.UUID{}), KindUUID},
		{reflect.TypeOf([]byte(nil)), KindBytes},
		{reflect.TypeOf(blob(nil)), KindBytes},
		{reflect.TypeOf(net.IP(nil)), KindText},
		{reflect.TypeOf(new(int)), KindPointer},
		{reflect.TypeOf((*any)(nil)).Elem(), KindInterface},
		{reflect.TypeOf([]int(nil)), KindSlice},
		{reflect.TypeOf([3]byte{}), KindArray},
		{reflect.TypeOf(map[string]int(nil)), KindMap},
		{reflect.TypeOf(point{}), KindStruct},
		{reflect.TypeOf(make(chan int)), KindUnsupported},
		{reflect.TypeOf(complex64(0)), KindUnsupported},
	}
	c := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := c.Plan(tt.typ).Kind; got != tt.want {
				t.Errorf("Plan(%v).Kind = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestCompiler_Hooks(t *testing.T) {
	c := NewCompiler()

	p := c.Plan(reflect.TypeOf(point{}))
	if !p.Marshaler || p.PtrMarshaler || !p.PtrUnmarshaler {
		t.Errorf("point hooks = %v/%v/%v, want value marshaler and pointer unmarshaler", p.Marshaler, p.PtrMarshaler, p.PtrUnmarshaler)
	}

	p = c.Plan(reflect.TypeOf(celsius(0)))
	if p.Marshaler || !p.PtrMarshaler {
		t.Errorf("celsius hooks = %v/%v, want pointer marshaler only", p.Marshaler, p.PtrMarshaler)
	}

	p = c.Plan(reflect.TypeOf(&point{}))
	if !p.Marshaler || p.PtrUnmarshaler {
		t.Errorf("*point hooks = %v/%v, want marshaler through the method set", p.Marshaler, p.PtrUnmarshaler)
	}

	if c.Plan(reflect.TypeOf(stringBox{})).HasHook(true) {
		t.Error("stringBox should have no hooks")
	}
}

func TestCompiler_Fields(t *testing.T) {
	type sample struct {
		Plain    int
		Tagged   int `js:"custom,omitempty"`
		Skipped  int `js:"-"`
		HTTPCode int
		Opt      *int
		private  int
		base
		*Inner
	}
	p := NewCompiler().Plan(reflect.TypeOf(sample{}))

	want := []PlanField{
		{Name: "plain", GoName: "Plain", Index: 0},
		{Name: "custom", GoName: "Tagged", Index: 1},
		{Name: "httpCode", GoName: "HTTPCode", Index: 3},
		{Name: "opt", GoName: "Opt", Index: 4, Optional: true},
		{GoName: "base", Index: 6, Embedded: true},
		{GoName: "Inner", Index: 7, Embedded: true},
	}
	if !reflect.DeepEqual(p.Fields, want) {
		t.Errorf("Fields =\n%+v\nwant\n%+v", p.Fields, want)
	}
}

func TestCompiler_Caches(t *testing.T) {
	c := NewCompiler()
	typ := reflect.TypeOf(stringBox{})
	if c.Plan(typ) != c.Plan(typ) {
		t.Error("Plan should return the cached plan")
	}
	if NewCompiler().Plan(typ) == c.Plan(typ) {
		t.Error("compilers should not share caches")
	}
}

func TestConfig_Options(t *testing.T) {
	comp := NewCompiler()
	cfg := newConfig([]Option{
		WithDateStrategy(DateUnixMilli),
		WithIntegerKeyObjects(),
		WithUserInfo(map[string]any{"k": 1}),
		WithCompiler(comp),
	})
	if cfg.Dates != DateUnixMilli || !cfg.IntegerKeyObjects || cfg.UserInfo["k"] != 1 || cfg.Compiler != comp {
		t.Errorf("options not applied: %+v", cfg)
	}
	if cfg.key("AbC") != "AbC" {
		t.Error("nil key strategy should be identity")
	}
	if cfg.log() == nil {
		t.Error("log should fall back to the package logger")
	}

	if newConfig([]Option{WithCompiler(nil)}).Compiler == nil {
		t.Error("nil compiler should fall back to the default")
	}
	if DateRFC3339.String() != "rfc3339" || DateUnixMilli.String() != "unix-milli" {
		t.Error("unexpected DateStrategy names")
	}
}
