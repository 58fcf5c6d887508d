package types

import (
	"reflect"
)

type Plan struct {
	GoType reflect.Type
	Fields []Field
	Kind   Kind

	// Coding hooks: value receiver, pointer receiver.
	Marshaler      bool
	PtrMarshaler   bool
	PtrUnmarshaler bool
}

type Field struct {
	Name     string
	GoName   string
	Index    int
	Embedded bool
	Optional bool
}

// HasHook reports whether values of the plan's type encode themselves.
func (p *Plan) HasHook(addressable bool) bool {
	return p.Marshaler || (addressable && p.PtrMarshaler)
}

// IsOptional reports kinds that carry their own absence (nil).
func (p *Plan) IsOptional() bool {
	return p.Kind == KindPointer || p.Kind == KindInterface
}
