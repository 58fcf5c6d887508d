package transcoder

import (
	"fmt"

	"github.com/wippyai/scriptvalue/value"
)

type stringBox struct {
	String string
}

type point struct {
	X, Y float64
}

// point crosses as a two-element array.
func (p point) MarshalScript(w *Writer) error {
	u := w.UnkeyedContainer()
	if err := u.Encode(p.X); err != nil {
		return err
	}
	return u.Encode(p.Y)
}

func (p *point) UnmarshalScript(r *Reader) error {
	u, err := r.UnkeyedContainer()
	if err != nil {
		return err
	}
	if p.X, err = Next[float64](u); err != nil {
		return err
	}
	p.Y, err = Next[float64](u)
	return err
}

type celsius float64

func (c *celsius) MarshalScript(w *Writer) error {
	return w.SingleValueContainer().Encode(fmt.Sprintf("%.1fC", float64(*c)))
}

type animal struct {
	Name string
}

func (a animal) MarshalScript(w *Writer) error {
	return w.KeyedContainer().Encode("name", a.Name)
}

func (a *animal) UnmarshalScript(r *Reader) error {
	k, err := r.KeyedContainer()
	if err != nil {
		return err
	}
	a.Name, err = Get[string](k, "name")
	return err
}

// dog composes animal into its own object through the super slot.
type dog struct {
	base  animal
	breed string
}

func (d dog) MarshalScript(w *Writer) error {
	k := w.KeyedContainer()
	if err := k.Encode("breed", d.breed); err != nil {
		return err
	}
	return k.Encode(SuperKey, d.base)
}

func (d *dog) UnmarshalScript(r *Reader) error {
	k, err := r.KeyedContainer()
	if err != nil {
		return err
	}
	if d.breed, err = Get[string](k, "breed"); err != nil {
		return err
	}
	return k.Decode(SuperKey, &d.base)
}

type base struct {
	ID int
}

type derived struct {
	base
	Name string
}

type derivedPtr struct {
	*Inner
	Label string
}

type Inner struct {
	Depth int
}

// rejectingBoundary is a tree whose objects refuse writes.
type rejectingBoundary struct {
	value.Tree
}

func (rejectingBoundary) SetKey(any, string, any) error {
	return fmt.Errorf("object is frozen")
}

func object(members ...any) *value.Value {
	obj := value.NewObject()
	for i := 0; i+1 < len(members); i += 2 {
		obj.Set(members[i].(string), members[i+1].(*value.Value))
	}
	return obj
}

func numbers(fs ...float64) *value.Value {
	arr := value.NewArray()
	for _, f := range fs {
		arr.Append(value.Number(f))
	}
	return arr
}
