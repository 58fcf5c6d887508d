package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scriptvalue "github.com/wippyai/scriptvalue"
	"github.com/wippyai/scriptvalue/errors"
	"github.com/wippyai/scriptvalue/keycase"
	"github.com/wippyai/scriptvalue/transcoder"
	"github.com/wippyai/scriptvalue/value"
)

var _ scriptvalue.Boundary = (*Goja)(nil)

type stringBox struct {
	String string
}

type shape struct {
	Name   string
	Points [][2]float64
	Scale  *float64
	Tags   map[string]string
}

func newGoja(t *testing.T, opts ...Option) *Goja {
	t.Helper()
	return NewGoja(goja.New(), opts...)
}

func run(t *testing.T, g *Goja, src string) goja.Value {
	t.Helper()
	v, err := g.Run(src)
	require.NoError(t, err)
	return v
}

func TestGoja_Kind(t *testing.T) {
	g := newGoja(t)
	tests := []struct {
		src  string
		want value.Kind
	}{
		{"null", value.KindNull},
		{"undefined", value.KindNull},
		{"true", value.KindBool},
		{"42", value.KindNumber},
		{"1.5", value.KindNumber},
		{"NaN", value.KindNumber},
		{"'s'", value.KindString},
		{"[1, 2]", value.KindArray},
		{"({a: 1})", value.KindObject},
		{"new Date(0)", value.KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Kind(run(t, g, tt.src)))
		})
	}
	assert.Equal(t, value.KindNull, g.Kind(nil))
	assert.Equal(t, value.KindNull, g.Kind("not a handle"))
}

func TestGoja_EncodeKeyedString(t *testing.T) {
	g := newGoja(t)
	require.NoError(t, g.Set("box", stringBox{String: "Hello"}))
	assert.Equal(t, "Hello", run(t, g, "box.string").String())
	assert.Equal(t, `["string"]`, run(t, g, "JSON.stringify(Object.keys(box))").String())
}

func TestGoja_EncodeUnkeyed(t *testing.T) {
	g := newGoja(t)
	require.NoError(t, g.Set("xs", []int{10, 30}))
	assert.True(t, run(t, g, "Array.isArray(xs)").ToBoolean())
	assert.Equal(t, int64(40), run(t, g, "xs[0] + xs[1]").ToInteger())
	assert.Equal(t, "[10,30]", run(t, g, "JSON.stringify(xs)").String())
}

func TestGoja_DecodeScriptValues(t *testing.T) {
	g := newGoja(t)

	box, err := Export[stringBox](g, run(t, g, `({string: "Hello"})`))
	require.NoError(t, err)
	assert.Equal(t, stringBox{String: "Hello"}, box)

	xs, err := Export[[]int](g, run(t, g, `[10, 30]`))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 30}, xs)

	s, err := Export[shape](g, run(t, g, `({
		name: "tri",
		points: [[0, 0], [1, 0], [0.5, 1]],
		scale: null,
		tags: {color: "red"},
	})`))
	require.NoError(t, err)
	assert.Equal(t, shape{
		Name:   "tri",
		Points: [][2]float64{{0, 0}, {1, 0}, {0.5, 1}},
		Tags:   map[string]string{"color": "red"},
	}, s)
}

func TestGoja_NullAndUndefined(t *testing.T) {
	type optional struct {
		Float *float64
	}
	type required struct {
		Float float64
	}
	g := newGoja(t)

	got, err := Export[optional](g, run(t, g, `({float: null})`))
	require.NoError(t, err)
	assert.Nil(t, got.Float)

	got, err = Export[optional](g, run(t, g, `({float: undefined})`))
	require.NoError(t, err)
	assert.Nil(t, got.Float)

	_, err = Export[required](g, run(t, g, `({float: null})`))
	assert.Equal(t, errors.KindValueNotFound, errors.KindOf(err))

	_, err = Export[required](g, run(t, g, `({float: undefined})`))
	assert.Equal(t, errors.KindKeyNotFound, errors.KindOf(err), "undefined counts as absent")
}

func TestGoja_InheritedPropertiesAreAbsent(t *testing.T) {
	type probe struct {
		ToString *string
		Own      string
	}
	g := newGoja(t)
	got, err := Export[probe](g, run(t, g, `
		const proto = {own: "inherited"};
		const o = Object.create(proto);
		o.own = "mine";
		o`))
	require.NoError(t, err)
	assert.Nil(t, got.ToString)
	assert.Equal(t, "mine", got.Own)

	_, err = Export[probe](g, run(t, g, `Object.create({own: "inherited"})`))
	assert.Equal(t, errors.KindKeyNotFound, errors.KindOf(err))
}

func TestGoja_ArrayHoles(t *testing.T) {
	g := newGoja(t)
	got, err := Export[[]*int](g, run(t, g, `[1, , 3]`))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, *got[0])
	assert.Nil(t, got[1])
	assert.Equal(t, 3, *got[2])
}

func TestGoja_Numbers(t *testing.T) {
	g := newGoja(t)

	n, err := Export[int64](g, run(t, g, `Number.MAX_SAFE_INTEGER + 1`))
	require.NoError(t, err)
	assert.Equal(t, int64(1<<53), n)

	_, err = Export[int64](g, run(t, g, `Math.pow(2, 60)`))
	assert.Equal(t, errors.KindNumericOverflow, errors.KindOf(err))

	_, err = Export[uint8](g, run(t, g, `-1`))
	assert.Equal(t, errors.KindNumericOverflow, errors.KindOf(err))

	_, err = Export[int](g, run(t, g, `0.5`))
	assert.Equal(t, errors.KindNumericOverflow, errors.KindOf(err))

	f, err := Export[float64](g, run(t, g, `-Infinity`))
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, -1))

	require.NoError(t, g.Set("big", int64(1)<<53))
	assert.Equal(t, "9007199254740992", run(t, g, "String(big)").String())

	err = g.Set("tooBig", int64(1)<<53+1)
	assert.Equal(t, errors.KindNumericOverflow, errors.KindOf(err))
}

func TestGoja_SnakeCase(t *testing.T) {
	type config struct {
		MaxRetries int
		BaseURL    string
	}
	g := newGoja(t,
		WithEncoder(transcoder.NewEncoder(transcoder.WithKeyStrategy(keycase.ToSnakeCase))),
		WithDecoder(transcoder.NewDecoder(transcoder.WithKeyStrategy(keycase.FromSnakeCase))),
	)
	require.NoError(t, g.Set("cfg", config{MaxRetries: 3, BaseURL: "http://x"}))
	assert.Equal(t, int64(3), run(t, g, "cfg.max_retries").ToInteger())
	assert.Equal(t, "http://x", run(t, g, "cfg.base_u_r_l").String())

	run(t, g, "cfg.max_retries = 5")
	got, err := Get[config](g, "cfg")
	require.NoError(t, err)
	assert.Equal(t, config{MaxRetries: 5, BaseURL: "http://x"}, got)
}

func TestGoja_IntegerKeyMap(t *testing.T) {
	g := newGoja(t)
	require.NoError(t, g.Set("m", map[int]string{2: "b", 1: "a"}))
	assert.Equal(t, `[[1,"a"],[2,"b"]]`, run(t, g, "JSON.stringify(m)").String())

	got, err := Export[map[int]string](g, run(t, g, `[[3, "c"]]`))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{3: "c"}, got)
}

func TestGoja_Call(t *testing.T) {
	g := newGoja(t)
	run(t, g, `function area(s) { return s.points.length * (s.scale === null ? 1 : s.scale); }`)

	scale := 2.0
	v, err := g.Call("area", shape{Name: "sq", Points: make([][2]float64, 4), Scale: &scale})
	require.NoError(t, err)
	assert.Equal(t, int64(8), v.ToInteger())

	_, err = g.Call("missing")
	assert.Error(t, err)
}

func TestGoja_MatchesTree(t *testing.T) {
	in := shape{
		Name:   "line",
		Points: [][2]float64{{0, 0}, {2, 2}},
		Tags:   map[string]string{"b": "2", "a": "1"},
	}
	g := newGoja(t)
	h, err := transcoder.Encode(in, g)
	require.NoError(t, err)

	tree, err := transcoder.EncodeTree(in)
	require.NoError(t, err)

	// goja exports integral numbers as int64, so compare the JSON forms.
	want, err := json.Marshal(tree.Export())
	require.NoError(t, err)
	got, err := json.Marshal(h.(goja.Value).Export())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestGoja_BoundaryErrors(t *testing.T) {
	g := newGoja(t)
	assert.Error(t, g.SetKey("not an object", "k", g.Null()))
	assert.Error(t, g.SetIndex(g.NewObject(), 0, g.Null()))

	frozen := run(t, g, `"use strict"; Object.freeze({})`)
	_, err := transcoder.Encode(struct{ A int }{A: 1}, frozenBoundary{Goja: g, obj: frozen})
	require.Error(t, err)
	assert.Equal(t, errors.KindUnsupported, errors.KindOf(err))
}

// frozenBoundary hands out one pre-frozen object for every object request.
type frozenBoundary struct {
	*Goja
	obj goja.Value
}

func (f frozenBoundary) NewObject() any { return f.obj }
