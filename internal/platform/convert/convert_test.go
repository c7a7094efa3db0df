package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		def  int64
		want int64
	}{
		{name: "nil uses default", in: nil, def: 7, want: 7},
		{name: "empty string uses default", in: "", def: 0, want: 0},
		{name: "blank string uses default", in: "   ", def: 4, want: 4},
		{name: "non numeric uses default", in: "abc", def: -1, want: -1},
		{name: "float string truncates", in: "3.0", def: 0, want: 3},
		{name: "float string with fraction", in: "7.9", def: 0, want: 7},
		{name: "int string", in: "42", def: 0, want: 42},
		{name: "json float", in: float64(12), def: 0, want: 12},
		{name: "json number", in: json.Number("15"), def: 0, want: 15},
		{name: "bool uses default", in: true, def: 9, want: 9},
		{name: "list uses default", in: []any{1}, def: 2, want: 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Int(tc.in, tc.def))
		})
	}
}

func TestOptionalInt(t *testing.T) {
	t.Parallel()

	assert.Nil(t, OptionalInt(nil))
	assert.Nil(t, OptionalInt(""))
	assert.Nil(t, OptionalInt("not-a-number"))

	got := OptionalInt("3.0")
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(3), *got)
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fallback", String(nil, "fallback"))
	assert.Equal(t, "fallback", String("", "fallback"))
	assert.Equal(t, "3xc", String("3xc", "fallback"))
	assert.Equal(t, "12", String(float64(12), ""))
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString(nil))
}

func TestOptionalFloat(t *testing.T) {
	t.Parallel()

	got := OptionalFloat("4.5")
	if assert.NotNil(t, got) {
		assert.InDelta(t, 4.5, *got, 1e-9)
	}
	assert.Nil(t, OptionalFloat(""))
	assert.Nil(t, OptionalFloat("n/a"))
}

func TestBool(t *testing.T) {
	t.Parallel()

	assert.True(t, Bool(true))
	assert.True(t, Bool("true"))
	assert.False(t, Bool(nil))
	assert.False(t, Bool(1))
}
