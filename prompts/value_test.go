package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAny(t *testing.T) {
	cases := []struct {
		name string
		in   any
		kind Kind
	}{
		{"nil", nil, KindAbsent},
		{"string", "x", KindString},
		{"bool", true, KindBool},
		{"int", 3, KindNumber},
		{"int64", int64(3), KindNumber},
		{"float64", 3.5, KindNumber},
		{"slice", []any{1, 2}, KindList},
		{"string slice", []string{"a"}, KindList},
		{"map", map[string]any{"k": "v"}, KindMap},
		{"value passthrough", StringValue("x"), KindString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, FromAny(tc.in).Kind())
		})
	}
}

func TestValueTruthy(t *testing.T) {
	assert.True(t, StringValue("x").Truthy())
	assert.False(t, StringValue("").Truthy())
	assert.True(t, NumberValue(1).Truthy())
	assert.False(t, NumberValue(0).Truthy())
	assert.True(t, BoolValue(true).Truthy())
	assert.False(t, BoolValue(false).Truthy())
	assert.True(t, ListValue(NumberValue(1)).Truthy())
	assert.False(t, ListValue().Truthy())
	assert.True(t, MapValue(map[string]Value{"k": Absent}).Truthy())
	assert.False(t, MapValue(map[string]Value{}).Truthy())
	assert.False(t, Absent.Truthy())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "25", NumberValue(25).String())
	assert.Equal(t, "2.5", NumberValue(2.5).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "", Absent.String())
	assert.Equal(t, "a, b", ListValue(StringValue("a"), StringValue("b")).String())
	assert.Equal(t, "a: 1, b: 2", MapValue(map[string]Value{
		"b": NumberValue(2),
		"a": NumberValue(1),
	}).String())
}

func TestValueToAny(t *testing.T) {
	v := FromAny(map[string]any{
		"name":  "x",
		"count": 2,
		"tags":  []any{"a"},
	})
	back, ok := v.ToAny().(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "x", back["name"])
	assert.Equal(t, float64(2), back["count"])
}

func TestLookupPath(t *testing.T) {
	v := FromAny(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": "deep"}},
	})

	got := lookupPath(v, []string{"a", "b", "c"})
	assert.Equal(t, "deep", got.String())

	assert.True(t, lookupPath(v, []string{"a", "missing"}).IsAbsent())
	assert.True(t, lookupPath(StringValue("s"), []string{"a"}).IsAbsent())
	assert.Equal(t, v, lookupPath(v, nil))
}
