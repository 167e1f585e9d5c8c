// Package prompts implements the template rendering engine used to assemble
// conversational-AI prompts, together with the template records, the template
// manager, and the prompt builder that sit on top of it.
package prompts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// Value is the closed set of runtime values a template can see. A Value is
// immutable once produced; Absent means "no such key or variable".
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	list    []Value
	mapping map[string]Value
}

// Absent is the zero Value, returned whenever a lookup fails.
var Absent = Value{kind: KindAbsent}

func StringValue(s string) Value  { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, boolean: b} }

func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

func MapValue(m map[string]Value) Value {
	return Value{kind: KindMap, mapping: m}
}

// FromAny converts an arbitrary Go value into a Value. Unrecognized types
// fall back to their fmt representation; nil becomes Absent.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Absent
	case Value:
		return x
	case string:
		return StringValue(x)
	case bool:
		return BoolValue(x)
	case int:
		return NumberValue(float64(x))
	case int32:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case float32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	case []Value:
		return ListValue(x...)
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, FromAny(item))
		}
		return ListValue(items...)
	case []string:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, StringValue(item))
		}
		return ListValue(items...)
	case map[string]Value:
		return MapValue(x)
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			m[k] = FromAny(item)
		}
		return MapValue(m)
	default:
		return StringValue(fmt.Sprintf("%v", x))
	}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Truthy reports whether the value counts as true in conditionals: non-empty
// strings, non-zero numbers, true booleans, and non-empty lists or mappings.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0
	case KindBool:
		return v.boolean
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return len(v.mapping) > 0
	default:
		return false
	}
}

// List returns the elements of a list value, or nil for any other kind.
func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// Get looks up a key in a mapping value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Absent, false
	}
	val, ok := v.mapping[key]
	return val, ok
}

// Len returns the length of a string, list, or mapping; other kinds have
// length zero.
func (v Value) Len() int {
	switch v.kind {
	case KindString:
		return len(v.str)
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.mapping)
	default:
		return 0
	}
}

// String renders the value the way it appears in template output.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	case KindMap:
		keys := make([]string, 0, len(v.mapping))
		for k := range v.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+v.mapping[k].String())
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// ToAny converts a Value back into plain Go data, for JSON encoding and
// custom functions that want native types.
func (v Value) ToAny() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.boolean
	case KindList:
		items := make([]any, 0, len(v.list))
		for _, item := range v.list {
			items = append(items, item.ToAny())
		}
		return items
	case KindMap:
		m := make(map[string]any, len(v.mapping))
		for k, item := range v.mapping {
			m[k] = item.ToAny()
		}
		return m
	default:
		return nil
	}
}

// lookupPath descends into nested mappings one segment at a time. Any missing
// key or non-mapping intermediate yields Absent.
func lookupPath(v Value, path []string) Value {
	current := v
	for _, segment := range path {
		next, ok := current.Get(segment)
		if !ok {
			return Absent
		}
		current = next
	}
	return current
}

// formatNumber renders whole numbers without a decimal point, matching how
// callers expect ages and counts to read.
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
