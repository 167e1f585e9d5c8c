package prompts

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateFunc is a function callable from a template. Arguments arrive
// already resolved; returning an error makes the call site render as its
// original placeholder text.
type TemplateFunc func(args ...Value) (Value, error)

type registryEntry struct {
	fn TemplateFunc
	// acceptsAbsent lets a function see unresolved arguments instead of
	// failing the call. Only default() needs this.
	acceptsAbsent bool
}

// FunctionRegistry maps function names to callables. Reads during concurrent
// renders are safe; perform all registration before rendering begins.
type FunctionRegistry struct {
	mu  sync.RWMutex
	fns map[string]registryEntry
}

// NewFunctionRegistry creates a registry pre-populated with the built-ins.
func NewFunctionRegistry() *FunctionRegistry {
	r := &FunctionRegistry{fns: make(map[string]registryEntry)}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a function. Entries are never removed.
func (r *FunctionRegistry) Register(name string, fn TemplateFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[name] = registryEntry{fn: fn}
}

func (r *FunctionRegistry) register(name string, acceptsAbsent bool, fn TemplateFunc) {
	r.fns[name] = registryEntry{fn: fn, acceptsAbsent: acceptsAbsent}
}

func (r *FunctionRegistry) lookup(name string) (registryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.fns[name]
	return entry, ok
}

// Names returns the registered function names, for introspection.
func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	return names
}

func (r *FunctionRegistry) registerBuiltins() {
	r.register("now", false, func(args ...Value) (Value, error) {
		return StringValue(time.Now().Format(time.RFC3339)), nil
	})
	r.register("today", false, func(args ...Value) (Value, error) {
		return StringValue(time.Now().Format("2006-01-02")), nil
	})
	r.register("time", false, func(args ...Value) (Value, error) {
		return StringValue(time.Now().Format("15:04:05")), nil
	})
	r.register("upper", false, fnUpper)
	r.register("lower", false, fnLower)
	r.register("title", false, fnTitle)
	r.register("len", false, fnLen)
	r.register("join", false, fnJoin)
	r.register("truncate", false, fnTruncate)
	r.register("default", true, fnDefault)
	r.register("format_list", false, fnFormatList)
	r.register("format_dict", false, fnFormatDict)
	r.register("conditional", true, fnConditional)
}

func fnUpper(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("upper: missing argument")
	}
	return StringValue(strings.ToUpper(args[0].String())), nil
}

func fnLower(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("lower: missing argument")
	}
	return StringValue(strings.ToLower(args[0].String())), nil
}

func fnTitle(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("title: missing argument")
	}
	return StringValue(cases.Title(language.Und).String(args[0].String())), nil
}

func fnLen(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("len: missing argument")
	}
	return NumberValue(float64(args[0].Len())), nil
}

func fnJoin(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("join: missing argument")
	}
	sep := ", "
	if len(args) > 1 {
		sep = args[1].String()
	}
	items := args[0].List()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return StringValue(strings.Join(parts, sep)), nil
}

func fnTruncate(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("truncate: missing argument")
	}
	text := args[0].String()
	limit := 100
	if len(args) > 1 && args[1].Kind() == KindNumber {
		limit = int(args[1].num)
	}
	runes := []rune(text)
	if limit < 0 || len(runes) <= limit {
		return StringValue(text), nil
	}
	return StringValue(string(runes[:limit]) + "..."), nil
}

// fnDefault returns the first argument unless it is absent. A present but
// falsy value (empty string, zero) is kept as-is.
func fnDefault(args ...Value) (Value, error) {
	if len(args) < 2 {
		return Absent, fmt.Errorf("default: want value and fallback")
	}
	if args[0].IsAbsent() {
		return args[1], nil
	}
	return args[0], nil
}

func fnFormatList(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("format_list: missing argument")
	}
	items := args[0].List()
	if len(items) == 0 {
		return StringValue(""), nil
	}
	style := "bullet"
	if len(args) > 1 {
		style = args[1].String()
	}
	parts := make([]string, 0, len(items))
	switch style {
	case "bullet":
		for _, item := range items {
			parts = append(parts, "• "+item.String())
		}
		return StringValue(strings.Join(parts, "\n")), nil
	case "numbered":
		for i, item := range items {
			parts = append(parts, fmt.Sprintf("%d. %s", i+1, item.String()))
		}
		return StringValue(strings.Join(parts, "\n")), nil
	case "comma":
		for _, item := range items {
			parts = append(parts, item.String())
		}
		return StringValue(strings.Join(parts, ", ")), nil
	default:
		for _, item := range items {
			parts = append(parts, item.String())
		}
		return StringValue(strings.Join(parts, ", ")), nil
	}
}

func fnFormatDict(args ...Value) (Value, error) {
	if len(args) < 1 {
		return Absent, fmt.Errorf("format_dict: missing argument")
	}
	if args[0].Kind() != KindMap {
		return Absent, fmt.Errorf("format_dict: want a mapping")
	}
	if args[0].Len() == 0 {
		return StringValue(""), nil
	}
	style := "key_value"
	if len(args) > 1 {
		style = args[1].String()
	}
	switch style {
	case "json":
		data, err := json.MarshalIndent(args[0].ToAny(), "", "  ")
		if err != nil {
			return Absent, err
		}
		return StringValue(string(data)), nil
	default:
		keys := make([]string, 0, len(args[0].mapping))
		for k := range args[0].mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+": "+args[0].mapping[k].String())
		}
		return StringValue(strings.Join(lines, "\n")), nil
	}
}

// fnConditional treats an unresolved test as false, so it may see absent
// arguments.
func fnConditional(args ...Value) (Value, error) {
	if len(args) < 2 {
		return Absent, fmt.Errorf("conditional: want test and result")
	}
	if args[0].Truthy() {
		return args[1], nil
	}
	if len(args) > 2 {
		return args[2], nil
	}
	return StringValue(""), nil
}
