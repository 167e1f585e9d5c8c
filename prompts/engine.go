package prompts

import (
	"strings"
	"sync"

	"github.com/voidfemme/chatbot-library/config"
	"github.com/voidfemme/chatbot-library/utils"
)

// Engine renders templates against a Context. Rendering is total: every
// input string produces an output string, and any reference, call, or block
// that cannot be resolved leaves its original source text in place so the
// reader can see exactly which placeholders did not resolve.
type Engine struct {
	registry     *FunctionRegistry
	logger       utils.Logger
	cacheEnabled bool

	mu    sync.RWMutex
	cache map[string][]node
}

type EngineOption func(*Engine)

// WithLogger sets the logger used by the engine.
func WithLogger(logger utils.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the engine's function registry. The registry may be
// shared between engines; complete all registration before rendering
// concurrently.
func WithRegistry(registry *FunctionRegistry) EngineOption {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithTemplateCache enables or disables caching of parsed templates, keyed
// by the raw template string.
func WithTemplateCache(enable bool) EngineOption {
	return func(e *Engine) {
		e.cacheEnabled = enable
	}
}

// NewEngine creates an engine with the built-in functions registered.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		registry:     NewFunctionRegistry(),
		logger:       utils.NewLogger(utils.LogLevelWarn),
		cacheEnabled: true,
		cache:        make(map[string][]node),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineFromConfig creates an engine honoring the library configuration.
func NewEngineFromConfig(cfg *config.Config, opts ...EngineOption) *Engine {
	base := []EngineOption{
		WithLogger(utils.NewLogger(cfg.LogLevel)),
		WithTemplateCache(cfg.EnableTemplateCache),
	}
	return NewEngine(append(base, opts...)...)
}

// RegisterFunction adds a custom template function. Registration is not
// synchronized with in-flight renders; register everything up front.
func (e *Engine) RegisterFunction(name string, fn TemplateFunc) {
	e.registry.Register(name, fn)
	e.logger.Debug("registered template function", "name", name)
}

// Registry returns the engine's function registry.
func (e *Engine) Registry() *FunctionRegistry {
	return e.registry
}

// Render renders a template string against the context. A nil context
// renders with no bindings, leaving every reference as a placeholder.
func (e *Engine) Render(template string, ctx *Context) string {
	if ctx == nil {
		ctx = NewContext()
	}
	var sb strings.Builder
	sb.Grow(len(template))
	e.renderNodes(e.parsed(template), ctx, &sb)
	e.logger.Debug("rendered template", "template_len", len(template), "output_len", sb.Len())
	return sb.String()
}

// RenderTemplate renders a stored template record.
func (e *Engine) RenderTemplate(t *PromptTemplate, ctx *Context) string {
	return e.Render(t.Template, ctx)
}

// RenderThinkingPrompt prepends the thinking-mode instructions produced by
// the ThinkingTemplate to the rendered base template. With an empty base the
// instructions stand alone.
func (e *Engine) RenderThinkingPrompt(t *ThinkingTemplate, base string, ctx *Context) string {
	combined := t.ToThinkingPrompt()
	if base != "" {
		combined += "\n\n" + base
	}
	if ctx == nil {
		return combined
	}
	return e.Render(combined, ctx)
}

// Validate reports structural defects in the template. See Validate.
func (e *Engine) Validate(template string) []string {
	return Validate(template)
}

// Variables lists the variable names the template references. See
// ExtractVariables.
func (e *Engine) Variables(template string) []string {
	return ExtractVariables(template)
}

func (e *Engine) parsed(template string) []node {
	if !e.cacheEnabled {
		return parseTemplate(template)
	}
	e.mu.RLock()
	nodes, ok := e.cache[template]
	e.mu.RUnlock()
	if ok {
		return nodes
	}
	nodes = parseTemplate(template)
	e.mu.Lock()
	e.cache[template] = nodes
	e.mu.Unlock()
	return nodes
}

func (e *Engine) renderNodes(nodes []node, ctx *Context, sb *strings.Builder) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *literalNode:
			sb.WriteString(n.text)
		case *refNode:
			v := ctx.resolve(n.path)
			if v.IsAbsent() {
				sb.WriteString(n.raw)
			} else {
				sb.WriteString(v.String())
			}
		case *callNode:
			sb.WriteString(e.renderCall(n, ctx))
		case *ifNode:
			if evalCondition(n.test, ctx) {
				e.renderNodes(n.body, ctx, sb)
			}
		case *forNode:
			source := evalExpr(n.source, ctx)
			for _, item := range source.List() {
				child := ctx.withBinding(n.binding, item)
				e.renderNodes(n.body, child, sb)
			}
		}
	}
}

// renderCall invokes a registered function, falling back to the original
// call-site text when the function is unknown, an argument is unresolved, or
// the call itself fails.
func (e *Engine) renderCall(n *callNode, ctx *Context) string {
	entry, ok := e.registry.lookup(n.name)
	if !ok {
		return n.raw
	}
	args := make([]Value, 0, len(n.args))
	for _, a := range n.args {
		v := evalExpr(a, ctx)
		if v.IsAbsent() && !entry.acceptsAbsent {
			return n.raw
		}
		args = append(args, v)
	}
	result, err := e.invoke(n.name, entry.fn, args)
	if err != nil {
		e.logger.Warn("template function failed", "name", n.name, "error", err)
		return n.raw
	}
	return result.String()
}

// invoke shields the renderer from panicking functions; a panic is treated
// the same as a returned error.
func (e *Engine) invoke(name string, fn TemplateFunc, args []Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("template function panicked", "name", name, "panic", r)
			result = Absent
			err = errFunctionPanic
		}
	}()
	return fn(args...)
}

func evalExpr(ex expr, ctx *Context) Value {
	switch ex.kind {
	case exprRef:
		return ctx.resolve(ex.path)
	case exprString:
		return StringValue(ex.str)
	case exprNumber:
		return NumberValue(ex.num)
	case exprBool:
		return BoolValue(ex.boolean)
	default:
		return Absent
	}
}

// evalCondition evaluates an if test. Unresolved operands make the condition
// false rather than failing the render.
func evalCondition(c condition, ctx *Context) bool {
	left := evalExpr(c.left, ctx)
	if c.op == "" {
		return left.Truthy()
	}
	right := evalExpr(c.right, ctx)
	if left.IsAbsent() || right.IsAbsent() {
		return false
	}
	return compareValues(left, right, c.op)
}

func compareValues(left, right Value, op string) bool {
	switch op {
	case "==":
		return valuesEqual(left, right)
	case "!=":
		return !valuesEqual(left, right)
	}
	// Ordering applies to numbers and to strings; anything else is false.
	if left.kind == KindNumber && right.kind == KindNumber {
		switch op {
		case ">":
			return left.num > right.num
		case "<":
			return left.num < right.num
		case ">=":
			return left.num >= right.num
		case "<=":
			return left.num <= right.num
		}
	}
	if left.kind == KindString && right.kind == KindString {
		switch op {
		case ">":
			return left.str > right.str
		case "<":
			return left.str < right.str
		case ">=":
			return left.str >= right.str
		case "<=":
			return left.str <= right.str
		}
	}
	return false
}

func valuesEqual(left, right Value) bool {
	if left.kind != right.kind {
		return false
	}
	switch left.kind {
	case KindString:
		return left.str == right.str
	case KindNumber:
		return left.num == right.num
	case KindBool:
		return left.boolean == right.boolean
	default:
		return left.String() == right.String()
	}
}
