package prompts

import (
	"regexp"
	"strconv"
	"strings"
)

// Template grammar, inside {...} spans:
//
//	{name} {user.name}          variable reference, dotted path
//	{fn(arg, "lit", 42, true)}  function call
//	{if expr} ... {endif}       conditional block
//	{for name in expr} ... {endfor}  loop block
//
// Anything else inside braces is not part of the grammar and renders as
// literal text, braces included.

type exprKind int

const (
	exprInvalid exprKind = iota
	exprRef
	exprString
	exprNumber
	exprBool
)

type expr struct {
	kind    exprKind
	path    []string
	str     string
	num     float64
	boolean bool
}

// condition is the test of an if block: either a bare expression checked for
// truthiness, or a comparison of two expressions.
type condition struct {
	left  expr
	op    string // empty for a bare truthiness test
	right expr
}

type node interface{ templateNode() }

type literalNode struct{ text string }

type refNode struct {
	path []string
	raw  string
}

type callNode struct {
	name string
	args []expr
	raw  string
}

type ifNode struct {
	test condition
	body []node
}

type forNode struct {
	binding string
	source  expr
	body    []node
}

func (*literalNode) templateNode() {}
func (*refNode) templateNode()     {}
func (*callNode) templateNode()    {}
func (*ifNode) templateNode()      {}
func (*forNode) templateNode()     {}

var (
	identPathPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)
	funcCallPattern  = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)\((.*)\)$`)
	forTagPattern    = regexp.MustCompile(`^for\s+([a-zA-Z_][a-zA-Z0-9_]*)\s+in\s+(.+)$`)
)

// parseTemplate builds the node tree from a template string. It never fails:
// unterminated braces become literal text, stray end tags are echoed, and a
// dangling block consumes the rest of the input as its body.
func parseTemplate(input string) []node {
	scanned := scan(input)
	tokens := scanned.tokens
	if scanned.unmatchedBrace >= 0 {
		tokens = append(tokens, token{
			kind:  tokenLiteral,
			text:  input[scanned.unmatchedBrace:],
			start: scanned.unmatchedBrace,
		})
	}
	return parseNodes(tokens)
}

func parseNodes(tokens []token) []node {
	root := make([]node, 0, len(tokens))
	current := &root

	type frame struct {
		isFor bool
		body  *[]node
		prev  *[]node
	}
	var stack []frame

	for _, tok := range tokens {
		if tok.kind == tokenLiteral {
			*current = append(*current, &literalNode{text: tok.text})
			continue
		}

		interior := strings.TrimSpace(tok.text)
		switch {
		case interior == "endif":
			if n := len(stack); n > 0 && !stack[n-1].isFor {
				current = stack[n-1].prev
				stack = stack[:n-1]
			} else {
				*current = append(*current, &literalNode{text: tok.raw})
			}
		case interior == "endfor":
			if n := len(stack); n > 0 && stack[n-1].isFor {
				current = stack[n-1].prev
				stack = stack[:n-1]
			} else {
				*current = append(*current, &literalNode{text: tok.raw})
			}
		case strings.HasPrefix(interior, "if") && len(interior) > 2 && isSpace(interior[2]):
			n := &ifNode{test: parseCondition(strings.TrimSpace(interior[2:]))}
			*current = append(*current, n)
			stack = append(stack, frame{body: &n.body, prev: current})
			current = &n.body
		case strings.HasPrefix(interior, "for") && len(interior) > 3 && isSpace(interior[3]):
			m := forTagPattern.FindStringSubmatch(interior)
			if m == nil {
				*current = append(*current, &literalNode{text: tok.raw})
				continue
			}
			source, ok := parseExpr(m[2])
			if !ok {
				source = expr{kind: exprInvalid}
			}
			n := &forNode{binding: m[1], source: source}
			*current = append(*current, n)
			stack = append(stack, frame{isFor: true, body: &n.body, prev: current})
			current = &n.body
		default:
			*current = append(*current, parseSpan(interior, tok.raw))
		}
	}

	return root
}

// parseSpan classifies a non-block span as a reference, a call, or literal
// text when it matches neither.
func parseSpan(interior, raw string) node {
	if identPathPattern.MatchString(interior) {
		return &refNode{path: strings.Split(interior, "."), raw: raw}
	}
	if m := funcCallPattern.FindStringSubmatch(interior); m != nil {
		return &callNode{name: m[1], args: parseArgs(m[2]), raw: raw}
	}
	return &literalNode{text: raw}
}

// parseArgs splits a comma-separated argument list, honoring quotes, and
// parses each piece as an expression. Unparseable arguments are kept as
// invalid expressions so the call site fails closed at render time.
func parseArgs(argsStr string) []expr {
	if strings.TrimSpace(argsStr) == "" {
		return nil
	}
	parts := splitArgs(argsStr)
	args := make([]expr, 0, len(parts))
	for _, part := range parts {
		e, ok := parseExpr(part)
		if !ok {
			e = expr{kind: exprInvalid}
		}
		args = append(args, e)
	}
	return args
}

// splitArgs splits on commas that are outside quoted strings.
func splitArgs(s string) []string {
	var parts []string
	var current strings.Builder
	inQuote := false
	quoteChar := byte(0)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case !inQuote && (ch == '"' || ch == '\''):
			inQuote = true
			quoteChar = ch
			current.WriteByte(ch)
		case inQuote && ch == quoteChar:
			inQuote = false
			current.WriteByte(ch)
		case !inQuote && ch == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	parts = append(parts, current.String())
	return parts
}

// parseExpr parses one argument expression: a quoted string, a numeral, a
// boolean, or a dotted variable reference.
func parseExpr(s string) (expr, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return expr{}, false
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return expr{kind: exprString, str: s[1 : len(s)-1]}, true
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return expr{kind: exprNumber, num: n}, true
	}
	switch s {
	case "true":
		return expr{kind: exprBool, boolean: true}, true
	case "false":
		return expr{kind: exprBool, boolean: false}, true
	}
	if identPathPattern.MatchString(s) {
		return expr{kind: exprRef, path: strings.Split(s, ".")}, true
	}
	return expr{}, false
}

// comparison operators, two-character forms first so "==" is not read as "=".
var conditionOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// parseCondition reads an if test: either "expr" or "expr op expr".
func parseCondition(s string) condition {
	for _, op := range conditionOps {
		if idx := indexOutsideQuotes(s, op); idx >= 0 {
			left, lok := parseExpr(s[:idx])
			right, rok := parseExpr(s[idx+len(op):])
			if !lok {
				left = expr{kind: exprInvalid}
			}
			if !rok {
				right = expr{kind: exprInvalid}
			}
			return condition{left: left, op: op, right: right}
		}
	}
	e, ok := parseExpr(s)
	if !ok {
		e = expr{kind: exprInvalid}
	}
	return condition{left: e}
}

func indexOutsideQuotes(s, sub string) int {
	inQuote := false
	quoteChar := byte(0)
	for i := 0; i+len(sub) <= len(s); i++ {
		ch := s[i]
		if inQuote {
			if ch == quoteChar {
				inQuote = false
			}
			continue
		}
		if ch == '"' || ch == '\'' {
			inQuote = true
			quoteChar = ch
			continue
		}
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
