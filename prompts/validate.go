package prompts

import (
	"fmt"
	"strings"
)

// Validate checks a template for structural defects without evaluating
// anything: unterminated or stray braces, if blocks without endif, for blocks
// without endfor, and end tags with no open block. It returns one human-readable
// diagnostic per defect and an empty list for a well-formed template. It
// never panics and never renders.
func Validate(template string) []string {
	var diags []string

	scanned := scan(template)
	if scanned.unmatchedBrace >= 0 {
		diags = append(diags, fmt.Sprintf(
			"unmatched '{' at position %d: no closing '}' before end of template",
			scanned.unmatchedBrace))
	}

	type openBlock struct {
		isFor bool
		tag   string
	}
	var stack []openBlock

	for _, tok := range scanned.tokens {
		if tok.kind == tokenLiteral {
			// A '}' in literal text closes nothing.
			for i := 0; i < len(tok.text); i++ {
				if tok.text[i] == '}' {
					diags = append(diags, fmt.Sprintf(
						"unmatched '}' at position %d: no opening '{'", tok.start+i))
				}
			}
			continue
		}
		interior := strings.TrimSpace(tok.text)
		switch {
		case interior == "endif":
			if n := len(stack); n > 0 && !stack[n-1].isFor {
				stack = stack[:n-1]
			} else {
				diags = append(diags, fmt.Sprintf(
					"unmatched {endif} at position %d: no open {if} block", tok.start))
			}
		case interior == "endfor":
			if n := len(stack); n > 0 && stack[n-1].isFor {
				stack = stack[:n-1]
			} else {
				diags = append(diags, fmt.Sprintf(
					"unmatched {endfor} at position %d: no open {for} block", tok.start))
			}
		case strings.HasPrefix(interior, "if") && len(interior) > 2 && isSpace(interior[2]):
			stack = append(stack, openBlock{tag: tok.raw})
		case strings.HasPrefix(interior, "for") && len(interior) > 3 && isSpace(interior[3]):
			stack = append(stack, openBlock{isFor: true, tag: tok.raw})
		}
	}

	for _, open := range stack {
		if open.isFor {
			diags = append(diags, fmt.Sprintf("unmatched %s: missing {endfor}", open.tag))
		} else {
			diags = append(diags, fmt.Sprintf("unmatched %s: missing {endif}", open.tag))
		}
	}

	return diags
}
