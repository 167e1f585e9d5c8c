package prompts

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenSpan
)

// token is one scanned unit of a template: either a run of literal text or a
// brace-delimited span. For spans, text is the interior and raw the full
// source including braces, so unresolved spans can be echoed verbatim.
type token struct {
	kind  tokenKind
	text  string
	raw   string
	start int
}

// scanResult carries the token sequence plus the position of the first
// opening brace with no matching close, if any.
type scanResult struct {
	tokens         []token
	unmatchedBrace int // byte offset, -1 when all braces match
}

// scan splits the template into literal runs and {...} spans. Brace matching
// counts nesting from the first '{' of a span; a '{' with no matching '}'
// turns the remainder of the input into literal text.
func scan(input string) scanResult {
	result := scanResult{unmatchedBrace: -1}
	litStart := 0
	i := 0
	for i < len(input) {
		if input[i] != '{' {
			i++
			continue
		}
		end, ok := matchBrace(input, i)
		if !ok {
			// Text before the defect is still tokenized; the caller decides
			// what to do with the remainder.
			result.unmatchedBrace = i
			if i > litStart {
				result.tokens = append(result.tokens, token{
					kind:  tokenLiteral,
					text:  input[litStart:i],
					start: litStart,
				})
			}
			litStart = len(input)
			break
		}
		if i > litStart {
			result.tokens = append(result.tokens, token{
				kind:  tokenLiteral,
				text:  input[litStart:i],
				start: litStart,
			})
		}
		result.tokens = append(result.tokens, token{
			kind:  tokenSpan,
			text:  input[i+1 : end],
			raw:   input[i : end+1],
			start: i,
		})
		i = end + 1
		litStart = i
	}
	if litStart < len(input) {
		result.tokens = append(result.tokens, token{
			kind:  tokenLiteral,
			text:  input[litStart:],
			start: litStart,
		})
	}
	return result
}

// matchBrace finds the '}' closing the '{' at open, tracking nested braces.
func matchBrace(input string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(input); i++ {
		switch input[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
