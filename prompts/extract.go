package prompts

import "sort"

// ExtractVariables collects the head identifier of every variable reference
// in the template: plain references, function arguments, if tests, and for
// sources, reaching into arbitrarily nested block bodies. The result is
// sorted and deduplicated. The pass is purely syntactic; no Context is
// needed and nothing is evaluated.
func ExtractVariables(template string) []string {
	seen := make(map[string]struct{})
	collectVariables(parseTemplate(template), seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectVariables(nodes []node, seen map[string]struct{}) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *refNode:
			seen[n.path[0]] = struct{}{}
		case *callNode:
			for _, a := range n.args {
				collectExprVariable(a, seen)
			}
		case *ifNode:
			collectExprVariable(n.test.left, seen)
			collectExprVariable(n.test.right, seen)
			collectVariables(n.body, seen)
		case *forNode:
			collectExprVariable(n.source, seen)
			collectVariables(n.body, seen)
		}
	}
}

func collectExprVariable(e expr, seen map[string]struct{}) {
	if e.kind == exprRef && len(e.path) > 0 {
		seen[e.path[0]] = struct{}{}
	}
}
