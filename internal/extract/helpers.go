package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// findChildByFieldName returns the first direct child of node bound to
// fieldName, or nil.
func findChildByFieldName(node *sitter.Node, fieldName string) *sitter.Node {
	if node == nil {
		return nil
	}
	return node.ChildByFieldName(fieldName)
}

// childrenOfType returns all direct children of node whose Type() matches
// any of types.
func childrenOfType(node *sitter.Node, types ...string) []*sitter.Node {
	if node == nil {
		return nil
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c != nil && want[c.Type()] {
			out = append(out, c)
		}
	}
	return out
}

// descendantsOfType returns every node of the given type anywhere in the
// subtree rooted at node, depth-first.
func descendantsOfType(node *sitter.Node, nodeType string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == nodeType {
			out = append(out, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return out
}

// getLineRange returns 1-based inclusive start/end lines for node.
func getLineRange(node *sitter.Node) (int, int) {
	if node == nil {
		return 0, 0
	}
	return int(node.StartPoint().Row) + 1, int(node.EndPoint().Row) + 1
}

// nodeText returns the exact source slice for node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// stripQuotes trims a single layer of matching quote characters, used for
// import module literals across every language's extractor.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// lastSegment returns the rightmost dotted/scoped segment of a qualified
// expression text, e.g. "fmt.Println" -> "Println", "std::fs::read" ->
// "read", "self.baz" -> "baz". Used uniformly to compute Call.Callee.
func lastSegment(expr string) string {
	expr = strings.TrimSpace(expr)
	best, bestLen := -1, 0
	for _, sep := range []string{"::", ".", "->"} {
		if idx := strings.LastIndex(expr, sep); idx > best {
			best, bestLen = idx, len(sep)
		}
	}
	if best >= 0 {
		return expr[best+bestLen:]
	}
	return expr
}

// enclosingNamedAncestor walks up from node to the nearest ancestor whose
// type is in namedKinds, returning its name (via nameField) or "" if none
// is found before the root. This implements the lambda parent policy
// (types.go: LambdaParentPolicy) uniformly: calls inside anonymous
// functions attribute to the nearest enclosing NAMED function/method.
func enclosingNamedAncestor(node *sitter.Node, source []byte, namedKinds map[string]string) string {
	n := node.Parent()
	for n != nil {
		if nameField, ok := namedKinds[n.Type()]; ok {
			nameNode := findChildByFieldName(n, nameField)
			if nameNode != nil {
				return nodeText(nameNode, source)
			}
		}
		n = n.Parent()
	}
	return ""
}
