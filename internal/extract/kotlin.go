package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func depsKotlin(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "import_header") {
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(nodeText(n, res.Source)), "import"))
		if idx := strings.LastIndex(text, "."); idx >= 0 {
			deps.Imports = append(deps.Imports, Import{Module: text[:idx], Symbols: []string{text[idx+1:]}})
		} else if text != "" {
			deps.Imports = append(deps.Imports, Import{Module: text})
		}
	}

	for _, nodeType := range []string{"class_declaration", "object_declaration"} {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				continue
			}
			child := nodeText(nameNode, res.Source)
			// "class Foo : Bar(), Baz" - each delegation_specifier is one
			// parent; the ":" list is treated uniformly.
			for _, spec := range childrenOfType(n, "delegation_specifier") {
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(spec, res.Source)})
			}
		}
	}

	kotlinNamedKinds := map[string]string{"function_declaration": "name"}
	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := enclosingNamedAncestor(call, res.Source, kotlinNamedKinds)
		// Default methods declared inside an interface body attribute to
		// "Interface.method".
		if class := kotlinEnclosingContainerName(call, res.Source); class != "" && caller != "" {
			caller = class + "." + caller
		}
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}

// kotlinEnclosingContainerName walks up from node to the nearest enclosing
// class/object/interface declaration and returns its name, or "" if node
// sits at file scope.
func kotlinEnclosingContainerName(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		switch n.Type() {
		case "class_declaration", "object_declaration":
			if nameNode := findChildByFieldName(n, "name"); nameNode != nil {
				return nodeText(nameNode, source)
			}
			return ""
		}
		n = n.Parent()
	}
	return ""
}
