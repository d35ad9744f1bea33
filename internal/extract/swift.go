package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func depsSwift(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "import_declaration") {
		text := strings.TrimSuffix(strings.TrimSpace(nodeText(n, res.Source)), ";")
		text = strings.TrimSpace(strings.TrimPrefix(text, "import"))
		if text != "" {
			deps.Imports = append(deps.Imports, Import{Module: text})
		}
	}

	for _, nodeType := range []string{"class_declaration", "protocol_declaration"} {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				continue
			}
			child := nodeText(nameNode, res.Source)
			// "class Foo: Bar, Bazable" - every element of the ":" list is
			// treated uniformly as a parent.
			if inherits := findChildByFieldName(n, "inheritance_specifier"); inherits != nil {
				for i := 0; i < int(inherits.NamedChildCount()); i++ {
					deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(inherits.NamedChild(i), res.Source)})
				}
			}
		}
	}

	swiftNamedKinds := map[string]string{"function_declaration": "name"}
	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := enclosingNamedAncestor(call, res.Source, swiftNamedKinds)
		// Methods inside an extension attribute to the extended type, not
		// to a synthetic extension entity.
		if class := swiftEnclosingTypeName(call, res.Source); class != "" && caller != "" {
			caller = class + "." + caller
		}
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}

func swiftEnclosingTypeName(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		switch n.Type() {
		case "class_declaration", "protocol_declaration", "extension_declaration":
			if nameNode := findChildByFieldName(n, "name"); nameNode != nil {
				return nodeText(nameNode, source)
			}
			return ""
		}
		n = n.Parent()
	}
	return ""
}
