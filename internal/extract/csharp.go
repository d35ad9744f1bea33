package extract

import (
	"strings"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func depsCSharp(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "using_directive") {
		text := strings.TrimSuffix(strings.TrimSpace(nodeText(n, res.Source)), ";")
		text = strings.TrimPrefix(text, "using")
		text = strings.TrimSpace(text)
		text = strings.TrimPrefix(text, "global")
		text = strings.TrimSpace(text)
		text = strings.TrimPrefix(text, "static")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		deps.Imports = append(deps.Imports, Import{Module: text})
	}

	for _, nodeType := range []string{"class_declaration", "struct_declaration", "record_declaration", "interface_declaration"} {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			bases := findChildByFieldName(n, "bases")
			if nameNode == nil || bases == nil {
				continue
			}
			child := nodeText(nameNode, res.Source)
			// "X : A, B, C" - first element is the base class in C#
			// convention, rest are interfaces; all are treated uniformly
			// as parents.
			for i := 0; i < int(bases.NamedChildCount()); i++ {
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(bases.NamedChild(i), res.Source)})
			}
		}
	}

	csharpNamedKinds := map[string]string{"method_declaration": "name", "constructor_declaration": "name"}
	for _, call := range descendantsOfType(res.Root, "invocation_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := enclosingNamedAncestor(call, res.Source, csharpNamedKinds)
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}
