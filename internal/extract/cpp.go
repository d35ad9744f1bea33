package extract

import (
	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func depsCpp(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "preproc_include") {
		pathNode := findChildByFieldName(n, "path")
		if pathNode == nil {
			continue
		}
		deps.Imports = append(deps.Imports, Import{Module: nodeText(pathNode, res.Source)})
	}

	for _, nodeType := range []string{"class_specifier", "struct_specifier"} {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			base := firstChildOfType(n, "base_class_clause")
			if nameNode == nil || base == nil {
				continue
			}
			child := nodeText(nameNode, res.Source)
			// One record per parent, ": public A, protected B" ->
			// multiple parents.
			for i := 0; i < int(base.NamedChildCount()); i++ {
				parent := base.NamedChild(i)
				if parent.Type() == "access_specifier" {
					continue
				}
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(parent, res.Source)})
			}
		}
	}

	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := cEnclosingFunctionName(call, res.Source)
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}
