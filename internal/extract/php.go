package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func depsPHP(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "namespace_use_declaration") {
		// Grouped "use Foo\{Bar, Baz};" is emitted as a single raw-text
		// record rather than expanded, same as a plain "use A\B\C;".
		text := strings.TrimSuffix(strings.TrimSpace(nodeText(n, res.Source)), ";")
		text = strings.TrimSpace(strings.TrimPrefix(text, "use"))
		if text != "" {
			deps.Imports = append(deps.Imports, Import{Module: text})
		}
	}

	for _, n := range descendantsOfType(res.Root, "class_declaration") {
		nameNode := findChildByFieldName(n, "name")
		if nameNode == nil {
			continue
		}
		child := nodeText(nameNode, res.Source)
		if base := findChildByFieldName(n, "base_clause"); base != nil {
			for i := 0; i < int(base.NamedChildCount()); i++ {
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(base.NamedChild(i), res.Source)})
			}
		}
		if impl := findChildByFieldName(n, "interfaces"); impl != nil {
			for i := 0; i < int(impl.NamedChildCount()); i++ {
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(impl.NamedChild(i), res.Source)})
			}
		}
	}

	phpNamedKinds := map[string]string{"function_definition": "name", "method_declaration": "name"}
	for _, call := range descendantsOfType(res.Root, "function_call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := phpEnclosingCallerEntity(call, res.Source, phpNamedKinds)
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}
	for _, call := range descendantsOfType(res.Root, "member_call_expression") {
		fn := findChildByFieldName(call, "name")
		if fn == nil {
			continue
		}
		callee := nodeText(fn, res.Source)
		caller := phpEnclosingCallerEntity(call, res.Source, phpNamedKinds)
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}

func phpEnclosingCallerEntity(node *sitter.Node, source []byte, namedKinds map[string]string) string {
	method := enclosingNamedAncestor(node, source, namedKinds)
	if method == "" {
		return ""
	}
	if class := phpEnclosingClassName(node, source); class != "" {
		return class + "." + method
	}
	return method
}

func phpEnclosingClassName(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		if n.Type() == "class_declaration" {
			if nameNode := findChildByFieldName(n, "name"); nameNode != nil {
				return nodeText(nameNode, source)
			}
			return ""
		}
		n = n.Parent()
	}
	return ""
}
