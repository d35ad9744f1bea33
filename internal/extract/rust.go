package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func entitiesRust(res *parser.ParseResult, relFile string) []RawEntity {
	var out []RawEntity
	seen := make(map[string]bool)
	add := func(e RawEntity) {
		if seen[e.ID()] {
			return
		}
		seen[e.ID()] = true
		out = append(out, e)
	}

	for _, nodeType := range []string{"struct_item", "enum_item", "trait_item"} {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				continue
			}
			name := nodeText(nameNode, res.Source)
			start, end := getLineRange(n)
			add(RawEntity{QualifiedName: name, Name: name, Kind: KindClass, File: relFile, LineStart: start, LineEnd: end})
		}
	}

	// Free functions (not inside an impl block).
	for _, n := range descendantsOfType(res.Root, "function_item") {
		if rustEnclosingImplType(n, res.Source) != "" {
			continue
		}
		nameNode := findChildByFieldName(n, "name")
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, res.Source)
		start, end := getLineRange(n)
		add(RawEntity{QualifiedName: name, Name: name, Kind: KindFunction, File: relFile, LineStart: start, LineEnd: end})
	}

	// Methods: function_item nested inside an impl_item's body.
	for _, impl := range descendantsOfType(res.Root, "impl_item") {
		typeNode := findChildByFieldName(impl, "type")
		if typeNode == nil {
			continue
		}
		typeName := nodeText(typeNode, res.Source)
		body := findChildByFieldName(impl, "body")
		for _, fn := range childrenOfType(body, "function_item") {
			nameNode := findChildByFieldName(fn, "name")
			if nameNode == nil {
				continue
			}
			name := nodeText(nameNode, res.Source)
			qname := typeName + "." + name
			start, end := getLineRange(fn)
			add(RawEntity{QualifiedName: qname, Name: name, Kind: KindMethod, File: relFile, LineStart: start, LineEnd: end, ParentClass: typeName})
		}
	}

	return out
}

// rustEnclosingImplType returns the Self type name of the nearest
// enclosing impl_item, or "" if node is not nested inside one.
func rustEnclosingImplType(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		if n.Type() == "impl_item" {
			if t := findChildByFieldName(n, "type"); t != nil {
				return nodeText(t, source)
			}
		}
		n = n.Parent()
	}
	return ""
}

var rustNamedFuncKinds = map[string]string{
	"function_item": "name",
}

func depsRust(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "use_declaration") {
		arg := findChildByFieldName(n, "argument")
		if arg == nil {
			continue
		}
		rustWalkUseTree(arg, "", res.Source, &deps)
	}

	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := enclosingNamedAncestor(call, res.Source, rustNamedFuncKinds)
		if caller == "" {
			caller = "<module>"
		} else if impl := rustEnclosingImplType(call, res.Source); impl != "" {
			caller = impl + "." + caller
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	for _, impl := range descendantsOfType(res.Root, "impl_item") {
		typeNode := findChildByFieldName(impl, "type")
		traitNode := findChildByFieldName(impl, "trait")
		if typeNode == nil || traitNode == nil {
			continue
		}
		deps.Inherits = append(deps.Inherits, Inherit{
			ChildClass:  nodeText(typeNode, res.Source),
			ParentClass: nodeText(traitNode, res.Source),
		})
	}

	return deps
}

// rustWalkUseTree recursively flattens a use-tree (scoped_identifier,
// scoped_use_list, use_list, use_as_clause, identifier, self, use_wildcard)
// into Import records. prefix accumulates the "::"-joined path seen so
// far. Grouped imports (`use a::b::{X, Y}`) collapse into a single Import
// with Module="a::b" and Symbols=["X","Y"].
func rustWalkUseTree(n *sitter.Node, prefix string, source []byte, deps *FileDeps) {
	switch n.Type() {
	case "scoped_identifier":
		path := findChildByFieldName(n, "path")
		name := findChildByFieldName(n, "name")
		if path == nil || name == nil {
			deps.Imports = append(deps.Imports, Import{Module: rustJoin(prefix, nodeText(n, source))})
			return
		}
		deps.Imports = append(deps.Imports, Import{Module: rustJoin(prefix, nodeText(path, source)), Symbols: []string{nodeText(name, source)}})
	case "scoped_use_list":
		path := findChildByFieldName(n, "path")
		list := findChildByFieldName(n, "list")
		base := prefix
		if path != nil {
			base = rustJoin(prefix, nodeText(path, source))
		}
		if list == nil {
			return
		}
		var symbols []string
		for i := 0; i < int(list.NamedChildCount()); i++ {
			item := list.NamedChild(i)
			if item.Type() == "identifier" || item.Type() == "self" {
				symbols = append(symbols, nodeText(item, source))
				continue
			}
			// Nested group (use a::{b::{C,D}, E}) - recurse with this base.
			rustWalkUseTree(item, base, source, deps)
		}
		if len(symbols) > 0 {
			deps.Imports = append(deps.Imports, Import{Module: base, Symbols: symbols})
		}
	case "use_as_clause":
		path := findChildByFieldName(n, "path")
		alias := findChildByFieldName(n, "alias")
		if path == nil {
			return
		}
		var symbols []string
		if alias != nil {
			symbols = append(symbols, nodeText(alias, source))
		}
		deps.Imports = append(deps.Imports, Import{Module: rustJoin(prefix, nodeText(path, source)), Symbols: symbols})
	case "use_wildcard":
		path := n.NamedChild(0)
		base := prefix
		if path != nil {
			base = rustJoin(prefix, nodeText(path, source))
		}
		deps.Imports = append(deps.Imports, Import{Module: base, Symbols: []string{"*"}})
	case "identifier", "self":
		deps.Imports = append(deps.Imports, Import{Module: rustJoin(prefix, nodeText(n, source))})
	default:
		deps.Imports = append(deps.Imports, Import{Module: rustJoin(prefix, nodeText(n, source))})
	}
}

func rustJoin(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "::" + seg
}
