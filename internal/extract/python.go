package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

var pythonNamedFuncKinds = map[string]string{
	"function_definition": "name",
}

func entitiesPython(res *parser.ParseResult, relFile string) []RawEntity {
	var out []RawEntity
	seen := make(map[string]bool)
	add := func(e RawEntity) {
		if seen[e.ID()] {
			return
		}
		seen[e.ID()] = true
		out = append(out, e)
	}

	// qualifier accumulates the full dotted name of every enclosing named
	// construct (class or function) for QualifiedName purposes. parentClass
	// tracks only the nearest enclosing class-like container, reset to ""
	// whenever the walk descends into a function body: a function nested
	// inside another function is never a Method, regardless of whether an
	// outer class exists: a Method's container is a class, never a
	// function.
	var walk func(n *sitter.Node, qualifier string, parentClass string)
	walk = func(n *sitter.Node, qualifier string, parentClass string) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "function_definition":
			nameNode := findChildByFieldName(n, "name")
			name := ""
			if nameNode != nil {
				name = nodeText(nameNode, res.Source)
				kind := KindFunction
				pClass := ""
				if parentClass != "" {
					kind = KindMethod
					pClass = parentClass
				}
				qname := joinQualified(qualifier, name)
				start, end := getLineRange(n)
				add(RawEntity{QualifiedName: qname, Name: name, Kind: kind, File: relFile, LineStart: start, LineEnd: end, ParentClass: pClass})
			}
			if body := findChildByFieldName(n, "body"); body != nil {
				walk(body, joinQualified(qualifier, name), "")
			}
			return
		case "class_definition":
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, res.Source)
			qname := joinQualified(qualifier, name)
			start, end := getLineRange(n)
			add(RawEntity{QualifiedName: qname, Name: name, Kind: KindClass, File: relFile, LineStart: start, LineEnd: end, ParentClass: parentClass})
			if body := findChildByFieldName(n, "body"); body != nil {
				walk(body, qname, qname)
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), qualifier, parentClass)
		}
	}
	walk(res.Root, "", "")
	return out
}

// joinQualified joins an outer qualified name and an inner name with '.',
// handling either side being empty.
func joinQualified(outer, inner string) string {
	if outer == "" {
		return inner
	}
	if inner == "" {
		return outer
	}
	return outer + "." + inner
}

func depsPython(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "import_statement") {
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch c.Type() {
			case "dotted_name":
				deps.Imports = append(deps.Imports, Import{Module: nodeText(c, res.Source)})
			case "aliased_import":
				name := findChildByFieldName(c, "name")
				alias := findChildByFieldName(c, "alias")
				if name == nil {
					continue
				}
				mod := nodeText(name, res.Source)
				var symbols []string
				if alias != nil {
					symbols = append(symbols, nodeText(alias, res.Source))
				}
				deps.Imports = append(deps.Imports, Import{Module: mod, Symbols: symbols})
			}
		}
	}

	for _, n := range descendantsOfType(res.Root, "import_from_statement") {
		moduleNode := findChildByFieldName(n, "module_name")
		if moduleNode == nil {
			continue
		}
		module := nodeText(moduleNode, res.Source)
		var symbols []string
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			switch c.Type() {
			case "dotted_name":
				if c == moduleNode {
					continue
				}
				symbols = append(symbols, nodeText(c, res.Source))
			case "aliased_import":
				if alias := findChildByFieldName(c, "alias"); alias != nil {
					symbols = append(symbols, nodeText(alias, res.Source))
				} else if name := findChildByFieldName(c, "name"); name != nil {
					symbols = append(symbols, nodeText(name, res.Source))
				}
			}
		}
		deps.Imports = append(deps.Imports, Import{Module: module, Symbols: symbols})
	}

	for _, n := range descendantsOfType(res.Root, "class_definition") {
		nameNode := findChildByFieldName(n, "name")
		if nameNode == nil {
			continue
		}
		child := nodeText(nameNode, res.Source)
		superclasses := findChildByFieldName(n, "superclasses")
		if superclasses == nil {
			continue
		}
		for i := 0; i < int(superclasses.NamedChildCount()); i++ {
			base := superclasses.NamedChild(i)
			if base.Type() == "keyword_argument" {
				continue // e.g. metaclass=...
			}
			deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(base, res.Source)})
		}
	}

	for _, call := range descendantsOfType(res.Root, "call") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := pythonCallerEntity(call, res.Source)
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}

// pythonCallerEntity walks up from a call node to the nearest enclosing
// function_definition, prefixing with the enclosing class name if any
// (self.baz() inside Animal.speak -> "Animal.speak").
func pythonCallerEntity(call *sitter.Node, source []byte) string {
	n := call.Parent()
	var funcName, className string
	for n != nil {
		if n.Type() == "function_definition" && funcName == "" {
			if name := findChildByFieldName(n, "name"); name != nil {
				funcName = nodeText(name, source)
			}
		}
		if n.Type() == "class_definition" && funcName != "" && className == "" {
			if name := findChildByFieldName(n, "name"); name != nil {
				className = nodeText(name, source)
			}
		}
		n = n.Parent()
	}
	if funcName == "" {
		return "<module>"
	}
	return joinQualified(className, funcName)
}
