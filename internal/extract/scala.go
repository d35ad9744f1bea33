package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

var scalaDefKinds = map[string]EntityKind{
	"class_definition": KindClass,
	"trait_definition": KindClass,
	"object_definition": KindClass,
}

func entitiesScala(res *parser.ParseResult, relFile string) []RawEntity {
	var out []RawEntity
	seen := make(map[string]bool)
	add := func(e RawEntity) {
		if seen[e.ID()] {
			return
		}
		seen[e.ID()] = true
		out = append(out, e)
	}

	// qualifier accumulates the dotted name of every enclosing named
	// construct for QualifiedName purposes. parentClass tracks only the
	// nearest enclosing class/trait/object, reset to "" when the walk
	// descends into a function body: a function nested inside another
	// function is never a Method, regardless of an outer class/trait/object:
	// a Method's container is a class-like construct, never a function.
	var walk func(n *sitter.Node, qualifier string, parentClass string)
	walk = func(n *sitter.Node, qualifier string, parentClass string) {
		if n == nil {
			return
		}
		if kind, ok := scalaDefKinds[n.Type()]; ok {
			nameNode := findChildByFieldName(n, "name")
			if nameNode != nil {
				name := nodeText(nameNode, res.Source)
				qname := joinQualified(qualifier, name)
				start, end := getLineRange(n)
				add(RawEntity{QualifiedName: qname, Name: name, Kind: kind, File: relFile, LineStart: start, LineEnd: end, ParentClass: parentClass})
				if body := findChildByFieldName(n, "body"); body != nil {
					walk(body, qname, qname)
					return
				}
			}
		}
		if n.Type() == "function_definition" {
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
			// Recurse with parentClass cleared: anything defined inside this
			// function's body is no longer directly inside the enclosing
			// class/trait/object, so nested defs stay Kind=Function.
			for i := 0; i < int(n.ChildCount()); i++ {
				walk(n.Child(i), joinQualified(qualifier, name), "")
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

func depsScala(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "import_declaration") {
		deps.Imports = append(deps.Imports, Import{Module: nodeText(n, res.Source)})
	}

	for nodeType := range scalaDefKinds {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			extend := findChildByFieldName(n, "extend")
			if nameNode == nil || extend == nil {
				continue
			}
			child := nodeText(nameNode, res.Source)
			// One Inherit record per parent in the "extends X with Y with
			// Z" chain.
			for i := 0; i < int(extend.NamedChildCount()); i++ {
				parent := extend.NamedChild(i)
				switch parent.Type() {
				case "template_body", "block":
					continue
				}
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(parent, res.Source)})
			}
		}
	}

	scalaNamedKinds := map[string]string{"function_definition": "name"}
	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := enclosingNamedAncestor(call, res.Source, scalaNamedKinds)
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	return deps
}
