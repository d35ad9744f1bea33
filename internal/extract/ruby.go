package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func entitiesRuby(res *parser.ParseResult, relFile string) []RawEntity {
	var out []RawEntity
	seen := make(map[string]bool)
	add := func(e RawEntity) {
		if seen[e.ID()] {
			return
		}
		seen[e.ID()] = true
		out = append(out, e)
	}

	var walk func(n *sitter.Node, container string)
	walk = func(n *sitter.Node, container string) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "class", "module":
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, res.Source)
			qname := joinQualified(container, name)
			start, end := getLineRange(n)
			kind := KindClass
			if n.Type() == "module" {
				kind = EntityKind("Module")
			}
			add(RawEntity{QualifiedName: qname, Name: name, Kind: kind, File: relFile, LineStart: start, LineEnd: end, ParentClass: container})
			if body := findChildByFieldName(n, "body"); body != nil {
				walk(body, name)
			}
			return
		case "method":
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, res.Source)
			start, end := getLineRange(n)
			if container == "" {
				add(RawEntity{QualifiedName: name, Name: name, Kind: KindFunction, File: relFile, LineStart: start, LineEnd: end})
			} else {
				add(RawEntity{QualifiedName: container + "." + name, Name: name, Kind: KindMethod, File: relFile, LineStart: start, LineEnd: end, ParentClass: container})
			}
			return
		case "singleton_method":
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, res.Source)
			start, end := getLineRange(n)
			add(RawEntity{QualifiedName: joinQualified(container, name), Name: name, Kind: KindMethod, File: relFile, LineStart: start, LineEnd: end, ParentClass: container})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), container)
		}
	}
	walk(res.Root, "")
	return out
}

func depsRuby(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, call := range descendantsOfType(res.Root, "call") {
		methodNode := findChildByFieldName(call, "method")
		if methodNode == nil {
			continue
		}
		method := nodeText(methodNode, res.Source)
		args := findChildByFieldName(call, "arguments")

		switch method {
		case "require", "require_relative":
			if args == nil || args.NamedChildCount() == 0 {
				continue
			}
			deps.Imports = append(deps.Imports, Import{Module: stripQuotes(nodeText(args.NamedChild(0), res.Source))})
			continue
		case "include", "extend":
			if args == nil || args.NamedChildCount() == 0 {
				continue
			}
			child := rubyEnclosingClassOrModule(call, res.Source)
			parent := nodeText(args.NamedChild(0), res.Source)
			if child != "" {
				deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: parent})
			}
			continue
		}

		caller := rubyCallerEntity(call, res.Source)
		deps.Calls = append(deps.Calls, Call{Callee: method, CallerEntity: caller})
	}

	for _, n := range descendantsOfType(res.Root, "class") {
		nameNode := findChildByFieldName(n, "name")
		superNode := findChildByFieldName(n, "superclass")
		if nameNode == nil || superNode == nil {
			continue
		}
		// Preserve raw tree-sitter text for the parent, including any
		// prefix: the superclass node's text, so "class Dog <
		// Animals::Mammal" records "< Animals::Mammal".
		deps.Inherits = append(deps.Inherits, Inherit{
			ChildClass:  nodeText(nameNode, res.Source),
			ParentClass: nodeText(superNode, res.Source),
		})
	}

	return deps
}

func rubyEnclosingClassOrModule(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		if n.Type() == "class" || n.Type() == "module" {
			if name := findChildByFieldName(n, "name"); name != nil {
				return nodeText(name, source)
			}
		}
		n = n.Parent()
	}
	return ""
}

func rubyCallerEntity(node *sitter.Node, source []byte) string {
	n := node.Parent()
	var method, container string
	for n != nil {
		if (n.Type() == "method" || n.Type() == "singleton_method") && method == "" {
			if name := findChildByFieldName(n, "name"); name != nil {
				method = nodeText(name, source)
			}
		}
		if (n.Type() == "class" || n.Type() == "module") && method != "" && container == "" {
			if name := findChildByFieldName(n, "name"); name != nil {
				container = nodeText(name, source)
			}
		}
		n = n.Parent()
	}
	if method == "" {
		return "<module>"
	}
	return joinQualified(container, method)
}
