package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func entitiesJava(res *parser.ParseResult, relFile string) []RawEntity {
	var out []RawEntity
	seen := make(map[string]bool)
	add := func(e RawEntity) {
		if seen[e.ID()] {
			return
		}
		seen[e.ID()] = true
		out = append(out, e)
	}

	var walk func(n *sitter.Node, class string)
	walk = func(n *sitter.Node, class string) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				return
			}
			name := nodeText(nameNode, res.Source)
			qname := joinQualified(class, name)
			start, end := getLineRange(n)
			add(RawEntity{QualifiedName: qname, Name: name, Kind: KindClass, File: relFile, LineStart: start, LineEnd: end, ParentClass: class})
			if body := findChildByFieldName(n, "body"); body != nil {
				walk(body, name)
			}
			return
		case "method_declaration", "constructor_declaration":
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil || class == "" {
				return
			}
			name := nodeText(nameNode, res.Source)
			start, end := getLineRange(n)
			add(RawEntity{QualifiedName: class + "." + name, Name: name, Kind: KindMethod, File: relFile, LineStart: start, LineEnd: end, ParentClass: class})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), class)
		}
	}
	walk(res.Root, "")
	return out
}

func depsJava(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "import_declaration") {
		text := nodeText(n, res.Source)
		text = strings.TrimSuffix(strings.TrimSpace(text), ";")
		text = strings.TrimPrefix(text, "import")
		text = strings.TrimSpace(text)
		text = strings.TrimPrefix(text, "static")
		text = strings.TrimSpace(text)
		idx := strings.LastIndex(text, ".")
		if idx < 0 {
			deps.Imports = append(deps.Imports, Import{Module: text})
			continue
		}
		module := text[:idx]
		symbol := text[idx+1:]
		deps.Imports = append(deps.Imports, Import{Module: module, Symbols: []string{symbol}})
	}

	for _, n := range descendantsOfType(res.Root, "class_declaration") {
		nameNode := findChildByFieldName(n, "name")
		if nameNode == nil {
			continue
		}
		child := nodeText(nameNode, res.Source)
		if super := findChildByFieldName(n, "superclass"); super != nil {
			deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: lastJavaType(nodeText(super, res.Source))})
		}
		if ifaces := findChildByFieldName(n, "interfaces"); ifaces != nil {
			for i := 0; i < int(ifaces.NamedChildCount()); i++ {
				list := ifaces.NamedChild(i)
				for j := 0; j < int(list.NamedChildCount()); j++ {
					deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(list.NamedChild(j), res.Source)})
				}
			}
		}
	}

	javaNamedKinds := map[string]string{
		"method_declaration":      "name",
		"constructor_declaration": "name",
	}
	for _, call := range descendantsOfType(res.Root, "method_invocation") {
		nameNode := findChildByFieldName(call, "name")
		if nameNode == nil {
			continue
		}
		caller := enclosingNamedAncestor(call, res.Source, javaNamedKinds)
		if class := javaEnclosingClass(call, res.Source); class != "" && caller != "" {
			caller = class + "." + caller
		}
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: nodeText(nameNode, res.Source), CallerEntity: caller})
	}

	return deps
}

func lastJavaType(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

func javaEnclosingClass(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		switch n.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			if name := findChildByFieldName(n, "name"); name != nil {
				return nodeText(name, source)
			}
		}
		n = n.Parent()
	}
	return ""
}
