package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

var tsNamedFuncKinds = map[string]string{
	"function_declaration": "name",
	"method_definition":    "name",
}

func entitiesTypeScript(res *parser.ParseResult, relFile string) []RawEntity {
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
		case "function_declaration", "generator_function_declaration":
			nameNode := findChildByFieldName(n, "name")
			if nameNode != nil {
				name := nodeText(nameNode, res.Source)
				start, end := getLineRange(n)
				add(RawEntity{QualifiedName: joinQualified(class, name), Name: name, Kind: KindFunction, File: relFile, LineStart: start, LineEnd: end, ParentClass: class})
			}
		case "class_declaration":
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
		case "method_definition":
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

func depsTypeScript(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "import_statement") {
		tsImport(n, res.Source, &deps)
	}

	for _, n := range descendantsOfType(res.Root, "export_statement") {
		tsExport(n, res.Source, &deps)
	}

	for _, n := range descendantsOfType(res.Root, "class_declaration") {
		nameNode := findChildByFieldName(n, "name")
		heritage := findChildByFieldName(n, "heritage") // class_heritage wrapper, if present
		if heritage == nil {
			heritage = firstChildOfType(n, "class_heritage")
		}
		if nameNode == nil || heritage == nil {
			continue
		}
		child := nodeText(nameNode, res.Source)
		for i := 0; i < int(heritage.ChildCount()); i++ {
			clause := heritage.Child(i)
			switch clause.Type() {
			case "extends_clause", "implements_clause":
				for j := 0; j < int(clause.NamedChildCount()); j++ {
					parent := clause.NamedChild(j)
					deps.Inherits = append(deps.Inherits, Inherit{ChildClass: child, ParentClass: nodeText(parent, res.Source)})
				}
			}
		}
	}

	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := tsCallerEntity(call, res.Source)
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	// JSX element usage counts as a call from the enclosing function:
	// <Button/> in App -> {Callee: "Button", CallerEntity: "App"}.
	for _, nodeType := range []string{"jsx_self_closing_element", "jsx_opening_element"} {
		for _, n := range descendantsOfType(res.Root, nodeType) {
			nameNode := findChildByFieldName(n, "name")
			if nameNode == nil {
				continue
			}
			tag := nodeText(nameNode, res.Source)
			if tag == "" || tag[0] < 'A' || tag[0] > 'Z' {
				continue // lowercase tags are HTML intrinsics, not components
			}
			caller := tsCallerEntity(n, res.Source)
			deps.Calls = append(deps.Calls, Call{Callee: tag, CallerEntity: caller})
		}
	}

	return deps
}

func firstChildOfType(n *sitter.Node, t string) *sitter.Node {
	cs := childrenOfType(n, t)
	if len(cs) == 0 {
		return nil
	}
	return cs[0]
}

func tsCallerEntity(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		switch n.Type() {
		case "function_declaration", "generator_function_declaration":
			if name := findChildByFieldName(n, "name"); name != nil {
				return nodeText(name, source)
			}
			return "<anonymous>"
		case "method_definition":
			name := ""
			if nn := findChildByFieldName(n, "name"); nn != nil {
				name = nodeText(nn, source)
			}
			class := tsEnclosingClassName(n, source)
			return joinQualified(class, name)
		case "arrow_function", "function_expression":
			// Anonymous functions are not entities; attribute to the
			// nearest NAMED ancestor (lambda parent policy).
		}
		n = n.Parent()
	}
	return "<module>"
}

func tsEnclosingClassName(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		if n.Type() == "class_declaration" {
			if name := findChildByFieldName(n, "name"); name != nil {
				return nodeText(name, source)
			}
		}
		n = n.Parent()
	}
	return ""
}

func tsImport(n *sitter.Node, source []byte, deps *FileDeps) {
	sourceNode := findChildByFieldName(n, "source")
	if sourceNode == nil {
		return
	}
	module := stripQuotes(nodeText(sourceNode, source))
	var symbols []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "import_clause":
			for j := 0; j < int(c.NamedChildCount()); j++ {
				clauseChild := c.NamedChild(j)
				switch clauseChild.Type() {
				case "identifier":
					symbols = append(symbols, nodeText(clauseChild, source)) // default import
				case "namespace_import":
					symbols = append(symbols, nodeText(clauseChild, source))
				case "named_imports":
					for k := 0; k < int(clauseChild.NamedChildCount()); k++ {
						spec := clauseChild.NamedChild(k)
						if spec.Type() != "import_specifier" {
							continue
						}
						if alias := findChildByFieldName(spec, "alias"); alias != nil {
							symbols = append(symbols, nodeText(alias, source))
						} else if name := findChildByFieldName(spec, "name"); name != nil {
							symbols = append(symbols, nodeText(name, source))
						}
					}
				}
			}
		}
	}
	deps.Imports = append(deps.Imports, Import{Module: module, Symbols: symbols})
}

func tsExport(n *sitter.Node, source []byte, deps *FileDeps) {
	sourceNode := findChildByFieldName(n, "source")
	if sourceNode == nil {
		return // not a re-export (e.g. "export function f() {}")
	}
	module := stripQuotes(nodeText(sourceNode, source))
	clause := firstChildOfType(n, "export_clause")
	if clause == nil {
		deps.Composes = append(deps.Composes, Compose{SourceName: "*", TargetName: module})
		return
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != "export_specifier" {
			continue
		}
		name := findChildByFieldName(spec, "name")
		if name == nil {
			continue
		}
		target := nodeText(name, source)
		if alias := findChildByFieldName(spec, "alias"); alias != nil {
			target = nodeText(alias, source)
		}
		deps.Composes = append(deps.Composes, Compose{SourceName: nodeText(name, source), TargetName: module + ":" + target})
	}
}
