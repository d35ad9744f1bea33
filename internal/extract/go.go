package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

var goNamedFuncKinds = map[string]string{
	"function_declaration": "name",
	"method_declaration":   "name",
}

func entitiesGo(res *parser.ParseResult, relFile string) []RawEntity {
	var out []RawEntity
	seen := make(map[string]bool)
	add := func(e RawEntity) {
		id := e.ID()
		if seen[id] {
			return // first occurrence wins
		}
		seen[id] = true
		out = append(out, e)
	}

	for _, n := range descendantsOfType(res.Root, "function_declaration") {
		nameNode := findChildByFieldName(n, "name")
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, res.Source)
		start, end := getLineRange(n)
		add(RawEntity{QualifiedName: name, Name: name, Kind: KindFunction, File: relFile, LineStart: start, LineEnd: end})
	}

	for _, n := range descendantsOfType(res.Root, "method_declaration") {
		nameNode := findChildByFieldName(n, "name")
		recv := goReceiverType(n, res.Source)
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, res.Source)
		qname := name
		if recv != "" {
			qname = recv + "." + name
		}
		start, end := getLineRange(n)
		add(RawEntity{QualifiedName: qname, Name: name, Kind: KindMethod, File: relFile, LineStart: start, LineEnd: end, ParentClass: recv})
	}

	for _, n := range descendantsOfType(res.Root, "type_spec") {
		nameNode := findChildByFieldName(n, "name")
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, res.Source)
		// line range covers the enclosing type_declaration when grouped,
		// else the type_spec itself.
		target := n
		if p := n.Parent(); p != nil && p.Type() == "type_declaration" {
			target = p
		}
		start, end := getLineRange(target)
		add(RawEntity{QualifiedName: name, Name: name, Kind: KindClass, File: relFile, LineStart: start, LineEnd: end})
	}

	return out
}

// goReceiverType extracts the (possibly pointer) receiver type name of a
// method_declaration, e.g. "func (r *Reader) Read(...)" -> "Reader".
func goReceiverType(method *sitter.Node, source []byte) string {
	recv := findChildByFieldName(method, "receiver")
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.ChildCount()); i++ {
		param := recv.Child(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		typeNode := findChildByFieldName(param, "type")
		if typeNode == nil {
			continue
		}
		if typeNode.Type() == "pointer_type" {
			if inner := typeNode.NamedChild(0); inner != nil {
				return nodeText(inner, source)
			}
		}
		return nodeText(typeNode, source)
	}
	return ""
}

func depsGo(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, spec := range descendantsOfType(res.Root, "import_spec") {
		pathNode := findChildByFieldName(spec, "path")
		if pathNode == nil {
			continue
		}
		module := stripQuotes(nodeText(pathNode, res.Source))
		var symbols []string
		if nameNode := findChildByFieldName(spec, "name"); nameNode != nil {
			symbols = append(symbols, nodeText(nameNode, res.Source))
		}
		deps.Imports = append(deps.Imports, Import{Module: module, Symbols: symbols})
	}

	for _, call := range descendantsOfType(res.Root, "call_expression") {
		fn := findChildByFieldName(call, "function")
		if fn == nil {
			continue
		}
		callee := lastSegment(nodeText(fn, res.Source))
		caller := enclosingNamedAncestor(call, res.Source, goNamedFuncKinds)
		for p := call.Parent(); p != nil && caller != ""; p = p.Parent() {
			if p.Type() == "function_declaration" {
				break
			}
			if p.Type() == "method_declaration" {
				if recv := goReceiverType(p, res.Source); recv != "" {
					caller = recv + "." + caller
				}
				break
			}
		}
		if caller == "" {
			caller = "<module>"
		}
		deps.Calls = append(deps.Calls, Call{Callee: callee, CallerEntity: caller})
	}

	// Go has no classical inheritance; struct embedding is the closest
	// analogue and is represented as Compose, not Inherit, since Go
	// embedding is structural, not nominal.
	for _, spec := range descendantsOfType(res.Root, "type_spec") {
		nameNode := findChildByFieldName(spec, "name")
		typeNode := findChildByFieldName(spec, "type")
		if nameNode == nil || typeNode == nil || typeNode.Type() != "struct_type" {
			continue
		}
		structName := nodeText(nameNode, res.Source)
		body := firstChildOfType(typeNode, "field_declaration_list")
		for _, field := range childrenOfType(body, "field_declaration") {
			if findChildByFieldName(field, "name") != nil {
				continue // named field, not an embedded type
			}
			typ := findChildByFieldName(field, "type")
			if typ == nil {
				continue
			}
			embedded := nodeText(typ, res.Source)
			if typ.Type() == "pointer_type" {
				if inner := typ.NamedChild(0); inner != nil {
					embedded = nodeText(inner, res.Source)
				}
			}
			deps.Composes = append(deps.Composes, Compose{SourceName: embedded, TargetName: structName})
		}
	}

	return deps
}
