package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

// entityConfig drives the shared generic entity walker used by the
// class-based languages whose grammars agree on "name"/"body" fields for
// containers. Class is a unified kind covering class, struct, interface,
// trait, protocol, enum, module, and object constructs. Method name
// extraction is pluggable because C/C++ nest the identifier inside a
// declarator chain rather than exposing a direct "name" field.
type entityConfig struct {
	containers  map[string]bool
	methods     map[string]bool
	methodName  func(fn *sitter.Node, source []byte) (name string, ok bool)
}

func simpleFieldName(fn *sitter.Node, source []byte) (string, bool) {
	n := findChildByFieldName(fn, "name")
	if n == nil {
		return "", false
	}
	return nodeText(n, source), true
}

var cEntityConfig = entityConfig{
	containers: map[string]bool{"struct_specifier": true, "union_specifier": true, "enum_specifier": true},
	methods:    map[string]bool{"function_definition": true},
	methodName: cFunctionName,
}

var cppEntityConfig = entityConfig{
	containers: map[string]bool{"class_specifier": true, "struct_specifier": true, "union_specifier": true, "enum_specifier": true},
	methods:    map[string]bool{"function_definition": true},
	methodName: cFunctionName,
}

var csharpEntityConfig = entityConfig{
	containers: map[string]bool{"class_declaration": true, "interface_declaration": true, "struct_declaration": true, "record_declaration": true, "enum_declaration": true},
	methods:    map[string]bool{"method_declaration": true, "constructor_declaration": true},
	methodName: simpleFieldName,
}

var kotlinEntityConfig = entityConfig{
	containers: map[string]bool{"class_declaration": true, "object_declaration": true, "interface_declaration": true},
	methods:    map[string]bool{"function_declaration": true},
	methodName: simpleFieldName,
}

var swiftEntityConfig = entityConfig{
	containers: map[string]bool{"class_declaration": true, "protocol_declaration": true, "extension_declaration": true},
	methods:    map[string]bool{"function_declaration": true},
	methodName: simpleFieldName,
}

var phpEntityConfig = entityConfig{
	containers: map[string]bool{"class_declaration": true, "interface_declaration": true, "trait_declaration": true},
	methods:    map[string]bool{"method_declaration": true, "function_definition": true},
	methodName: simpleFieldName,
}

func entitiesGeneric(res *parser.ParseResult, relFile string, cfg entityConfig) []RawEntity {
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
		if cfg.containers[n.Type()] {
			nameNode := findChildByFieldName(n, "name")
			if nameNode != nil {
				name := nodeText(nameNode, res.Source)
				qname := joinQualified(class, name)
				start, end := getLineRange(n)
				add(RawEntity{QualifiedName: qname, Name: name, Kind: KindClass, File: relFile, LineStart: start, LineEnd: end, ParentClass: class})
				if body := findChildByFieldName(n, "body"); body != nil {
					walk(body, name)
					return
				}
			}
		}
		if cfg.methods[n.Type()] {
			if name, ok := cfg.methodName(n, res.Source); ok {
				start, end := getLineRange(n)
				if class == "" {
					add(RawEntity{QualifiedName: name, Name: name, Kind: KindFunction, File: relFile, LineStart: start, LineEnd: end})
				} else {
					add(RawEntity{QualifiedName: class + "." + name, Name: name, Kind: KindMethod, File: relFile, LineStart: start, LineEnd: end, ParentClass: class})
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i), class)
		}
	}
	walk(res.Root, "")
	return out
}

// cFunctionName extracts the identifier from a C/C++ function_definition's
// declarator chain: function_definition -declarator-> [pointer_declarator
// ...] -> function_declarator -declarator-> identifier | field_identifier
// | qualified_identifier.
func cFunctionName(fn *sitter.Node, source []byte) (string, bool) {
	d := findChildByFieldName(fn, "declarator")
	for d != nil {
		switch d.Type() {
		case "pointer_declarator", "reference_declarator", "function_declarator":
			next := findChildByFieldName(d, "declarator")
			if next == nil {
				return "", false
			}
			d = next
		case "identifier", "field_identifier", "qualified_identifier", "destructor_name", "operator_name":
			return nodeText(d, source), true
		default:
			return "", false
		}
	}
	return "", false
}
