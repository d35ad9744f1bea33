package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/userFRM/rpg-encoder-sub002/internal/parser"
)

func depsC(res *parser.ParseResult) FileDeps {
	var deps FileDeps

	for _, n := range descendantsOfType(res.Root, "preproc_include") {
		pathNode := findChildByFieldName(n, "path")
		if pathNode == nil {
			continue
		}
		// Keep the <angle> or "quoted" delimiters in place so callers can
		// tell the two include forms apart.
		deps.Imports = append(deps.Imports, Import{Module: nodeText(pathNode, res.Source)})
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

// cEnclosingFunctionName walks up from node to the nearest
// function_definition and resolves its declarator-chain name.
func cEnclosingFunctionName(node *sitter.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		if n.Type() == "function_definition" {
			if name, ok := cFunctionName(n, source); ok {
				return name
			}
			return ""
		}
		n = n.Parent()
	}
	return ""
}
