package nav

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

// Fetch returns full detail for an entity or hierarchy node id. Entity ids
// are looked up first; source_code is the exact slice
// lines[line_start-1:min(line_end,total)] joined by "\n", left nil if the
// file can't be read (absent, not an error). Hierarchy node ids (prefixed
// "h:") return child names and a recursive entity count. Anything else is
// a NotFoundError.
func Fetch(g *graph.RPGraph, id, projectRoot string) (*FetchOutput, error) {
	if e, ok := g.GetEntity(id); ok {
		return &FetchOutput{Entity: &FetchResult{
			Entity:           e,
			SourceCode:       readEntitySource(projectRoot, e),
			HierarchyContext: findSiblings(g, e),
		}}, nil
	}

	if strings.HasPrefix(id, "h:") {
		if node, ok := g.FindHierarchyNodeByID(id); ok {
			names := make([]string, 0, len(node.Children))
			for name := range node.Children {
				names = append(names, name)
			}
			return &FetchOutput{Hierarchy: &HierarchyFetchResult{
				Node:        node,
				ChildNames:  names,
				EntityCount: node.EntityCount(),
			}}, nil
		}
	}

	return nil, &NotFoundError{ID: id}
}

func readEntitySource(projectRoot string, e *graph.Entity) *string {
	content, err := os.ReadFile(filepath.Join(projectRoot, e.File))
	if err != nil {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	start := e.LineStart - 1
	if start < 0 {
		start = 0
	}
	end := e.LineEnd
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		start = end
	}

	snippet := strings.Join(lines[start:end], "\n")
	return &snippet
}

func findSiblings(g *graph.RPGraph, e *graph.Entity) []string {
	if e.HierarchyPath == "" {
		return []string{}
	}

	siblings := []string{}
	for _, id := range g.OrderedEntityIDs() {
		other, ok := g.GetEntity(id)
		if !ok || other.ID == e.ID {
			continue
		}
		if other.HierarchyPath == e.HierarchyPath {
			siblings = append(siblings, other.ID)
		}
	}
	return siblings
}
