// Package nav implements the three read-only navigation operations over an
// assembled RPGraph: Search (intent-based discovery), Fetch (entity/hierarchy
// detail retrieval), and Explore (bounded dependency traversal).
package nav

import "github.com/userFRM/rpg-encoder-sub002/internal/graph"

// SearchMode controls how much of a matched entity Search returns.
type SearchMode string

const (
	// ModeSnippets returns name, file, span, and a few lines of
	// semantic_features - the default, cheapest mode.
	ModeSnippets SearchMode = "snippets"
	// ModeFull returns the complete entity record.
	ModeFull SearchMode = "full"
	// ModeHierarchyOnly returns one match per distinct hierarchy path,
	// without semantic_features; name, file and span are still filled.
	ModeHierarchyOnly SearchMode = "hierarchy_only"
)

// SearchResult is one ranked match.
type SearchResult struct {
	EntityID         string   `json:"entity_id"`
	Name             string   `json:"name"`
	File             string   `json:"file"`
	LineStart        int      `json:"line_start"`
	LineEnd          int      `json:"line_end"`
	HierarchyPath    string   `json:"hierarchy_path"`
	SemanticFeatures []string `json:"semantic_features,omitempty"`
	Score            float64  `json:"score"`
}

// FetchResult is the detail view returned when id names a V_L entity.
type FetchResult struct {
	Entity           *graph.Entity `json:"entity"`
	SourceCode       *string       `json:"source_code"`
	HierarchyContext []string      `json:"hierarchy_context"`
}

// HierarchyFetchResult is the detail view returned when id names a V_H node.
type HierarchyFetchResult struct {
	Node        *graph.HierarchyNode `json:"node"`
	ChildNames  []string             `json:"child_names"`
	EntityCount int                  `json:"entity_count"`
}

// FetchOutput is the tagged-union result of Fetch: exactly one of Entity or
// Hierarchy is non-nil.
type FetchOutput struct {
	Entity    *FetchResult
	Hierarchy *HierarchyFetchResult
}

// NotFoundError is returned when id names neither an entity nor a hierarchy
// node.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "nav: entity not found: " + e.ID
}

// ExploreResult is the bounded sub-graph view returned by Explore.
type ExploreResult struct {
	Seed  string             `json:"seed"`
	Nodes []string           `json:"nodes"`
	Edges []graph.DependencyEdge `json:"edges"`
}
