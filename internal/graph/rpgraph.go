package graph

import (
	"strings"
	"time"
)

// Metadata summarizes an RPGraph's current contents.
type Metadata struct {
	TotalEntities int    `json:"total_entities"`
	TotalFiles    int    `json:"total_files"`
	Language      string `json:"language"`
	BaseCommit    string `json:"base_commit,omitempty"`
	UpdatedAt     string `json:"updated_at"`
}

// RPGraph is the whole Repository Planning Graph: entities (V_L), the
// hierarchy tree (V_H), dependency edges (E_dep), and summary metadata.
//
// RPGraph is not internally synchronized; a caller sharing one across
// goroutines must wrap it in an external lock, per the concurrency model.
type RPGraph struct {
	Language  string                    `json:"language"`
	Entities  map[string]*Entity        `json:"entities"`
	Edges     []DependencyEdge          `json:"edges"`
	Hierarchy map[string]*HierarchyNode `json:"hierarchy"`
	Metadata  Metadata                  `json:"metadata"`

	// order preserves insertion order of entity ids for deterministic
	// JSON output even though Entities is a map.
	order []string
}

// NewRPGraph creates an empty graph tagged with a dominant language.
func NewRPGraph(language string) *RPGraph {
	return &RPGraph{
		Language:  language,
		Entities:  make(map[string]*Entity),
		Edges:     []DependencyEdge{},
		Hierarchy: make(map[string]*HierarchyNode),
		Metadata:  Metadata{Language: language},
	}
}

// InsertEntity adds or overwrites an entity by id (last write wins).
func (g *RPGraph) InsertEntity(e *Entity) {
	if _, exists := g.Entities[e.ID]; !exists {
		g.order = append(g.order, e.ID)
	}
	g.Entities[e.ID] = e
}

// GetEntity looks up an entity by id, O(1).
func (g *RPGraph) GetEntity(id string) (*Entity, bool) {
	e, ok := g.Entities[id]
	return e, ok
}

// AddEdge appends a dependency edge. Edges are pure records; the target
// need not exist (dangling edges are legal).
func (g *RPGraph) AddEdge(e DependencyEdge) {
	g.Edges = append(g.Edges, e)
}

// InsertIntoHierarchy ensures the "/"-separated path exists in the
// hierarchy tree (creating missing intermediate nodes) and appends
// entityID to the terminal node's entity list, unless already present.
func (g *RPGraph) InsertIntoHierarchy(path, entityID string) {
	segs := splitHierarchyPath(path)
	if len(segs) == 0 {
		return
	}

	built := ""
	roots := g.Hierarchy
	var node *HierarchyNode
	for i, seg := range segs {
		if i == 0 {
			built = seg
		} else {
			built = built + "/" + seg
		}
		n, ok := roots[seg]
		if !ok {
			n = newHierarchyNode(hierarchyNodeID(built), seg)
			roots[seg] = n
		}
		node = n
		roots = n.Children
	}

	for _, existing := range node.Entities {
		if existing == entityID {
			return
		}
	}
	node.Entities = append(node.Entities, entityID)
}

// EnsureHierarchyPath creates the "/"-separated path in the hierarchy tree
// if it doesn't already exist, without attaching any entity - used to seed
// config-driven default top-level groupings ahead of any entity actually
// being filed under them.
func (g *RPGraph) EnsureHierarchyPath(path string) {
	segs := splitHierarchyPath(path)
	if len(segs) == 0 {
		return
	}

	built := ""
	roots := g.Hierarchy
	for i, seg := range segs {
		if i == 0 {
			built = seg
		} else {
			built = built + "/" + seg
		}
		n, ok := roots[seg]
		if !ok {
			n = newHierarchyNode(hierarchyNodeID(built), seg)
			roots[seg] = n
		}
		roots = n.Children
	}
}

// FindHierarchyNodeByID resolves "h:<slash-path>" to its node, O(path depth).
func (g *RPGraph) FindHierarchyNodeByID(id string) (*HierarchyNode, bool) {
	path := strings.TrimPrefix(id, "h:")
	segs := splitHierarchyPath(path)
	if len(segs) == 0 {
		return nil, false
	}

	roots := g.Hierarchy
	var node *HierarchyNode
	for _, seg := range segs {
		n, ok := roots[seg]
		if !ok {
			return nil, false
		}
		node = n
		roots = n.Children
	}
	return node, true
}

// RefreshMetadata recomputes total_entities/total_files from current
// contents and rewrites updated_at, which also serves as the graph's
// revision token. Lifting and routing mutate the graph independently of
// commits, so the save timestamp is the revision, never a content hash.
func (g *RPGraph) RefreshMetadata() {
	files := make(map[string]struct{})
	for _, e := range g.Entities {
		files[e.File] = struct{}{}
	}
	g.Metadata.TotalEntities = len(g.Entities)
	g.Metadata.TotalFiles = len(files)
	g.Metadata.Language = g.Language
	g.Metadata.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// OrderedEntityIDs returns entity ids in insertion order, for deterministic
// output in contexts that need stable iteration (e.g. tests, JSON encoders
// that don't preserve map order on their own).
func (g *RPGraph) OrderedEntityIDs() []string {
	out := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if _, ok := g.Entities[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
