package lifting

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

// Session is the stable-index batching cache for one lifting run over a
// scope of a graph. Its entity snapshot and batch ranges are
// fixed at creation; callers read batches by index and feed annotations
// back through ApplyAnnotations without ever needing to recompute offsets
// as the underlying graph mutates.
type Session struct {
	// ID is a stable identity distinct from ScopeKey, minted once per
	// session for log correlation across batch calls.
	ID uuid.UUID
	// ScopeKey is the user-chosen key this session was opened under (a
	// hierarchy prefix is the common case, but any caller-meaningful
	// string works).
	ScopeKey string

	entities    []*graph.Entity
	batchRanges []BatchRange
	autoLifted  int
}

// NewSession snapshots entities (in the order given - callers pass them in
// a stable order, typically graph.OrderedEntityIDs order) and partitions
// that snapshot into fixed-size batches. autoLifted counts entities in the
// snapshot whose semantic_features were already populated by a
// deterministic rule (FeatureSourceAuto) before this session was opened.
func NewSession(scopeKey string, entities []*graph.Entity, batchSize int) (*Session, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("lifting: batch size must be positive, got %d", batchSize)
	}

	snapshot := make([]*graph.Entity, len(entities))
	for i, e := range entities {
		c := *e
		snapshot[i] = &c
	}

	auto := 0
	for _, e := range snapshot {
		if e.FeatureSource == graph.FeatureSourceAuto && len(e.SemanticFeatures) > 0 {
			auto++
		}
	}

	return &Session{
		ID:          newSessionID(),
		ScopeKey:    scopeKey,
		entities:    snapshot,
		batchRanges: partitionRanges(len(snapshot), batchSize),
		autoLifted:  auto,
	}, nil
}

func partitionRanges(n, size int) []BatchRange {
	if n == 0 {
		return nil
	}
	ranges := make([]BatchRange, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		ranges = append(ranges, BatchRange{Start: start, End: end})
	}
	return ranges
}

// NumBatches returns the number of fixed batches this session was
// partitioned into.
func (s *Session) NumBatches() int {
	return len(s.batchRanges)
}

// AutoLifted returns the count of entities annotated by deterministic
// rules before the LLM was ever called.
func (s *Session) AutoLifted() int {
	return s.autoLifted
}

// RawEntities returns the full snapshot taken at session creation, in its
// original order.
func (s *Session) RawEntities() []*graph.Entity {
	out := make([]*graph.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// BatchRanges returns the fixed partition of the snapshot into batches.
func (s *Session) BatchRanges() []BatchRange {
	out := make([]BatchRange, len(s.batchRanges))
	copy(out, s.batchRanges)
	return out
}

// Batch returns the entities of batch i: always entities[ranges[i].Start :
// ranges[i].End], regardless of how many have since been lifted.
func (s *Session) Batch(i int) ([]*graph.Entity, error) {
	if i < 0 || i >= len(s.batchRanges) {
		return nil, fmt.Errorf("lifting: batch index %d out of range [0,%d)", i, len(s.batchRanges))
	}
	r := s.batchRanges[i]
	return s.entities[r.Start:r.End], nil
}

// EstimateBatchCount projects how many batches a snapshot of this size
// would partition into under a hypothetical batch size, without mutating
// the session. Pure arithmetic - no LLM call, no token counting; callers
// planning a lifting run use it to price batch-size tradeoffs before
// committing to a session.
func (s *Session) EstimateBatchCount(batchSize int) (int, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("lifting: batch size must be positive, got %d", batchSize)
	}
	return len(partitionRanges(len(s.entities), batchSize)), nil
}

// ApplyAnnotations writes lifted semantic_features and hierarchy_path back
// onto g for each annotation whose EntityID resolves to a known entity,
// sets FeatureSource to "llm", and inserts the entity into the hierarchy
// tree at its new path. Annotations naming an unknown entity id are
// skipped (the graph may have been re-parsed between session creation and
// this call) and returned as the skipped slice. An annotation that comes
// back with features but no hierarchy_path (the LLM judged the entity's
// semantics but not where it belongs) falls back to SuggestHierarchyPath's
// file-system-grounded guess before the entity is left unplaced.
func ApplyAnnotations(g *graph.RPGraph, anns []Annotation) (skipped []Annotation) {
	for _, a := range anns {
		e, ok := g.GetEntity(a.EntityID)
		if !ok {
			skipped = append(skipped, a)
			continue
		}
		e.SemanticFeatures = a.Features
		e.FeatureSource = graph.FeatureSourceLLM

		path := a.HierarchyPath
		if path == "" {
			if suggested, ok := SuggestHierarchyPath(g, e); ok {
				path = suggested
			}
		}
		if path != "" {
			e.HierarchyPath = path
			g.InsertIntoHierarchy(path, e.ID)
		}
	}
	return skipped
}

// SuggestHierarchyPath grounds a lifted entity's placement in the existing
// hierarchy tree by file-system proximity: it computes every existing
// node's LowestCommonAncestorDir and returns the path of whichever node's
// LCA directory is the deepest ancestor of e's own directory; when a node
// and its descendant share that LCA directory, the deeper node wins.
// Returns ("", false) if no
// node's LCA directory is an ancestor of e.File's directory - callers are
// expected to fall back to asking the LLM again or routing to
// PendingRouting, since this heuristic is advisory, not authoritative.
func SuggestHierarchyPath(g *graph.RPGraph, e *graph.Entity) (string, bool) {
	entityDir := dirOf(e.File)

	best := ""
	bestDepth := -1
	var walk func(path string, node *graph.HierarchyNode)
	walk = func(path string, node *graph.HierarchyNode) {
		if lca := g.LowestCommonAncestorDir(node); lca != "" && dirHasPrefix(entityDir, lca) {
			depth := strings.Count(lca, "/") + 1
			if depth > bestDepth || depth == bestDepth && strings.Count(path, "/") > strings.Count(best, "/") {
				bestDepth = depth
				best = path
			}
		}
		for name, child := range node.Children {
			walk(path+"/"+name, child)
		}
	}
	for name, root := range g.Hierarchy {
		walk(name, root)
	}

	if best == "" {
		return "", false
	}
	return best, true
}

// dirOf returns the directory segment of a "/"-separated relative file
// path, "" for a file with no directory.
func dirOf(file string) string {
	idx := strings.LastIndex(file, "/")
	if idx < 0 {
		return ""
	}
	return file[:idx]
}

// dirHasPrefix reports whether dir is prefix or a descendant directory of
// prefix ("a/b/c" has prefix "a/b"; "a/bc" does not).
func dirHasPrefix(dir, prefix string) bool {
	return dir == prefix || strings.HasPrefix(dir, prefix+"/")
}

// NotYetLifted filters entities whose semantic_features are still empty -
// the candidate set a new Session is typically opened over.
func NotYetLifted(entities []*graph.Entity) []*graph.Entity {
	var out []*graph.Entity
	for _, e := range entities {
		if len(e.SemanticFeatures) == 0 {
			out = append(out, e)
		}
	}
	return out
}
