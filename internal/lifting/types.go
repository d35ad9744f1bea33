// Package lifting implements the stable-index batching used by iterative
// LLM semantic-annotation calls. Semantic lifting enriches
// entities with semantic_features and a hierarchy_path, usually over
// several LLM round-trips; the session cache exists so that a graph
// mutation between batches never shifts which entities batch i refers to.
package lifting

import (
	"github.com/google/uuid"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

// BatchRange is a fixed index interval into a Session's entity snapshot.
// Batch i always refers to Entities[Start:End], regardless of how many of
// those entities are later lifted.
type BatchRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Annotation is one entity's lifted semantic data, as produced by an
// external Annotator (an LLM provider adapter; this package only defines
// the interface it is plugged into).
type Annotation struct {
	EntityID      string   `json:"entity_id"`
	Features      []string `json:"features"`
	HierarchyPath string   `json:"hierarchy_path"`
}

// Annotator is the external collaborator a lifting session calls to
// annotate one batch. The core ships no implementation - a real one talks
// to Ollama/Anthropic/OpenAI and is wired in by the CLI layer.
type Annotator interface {
	Annotate(batch []*graph.Entity) ([]Annotation, error)
}

// PendingRouting records a lifted entity whose suggested hierarchy_path
// could not be applied automatically (e.g. it would collide, or the
// caller asked for manual review) and why.
type PendingRouting struct {
	EntityID     string   `json:"entity_id"`
	OriginalPath string   `json:"original_path"`
	Features     []string `json:"features"`
	Reason       string   `json:"reason"`
}

// PendingRoutingState is the full persisted pending-routing document
// (.rpg/pending_routing.json). GraphRevision is the graph's updated_at at
// the time these entries were recorded, so a caller can detect that the
// graph changed underneath a stale routing decision by comparing
// revisions - never by a content hash.
type PendingRoutingState struct {
	GraphRevision string           `json:"graph_revision"`
	Entries       []PendingRouting `json:"entries"`
}

// IsStale reports whether g has been saved (its updated_at rewritten)
// since this routing state was recorded.
func (s *PendingRoutingState) IsStale(g *graph.RPGraph) bool {
	return s.GraphRevision != g.Metadata.UpdatedAt
}

// newSessionID mints a session identity distinct from its user-chosen
// ScopeKey, useful for correlating log lines across a multi-batch lifting
// run without relying on the (possibly reused) scope key.
func newSessionID() uuid.UUID {
	return uuid.New()
}
