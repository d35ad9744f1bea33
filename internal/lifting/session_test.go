package lifting

import (
	"os"
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

func makeEntities(n int) []*graph.Entity {
	out := make([]*graph.Entity, n)
	for i := 0; i < n; i++ {
		out[i] = &graph.Entity{
			ID:   graph.EntityID("f.go", "Fn"+string(rune('A'+i))),
			Kind: graph.KindFunction,
			Name: "Fn" + string(rune('A'+i)),
			File: "f.go",
		}
	}
	return out
}

func TestNewSessionPartitionsStably(t *testing.T) {
	entities := makeEntities(7)
	s, err := NewSession("Core/parsing", entities, 3)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if s.NumBatches() != 3 {
		t.Fatalf("expected 3 batches for 7 entities at size 3, got %d", s.NumBatches())
	}

	b0, err := s.Batch(0)
	if err != nil || len(b0) != 3 {
		t.Fatalf("batch 0: got %d entities, err %v", len(b0), err)
	}
	b2, err := s.Batch(2)
	if err != nil || len(b2) != 1 {
		t.Fatalf("batch 2 (remainder): got %d entities, err %v", len(b2), err)
	}

	if _, err := s.Batch(3); err == nil {
		t.Fatal("expected out-of-range batch index to error")
	}
}

func TestBatchRangesStableAcrossMutation(t *testing.T) {
	entities := makeEntities(5)
	s, err := NewSession("scope", entities, 2)
	if err != nil {
		t.Fatal(err)
	}
	ranges := s.BatchRanges()

	// Mutate the original slice contents after session creation; the
	// session holds its own snapshot so batch contents must not change.
	entities[0].Name = "Mutated"

	first, err := s.Batch(0)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Name == "Mutated" {
		t.Fatal("session snapshot shares backing entities with caller slice")
	}

	if ranges[0] != (BatchRange{Start: 0, End: 2}) {
		t.Fatalf("unexpected first range: %+v", ranges[0])
	}
}

func TestEstimateBatchCount(t *testing.T) {
	entities := makeEntities(10)
	s, err := NewSession("scope", entities, 4)
	if err != nil {
		t.Fatal(err)
	}

	count, err := s.EstimateBatchCount(5)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 batches of 5 for 10 entities, got %d", count)
	}

	if _, err := s.EstimateBatchCount(0); err == nil {
		t.Fatal("expected error for non-positive batch size")
	}
}

func TestApplyAnnotationsUpdatesGraphAndHierarchy(t *testing.T) {
	g := graph.NewRPGraph("go")
	e := &graph.Entity{ID: "f.go:Handle", Kind: graph.KindFunction, Name: "Handle", File: "f.go"}
	g.InsertEntity(e)

	anns := []Annotation{
		{EntityID: "f.go:Handle", Features: []string{"handles HTTP requests"}, HierarchyPath: "Core/http"},
		{EntityID: "f.go:Missing", Features: []string{"ghost"}},
	}

	skipped := ApplyAnnotations(g, anns)
	if len(skipped) != 1 || skipped[0].EntityID != "f.go:Missing" {
		t.Fatalf("expected one skipped unknown-id annotation, got %+v", skipped)
	}

	got, _ := g.GetEntity("f.go:Handle")
	if got.FeatureSource != graph.FeatureSourceLLM {
		t.Fatalf("expected feature source llm, got %s", got.FeatureSource)
	}
	if got.HierarchyPath != "Core/http" {
		t.Fatalf("expected hierarchy path Core/http, got %s", got.HierarchyPath)
	}

	node, ok := g.FindHierarchyNodeByID("h:Core/http")
	if !ok {
		t.Fatal("expected hierarchy node to exist after ApplyAnnotations")
	}
	if len(node.Entities) != 1 || node.Entities[0] != "f.go:Handle" {
		t.Fatalf("expected node.Entities to contain f.go:Handle, got %v", node.Entities)
	}
}

func TestNotYetLifted(t *testing.T) {
	lifted := &graph.Entity{SemanticFeatures: []string{"already done"}}
	pending := &graph.Entity{}

	out := NotYetLifted([]*graph.Entity{lifted, pending})
	if len(out) != 1 || out[0] != pending {
		t.Fatalf("expected only the unlifted entity, got %v", out)
	}
}

func TestRoutingRoundtripAndBestEffortLoad(t *testing.T) {
	dir := t.TempDir()

	if _, ok := LoadRouting(dir); ok {
		t.Fatal("expected no routing state before any save")
	}

	state := &PendingRoutingState{
		GraphRevision: "2026-07-31T00:00:00Z",
		Entries: []PendingRouting{
			{EntityID: "f.go:Handle", OriginalPath: "Core/http", Features: []string{"x"}, Reason: "collides with existing sibling"},
		},
	}
	if err := SaveRouting(dir, state); err != nil {
		t.Fatalf("SaveRouting: %v", err)
	}

	loaded, ok := LoadRouting(dir)
	if !ok {
		t.Fatal("expected routing state to load after save")
	}
	if loaded.GraphRevision != state.GraphRevision || len(loaded.Entries) != 1 {
		t.Fatalf("roundtrip mismatch: %+v", loaded)
	}

	g := graph.NewRPGraph("go")
	g.RefreshMetadata()
	if !loaded.IsStale(g) {
		t.Fatal("expected routing recorded against an older revision to be stale")
	}
}

func TestLoadRoutingCorruptFileIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(dir+"/.rpg", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(RoutingPath(dir), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := LoadRouting(dir); ok {
		t.Fatal("expected corrupt routing file to load as absent, not error")
	}
}
