package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

func TestFetchReturnsSourceSlice(t *testing.T) {
	dir := t.TempDir()
	lines := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	content := ""
	for i, l := range lines {
		if i > 0 {
			content += "\n"
		}
		content += l
	}
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g := graph.NewRPGraph("plain")
	e := &graph.Entity{ID: "f.txt:thing", Kind: graph.KindFunction, Name: "thing", File: "f.txt", LineStart: 3, LineEnd: 5, SemanticFeatures: []string{}}
	g.InsertEntity(e)
	g.RefreshMetadata()

	out, err := Fetch(g, "f.txt:thing", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if out.Entity == nil {
		t.Fatal("expected entity fetch result")
	}
	if out.Entity.SourceCode == nil {
		t.Fatal("expected source code to be populated")
	}
	want := "three\nfour\nfive"
	if *out.Entity.SourceCode != want {
		t.Errorf("expected %q, got %q", want, *out.Entity.SourceCode)
	}
}

func TestFetchUnreadableFileReturnsNilNotError(t *testing.T) {
	g := graph.NewRPGraph("plain")
	e := &graph.Entity{ID: "missing.txt:thing", Kind: graph.KindFunction, Name: "thing", File: "missing.txt", LineStart: 1, LineEnd: 2, SemanticFeatures: []string{}}
	g.InsertEntity(e)
	g.RefreshMetadata()

	out, err := Fetch(g, "missing.txt:thing", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch should not error on unreadable file: %v", err)
	}
	if out.Entity.SourceCode != nil {
		t.Errorf("expected nil source code, got %q", *out.Entity.SourceCode)
	}
}

func TestFetchHierarchyNode(t *testing.T) {
	g := graph.NewRPGraph("rust")
	g.InsertIntoHierarchy("Core/parsing/ast", "f.rs:main")
	g.RefreshMetadata()

	out, err := Fetch(g, "h:Core", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if out.Hierarchy == nil {
		t.Fatal("expected hierarchy fetch result")
	}
	if out.Hierarchy.EntityCount != 1 {
		t.Errorf("expected entity_count 1, got %d", out.Hierarchy.EntityCount)
	}
	found := false
	for _, n := range out.Hierarchy.ChildNames {
		if n == "parsing" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected child name parsing, got %+v", out.Hierarchy.ChildNames)
	}
}

func TestFetchNotFound(t *testing.T) {
	g := graph.NewRPGraph("rust")
	if _, err := Fetch(g, "nope", ""); err == nil {
		t.Fatal("expected NotFoundError")
	} else if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("expected *NotFoundError, got %T", err)
	}
}

func TestFetchHierarchyContextSiblings(t *testing.T) {
	g := graph.NewRPGraph("python")
	a := &graph.Entity{ID: "a.py:a", Name: "a", HierarchyPath: "Core/x", SemanticFeatures: []string{}}
	b := &graph.Entity{ID: "b.py:b", Name: "b", HierarchyPath: "Core/x", SemanticFeatures: []string{}}
	c := &graph.Entity{ID: "c.py:c", Name: "c", HierarchyPath: "Core/y", SemanticFeatures: []string{}}
	g.InsertEntity(a)
	g.InsertEntity(b)
	g.InsertEntity(c)
	g.RefreshMetadata()

	out, err := Fetch(g, "a.py:a", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(out.Entity.HierarchyContext) != 1 || out.Entity.HierarchyContext[0] != "b.py:b" {
		t.Errorf("expected sibling b.py:b, got %+v", out.Entity.HierarchyContext)
	}
}
