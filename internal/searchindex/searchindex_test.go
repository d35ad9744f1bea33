package searchindex

import (
	"context"
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

func buildGraph(t *testing.T) *graph.RPGraph {
	t.Helper()
	g := graph.NewRPGraph("go")
	g.InsertEntity(&graph.Entity{
		ID: "server.go:HandleRequest", Kind: graph.KindFunction, Name: "HandleRequest",
		File: "server.go", SemanticFeatures: []string{"parses incoming HTTP requests"},
	})
	g.InsertEntity(&graph.Entity{
		ID: "client.go:DialTimeout", Kind: graph.KindFunction, Name: "DialTimeout",
		File: "client.go", SemanticFeatures: []string{"opens a TCP connection with a deadline"},
	})
	g.RefreshMetadata()
	return g
}

func TestRebuildAndQuery(t *testing.T) {
	root := t.TempDir()
	idx, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	ctx := context.Background()
	if err := idx.Rebuild(ctx, buildGraph(t)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	matches, err := idx.Query(ctx, "HandleRequest", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match for HandleRequest")
	}
	if matches[0].EntityID != "server.go:HandleRequest" {
		t.Fatalf("expected top match server.go:HandleRequest, got %s", matches[0].EntityID)
	}
}

func TestRebuildClearsPriorContents(t *testing.T) {
	root := t.TempDir()
	idx, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	ctx := context.Background()
	g := buildGraph(t)
	if err := idx.Rebuild(ctx, g); err != nil {
		t.Fatal(err)
	}

	empty := graph.NewRPGraph("go")
	empty.RefreshMetadata()
	if err := idx.Rebuild(ctx, empty); err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Query(ctx, "HandleRequest", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches after rebuilding from an empty graph, got %v", matches)
	}
}
