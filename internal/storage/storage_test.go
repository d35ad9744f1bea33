package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()

	g := graph.NewRPGraph("go")
	g.InsertEntity(&graph.Entity{ID: "main.go:main", Kind: graph.KindFunction, Name: "main", File: "main.go", SemanticFeatures: []string{}})
	g.RefreshMetadata()

	if err := Save(root, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(root) {
		t.Fatal("expected Exists to report true after Save")
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Language != "go" {
		t.Fatalf("expected language %q, got %q", "go", loaded.Language)
	}
	if _, ok := loaded.GetEntity("main.go:main"); !ok {
		t.Fatal("expected main.go:main entity to round-trip")
	}
	if loaded.Metadata.TotalEntities != 1 {
		t.Fatalf("expected 1 entity in metadata, got %d", loaded.Metadata.TotalEntities)
	}
}

func TestHierarchyRoundTrip(t *testing.T) {
	root := t.TempDir()

	g := graph.NewRPGraph("rust")
	g.InsertEntity(&graph.Entity{ID: "f.rs:main", Kind: graph.KindFunction, Name: "main", File: "f.rs", HierarchyPath: "Core/parsing/ast", SemanticFeatures: []string{}})
	g.InsertIntoHierarchy("Core/parsing/ast", "f.rs:main")
	g.RefreshMetadata()

	if err := Save(root, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	core, ok := loaded.Hierarchy["Core"]
	if !ok {
		t.Fatal("expected Core root to round-trip")
	}
	ast := core.Children["parsing"].Children["ast"]
	if len(ast.Entities) != 1 || ast.Entities[0] != "f.rs:main" {
		t.Fatalf("expected f.rs:main under Core/parsing/ast, got %v", ast.Entities)
	}
	if core.EntityCount() != 1 {
		t.Fatalf("expected entity count 1 at Core, got %d", core.EntityCount())
	}
}

func TestLoadMissingGraphFails(t *testing.T) {
	root := t.TempDir()
	if _, err := Load(root); err == nil {
		t.Fatal("expected Load to fail when graph.json is absent")
	}
}

func TestEnsureGitignoreCreatesFile(t *testing.T) {
	root := t.TempDir()

	already, err := EnsureGitignore(root)
	if err != nil {
		t.Fatalf("EnsureGitignore: %v", err)
	}
	if already {
		t.Fatal("expected false (newly added) on first call")
	}

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if !strings.Contains(string(data), ".rpg/") {
		t.Fatalf("expected .gitignore to contain .rpg/, got %q", data)
	}
}

func TestEnsureGitignoreIdempotent(t *testing.T) {
	root := t.TempDir()
	if _, err := EnsureGitignore(root); err != nil {
		t.Fatalf("first EnsureGitignore: %v", err)
	}
	already, err := EnsureGitignore(root)
	if err != nil {
		t.Fatalf("second EnsureGitignore: %v", err)
	}
	if !already {
		t.Fatal("expected true (already ignored) on second call")
	}
}

func TestEnsureGitignoreAppendsToExistingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("node_modules/\n"), 0o644); err != nil {
		t.Fatalf("seed .gitignore: %v", err)
	}

	if _, err := EnsureGitignore(root); err != nil {
		t.Fatalf("EnsureGitignore: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if !strings.Contains(string(data), "node_modules/") || !strings.Contains(string(data), ".rpg/") {
		t.Fatalf("expected both prior and new entries, got %q", data)
	}
}

