package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/extract"
	"github.com/userFRM/rpg-encoder-sub002/internal/registry"
)

func TestAssembleInsertsEntitiesAndInvokeEdge(t *testing.T) {
	results := []FileResult{
		{
			File: "main.go",
			Entities: []extract.RawEntity{
				{QualifiedName: "main", Name: "main", Kind: extract.KindFunction, File: "main.go", LineStart: 1, LineEnd: 3},
				{QualifiedName: "helper", Name: "helper", Kind: extract.KindFunction, File: "main.go", LineStart: 5, LineEnd: 7},
			},
			Deps: extract.FileDeps{
				Calls: []extract.Call{{Callee: "helper", CallerEntity: "main"}},
			},
		},
	}

	g := Assemble("go", results)

	if _, ok := g.GetEntity("main.go:main"); !ok {
		t.Fatal("expected main.go:main entity to exist")
	}
	if _, ok := g.GetEntity("main.go:helper"); !ok {
		t.Fatal("expected main.go:helper entity to exist")
	}

	found := false
	for _, e := range g.Edges {
		if e.Source == "main.go:main" && e.Target == "main.go:helper" && e.Kind == DepInvokes {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Invokes edge main->helper, got %+v", g.Edges)
	}
}

func TestAssembleDanglingCallTarget(t *testing.T) {
	results := []FileResult{
		{
			File: "main.go",
			Entities: []extract.RawEntity{
				{QualifiedName: "main", Name: "main", Kind: extract.KindFunction, File: "main.go"},
			},
			Deps: extract.FileDeps{
				Calls: []extract.Call{{Callee: "fmt.Println", CallerEntity: "main"}},
			},
		},
	}

	g := Assemble("go", results)
	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(g.Edges))
	}
	edge := g.Edges[0]
	if _, ok := g.GetEntity(edge.Target); ok {
		t.Fatalf("expected dangling target, but %q resolved to a real entity", edge.Target)
	}
}

func TestAssembleModuleEntityHostsFileLevelImports(t *testing.T) {
	results := []FileResult{
		{
			File: "main.go",
			Deps: extract.FileDeps{
				Imports: []extract.Import{{Module: "fmt"}},
			},
		},
	}

	g := Assemble("go", results)
	moduleID := "main.go:<module>"
	e, ok := g.GetEntity(moduleID)
	if !ok {
		t.Fatalf("expected synthesized module entity %q", moduleID)
	}
	if e.Kind != KindModule {
		t.Fatalf("expected module entity kind %q, got %q", KindModule, e.Kind)
	}
	if len(e.Deps.Imports) != 1 || e.Deps.Imports[0] != "fmt" {
		t.Fatalf("expected module entity to carry the fmt import, got %+v", e.Deps.Imports)
	}

	found := false
	for _, edge := range g.Edges {
		if edge.Source == moduleID && edge.Target == "fmt" && edge.Kind == DepImports {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Imports edge from the module entity, got %+v", g.Edges)
	}
}

// A call whose caller qualified name never became an entity must still get
// a real source: the per-file module entity is synthesized on demand so no
// edge source can dangle.
func TestAssembleUnresolvedCallerFallsBackToModuleEntity(t *testing.T) {
	results := []FileResult{
		{
			File: "iface.kt",
			Entities: []extract.RawEntity{
				{QualifiedName: "Greeter", Name: "Greeter", Kind: extract.KindClass, File: "iface.kt"},
			},
			Deps: extract.FileDeps{
				Calls: []extract.Call{{Callee: "println", CallerEntity: "Greeter.greet"}},
			},
		},
	}

	g := Assemble("kotlin", results)
	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(g.Edges))
	}
	if _, ok := g.GetEntity(g.Edges[0].Source); !ok {
		t.Fatalf("edge source %q does not resolve to an entity", g.Edges[0].Source)
	}
	if g.Edges[0].Source != "iface.kt:<module>" {
		t.Fatalf("expected module-entity fallback source, got %q", g.Edges[0].Source)
	}
}

func TestParseFilesParallelUnknownExtension(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "data.xyz"), []byte("not source"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := registry.Default()
	if err != nil {
		t.Fatalf("registry.Default: %v", err)
	}

	results, err := ParseFilesParallel(context.Background(), reg, root, []string{"data.xyz"})
	if err != nil {
		t.Fatalf("ParseFilesParallel: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("unknown extension must not error, got %v", results[0].Err)
	}
	if len(results[0].Entities) != 0 {
		t.Fatalf("expected zero entities, got %d", len(results[0].Entities))
	}
}

func TestAssembleSkipsErroredFiles(t *testing.T) {
	results := []FileResult{
		{File: "broken.go", Err: errTestFailure},
		{
			File: "ok.go",
			Entities: []extract.RawEntity{
				{QualifiedName: "f", Name: "f", Kind: extract.KindFunction, File: "ok.go"},
			},
		},
	}

	g := Assemble("go", results)
	if _, ok := g.GetEntity("ok.go:f"); !ok {
		t.Fatal("expected ok.go:f to be inserted")
	}
	if g.Metadata.TotalFiles != 1 {
		t.Fatalf("expected 1 file counted in metadata, got %d", g.Metadata.TotalFiles)
	}
}

var errTestFailure = &testAssembleError{"boom"}

type testAssembleError struct{ msg string }

func (e *testAssembleError) Error() string { return e.msg }
