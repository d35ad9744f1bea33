package paradigm

import (
	"testing"

	"github.com/userFRM/rpg-encoder-sub002/internal/extract"
)

func TestDefaultParadigmsDecode(t *testing.T) {
	e, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(e.defs) == 0 {
		t.Fatal("expected at least one paradigm def")
	}
}

func TestActiveDefsMatchesOnImport(t *testing.T) {
	e, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	deps := extract.FileDeps{Imports: []extract.Import{{Module: "react"}}}
	active := e.ActiveDefs("src/Widget.tsx", "typescript", deps)
	if len(active) == 0 {
		t.Fatal("expected react paradigms to activate on a .tsx file importing react")
	}
	found := false
	for _, def := range active {
		if def.Name == "react-hooks" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected react-hooks paradigm to be active")
	}
}

func TestActiveDefsNoMatch(t *testing.T) {
	e, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	active := e.ActiveDefs("src/util.go", "go", extract.FileDeps{})
	if len(active) != 0 {
		t.Fatalf("expected no active paradigms for a plain Go file, got %d", len(active))
	}
}

func TestClassifyEntitiesReclassifiesHook(t *testing.T) {
	e, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	deps := extract.FileDeps{Imports: []extract.Import{{Module: "react"}}}
	active := e.ActiveDefs("src/useWidget.ts", "typescript", deps)

	raw := []extract.RawEntity{
		{QualifiedName: "useWidget", Name: "useWidget", Kind: extract.KindFunction, File: "src/useWidget.ts"},
		{QualifiedName: "helper", Name: "helper", Kind: extract.KindFunction, File: "src/useWidget.ts"},
	}
	ClassifyEntities(active, raw)

	if raw[0].Kind != extract.EntityKind("Hook") {
		t.Fatalf("expected useWidget to be reclassified as Hook, got %s", raw[0].Kind)
	}
	if raw[1].Kind != extract.KindFunction {
		t.Fatalf("expected helper to remain a Function, got %s", raw[1].Kind)
	}
}

func TestApplyFeatureSeedsSetsAutoSource(t *testing.T) {
	e, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	deps := extract.FileDeps{Imports: []extract.Import{{Module: "react"}}}
	active := e.ActiveDefs("src/useWidget.ts", "typescript", deps)

	raw := []extract.RawEntity{
		{QualifiedName: "useWidget", Name: "useWidget", Kind: extract.EntityKind("Hook"), File: "src/useWidget.ts"},
	}
	ApplyFeatureSeeds(active, raw)

	if len(raw[0].SemanticFeatures) == 0 {
		t.Fatal("expected a seeded semantic feature")
	}
	if raw[0].FeatureSource != "auto" {
		t.Fatalf("expected feature source \"auto\", got %q", raw[0].FeatureSource)
	}
}
