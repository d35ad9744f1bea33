// Package graph implements the Repository Planning Graph data model: the
// dual graph of leaf entities (V_L), hierarchy nodes (V_H), and dependency
// edges (E_dep), plus the construction API that assembles a graph from
// parsed source trees.
package graph

import "fmt"

// EntityKind classifies an indexed code construct. The set is open: the
// paradigm engine reclassifies entities into framework-specific kinds
// (Component, Hook, Controller, ...) beyond the base kinds the extractor
// emits.
type EntityKind string

const (
	KindFunction  EntityKind = "Function"
	KindMethod    EntityKind = "Method"
	KindClass     EntityKind = "Class"
	KindTrait     EntityKind = "Trait"
	KindModule    EntityKind = "Module"
	KindComponent EntityKind = "Component"
	KindHook      EntityKind = "Hook"
	KindController EntityKind = "Controller"
)

// FeatureSource records how an entity's semantic_features were populated.
type FeatureSource string

const (
	FeatureSourceAuto   FeatureSource = "auto"
	FeatureSourceLLM    FeatureSource = "llm"
	FeatureSourceManual FeatureSource = "manual"
)

// EntityDeps groups the dependency records attributable to a single entity
// at extraction time, before they are lowered into graph-level
// DependencyEdges. Mirrors extract.FileDeps but scoped to one entity.
type EntityDeps struct {
	Imports []string `json:"imports,omitempty"`
	Calls   []string `json:"calls,omitempty"`
	Inherits []string `json:"inherits,omitempty"`
	Composes []string `json:"composes,omitempty"`
}

// Entity is a single leaf node (V_L) of the RPG: a function, method, class,
// or similar construct extracted from source.
type Entity struct {
	ID               string        `json:"id"`
	Kind             EntityKind    `json:"kind"`
	Name             string        `json:"name"`
	File             string        `json:"file"`
	LineStart        int           `json:"line_start"`
	LineEnd          int           `json:"line_end"`
	ParentClass      string        `json:"parent_class,omitempty"`
	SemanticFeatures []string      `json:"semantic_features"`
	FeatureSource    FeatureSource `json:"feature_source,omitempty"`
	HierarchyPath    string        `json:"hierarchy_path"`
	Deps             EntityDeps    `json:"deps"`
	Embedding        []float64     `json:"embedding,omitempty"`
}

// EntityID formats the stable id "<relative-file-path>:<dotted-qualified-name>".
func EntityID(file, qualifiedName string) string {
	return fmt.Sprintf("%s:%s", file, qualifiedName)
}

// DepKind is the kind of a graph-level DependencyEdge.
type DepKind string

const (
	DepInvokes  DepKind = "Invokes"
	DepImports  DepKind = "Imports"
	DepInherits DepKind = "Inherits"
	DepComposes DepKind = "Composes"
)

// DependencyEdge is a single E_dep record. Target may dangle (refer to a
// symbol that is not a known entity id) - external symbols are legal
// targets.
type DependencyEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Kind   DepKind `json:"kind"`
}
