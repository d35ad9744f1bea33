// Package extract walks a parsed AST to produce the two raw artifacts the
// graph assembly step consumes: the entity list and the per-file
// dependency records. Extraction never fails on
// malformed source; per-file AST errors are absorbed by the caller
// (internal/graph), not this package.
package extract

import "fmt"

// EntityKind is the base classification the extractor assigns before the
// paradigm engine has a chance to reclassify. It intentionally
// mirrors graph.EntityKind's base cases; the paradigm layer widens the set.
type EntityKind string

const (
	KindFunction EntityKind = "Function"
	KindMethod   EntityKind = "Method"
	KindClass    EntityKind = "Class"
	KindModule   EntityKind = "Module"
)

// RawEntity is a single code construct discovered by walking one file's
// AST, before paradigm reclassification/synthesis or hierarchy placement.
type RawEntity struct {
	// QualifiedName is the dotted name used to form the stable id and to
	// match call-site caller_entity strings; nested containers join with
	// ".", e.g. "Outer.Inner.foo".
	QualifiedName string
	Name          string
	Kind          EntityKind
	File          string
	LineStart     int
	LineEnd       int
	// ParentClass is the enclosing class/struct/interface/trait/module
	// name, empty for top-level functions.
	ParentClass string
	// SemanticFeatures and FeatureSource are populated by the paradigm
	// engine's feature-seed rules; both stay empty until then and are
	// never set by a language extractor directly.
	SemanticFeatures []string
	FeatureSource    string
}

// ID formats the stable entity id: "<relative-file-path>:<qualified-name>".
func (e RawEntity) ID() string {
	return fmt.Sprintf("%s:%s", e.File, e.QualifiedName)
}

// Import is one import/use/require statement. Multiple named symbols in a
// single statement collapse into one record.
type Import struct {
	Module  string
	Symbols []string
}

// Call is one call-expression site. Callee is the rightmost identifier of
// the callable expression; CallerEntity is the qualified name of the
// enclosing function/method, or "<module>" at file top level.
type Call struct {
	Callee       string
	CallerEntity string
}

// Inherit is one parent relationship: one record per parent in
// multi-inheritance/multi-interface/trait-mixin constructs.
type Inherit struct {
	ChildClass  string
	ParentClass string
}

// Compose is a barrel re-export / composition record ("export { Foo } from
// './foo'" and language analogues).
type Compose struct {
	SourceName string
	TargetName string
}

// FileDeps is everything the dependency extractor found in one file.
type FileDeps struct {
	Imports  []Import
	Calls    []Call
	Inherits []Inherit
	Composes []Compose
}

// LambdaParentPolicy: anonymous/lambda functions are not emitted as
// entities, but may appear as the CallerEntity of calls made inside
// them. The policy is "nearest named container" - a call inside a lambda is
// attributed to the nearest enclosing named function/method, not a
// synthesized "<lambda>@line" placeholder. Applied uniformly by every
// per-language extractor below.
const LambdaParentPolicy = "nearest-named-container"
