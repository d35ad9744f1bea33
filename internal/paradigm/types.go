// Package paradigm implements the declarative paradigm engine: per-language
// framework-awareness rules loaded from data rather than hand-coded per
// framework. A ParadigmDef activates on a file's imports/path,
// then reclassifies entities, synthesizes extras via AST queries, and seeds
// semantic_features - all driven by paradigms.toml.
package paradigm

// ActivatesOn is the predicate deciding whether a ParadigmDef applies to a
// given file. Any populated field that matches is sufficient (logical OR
// within the def; the def itself only runs its rules when activated).
type ActivatesOn struct {
	// ImportsAny activates when the file's import list contains any of
	// these module names (substring match against Import.Module).
	ImportsAny []string `toml:"imports_any"`
	// PathContains activates when the file's relative path contains any
	// of these substrings (e.g. "controllers/", "_test").
	PathContains []string `toml:"path_contains"`
	// ExtensionsAny activates when the file's extension is any of these
	// (e.g. [".tsx", ".jsx"] for a React paradigm); like the other fields
	// it is one OR alternative, not a restriction.
	ExtensionsAny []string `toml:"extensions_any"`
}

// ReclassifyRule rewrites an entity's Kind when its name or container
// matches a naming convention the base extractor can't see (e.g. any
// function whose name starts with "use" inside a .tsx file is a hook).
type ReclassifyRule struct {
	// NamePrefix / NameSuffix / NameContains match against Name.
	NamePrefix   string `toml:"name_prefix"`
	NameSuffix   string `toml:"name_suffix"`
	NameContains string `toml:"name_contains"`
	// FromKind restricts the rule to entities currently of this kind;
	// empty matches any kind.
	FromKind string `toml:"from_kind"`
	// NameCapitalized requires Name's first rune to be upper-case, the
	// convention JSX component functions follow.
	NameCapitalized bool `toml:"name_capitalized"`
	// ToKind is the EntityKind string to assign on match.
	ToKind string `toml:"to_kind"`
}

// EntityQuery is a tree-sitter s-expression pattern whose matches become
// synthesized RawEntity records the default extractor would never produce
// on its own - React hooks, route handlers, and the like.
type EntityQuery struct {
	// Pattern is the raw tree-sitter query text, compiled once and cached
	// by (Language, Pattern) in a QueryCache.
	Pattern string `toml:"pattern"`
	// CaptureName is the @capture whose node text becomes the synthesized
	// entity's Name.
	CaptureName string `toml:"capture_name"`
	// Kind is the EntityKind assigned to every match.
	Kind string `toml:"kind"`
}

// FeatureSeed appends a fixed semantic_features string to every entity
// matching Match* fields, with FeatureSource "auto" - the one
// non-"manual"/"llm" provenance a rule is allowed to set.
type FeatureSeed struct {
	NamePrefix   string `toml:"name_prefix"`
	NameContains string `toml:"name_contains"`
	Kind         string `toml:"kind"`
	Feature      string `toml:"feature"`
}

// ParadigmDef is one named, independently-activating rule bundle.
type ParadigmDef struct {
	Name         string            `toml:"name"`
	Language     string            `toml:"language"`
	ActivatesOn  ActivatesOn       `toml:"activates_on"`
	Reclassify   []ReclassifyRule  `toml:"reclassify"`
	EntityQuery  []EntityQuery     `toml:"entity_queries"`
	FeatureSeeds []FeatureSeed     `toml:"feature_seeds"`
}
