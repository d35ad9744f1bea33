package graph

import (
	"github.com/userFRM/rpg-encoder-sub002/internal/extract"
)

// moduleQualifiedName is the caller_entity/qualified-name convention for
// file-top-level constructs. Assemble synthesizes one Module entity per
// file under this name to host file-level imports and calls, so every
// DependencyEdge's source still names a real entity.
const moduleQualifiedName = "<module>"

// Assemble merges a batch of FileResults into a single RPGraph: one Entity
// per RawEntity (plus a synthesized per-file Module entity when needed),
// and one DependencyEdge per Call/Import/Inherit/Compose record. Results
// may arrive in any order - entity ids dedupe on insert - but iterating
// results in their given order keeps output deterministic.
func Assemble(language string, results []FileResult) *RPGraph {
	g := NewRPGraph(language)
	byName := make(map[string][]string) // bare Name -> candidate entity ids, for best-effort Call target resolution

	for _, res := range results {
		if res.Err != nil || len(res.Entities) == 0 && !fileNeedsModuleEntity(res.Deps) {
			continue
		}
		insertModuleEntityIfNeeded(g, res)
		for i := range res.Entities {
			e := toGraphEntity(res.Entities[i])
			g.InsertEntity(e)
			byName[e.Name] = append(byName[e.Name], e.ID)
		}
	}

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		addDependencyEdges(g, res, byName)
	}

	g.RefreshMetadata()
	return g
}

func fileNeedsModuleEntity(deps extract.FileDeps) bool {
	if len(deps.Imports) > 0 || len(deps.Inherits) > 0 || len(deps.Composes) > 0 {
		return true
	}
	for _, c := range deps.Calls {
		if c.CallerEntity == moduleQualifiedName {
			return true
		}
	}
	return false
}

func insertModuleEntityIfNeeded(g *RPGraph, res FileResult) {
	if !fileNeedsModuleEntity(res.Deps) {
		return
	}
	ensureModuleEntity(g, res.File)
}

// ensureModuleEntity inserts the per-file Module entity if it doesn't exist
// yet and returns its id. Also used as the edge-lowering fallback: a record
// whose caller qualified name never became an entity (an unextracted
// construct, a paradigm-synthesized name) still needs a real source id.
func ensureModuleEntity(g *RPGraph, file string) string {
	id := EntityID(file, moduleQualifiedName)
	if _, exists := g.GetEntity(id); !exists {
		g.InsertEntity(&Entity{
			ID:               id,
			Kind:             KindModule,
			Name:             moduleQualifiedName,
			File:             file,
			SemanticFeatures: []string{},
		})
	}
	return id
}

func toGraphEntity(raw extract.RawEntity) *Entity {
	source := FeatureSource("")
	if raw.FeatureSource != "" {
		source = FeatureSource(raw.FeatureSource)
	}
	features := raw.SemanticFeatures
	if features == nil {
		features = []string{}
	}
	return &Entity{
		ID:               EntityID(raw.File, raw.QualifiedName),
		Kind:             EntityKind(raw.Kind),
		Name:             raw.Name,
		File:             raw.File,
		LineStart:        raw.LineStart,
		LineEnd:          raw.LineEnd,
		ParentClass:      raw.ParentClass,
		SemanticFeatures: features,
		FeatureSource:    source,
	}
}

// addDependencyEdges lowers one file's extract.FileDeps into graph-level
// DependencyEdges. The source is always the file-scoped entity id of the
// record's owning construct (an extracted entity, or the synthesized
// Module entity for file-top-level records); the target is resolved
// best-effort and may legitimately dangle.
func addDependencyEdges(g *RPGraph, res FileResult, byName map[string][]string) {
	callerID := func(qualifiedName string) string {
		return EntityID(res.File, qualifiedName)
	}

	for _, imp := range res.Deps.Imports {
		src := callerID(moduleQualifiedName)
		g.AddEdge(DependencyEdge{Source: src, Target: imp.Module, Kind: DepImports})
		if e, ok := g.GetEntity(src); ok {
			e.Deps.Imports = append(e.Deps.Imports, imp.Module)
		}
	}
	for _, call := range res.Deps.Calls {
		source := callerID(call.CallerEntity)
		if _, ok := g.GetEntity(source); !ok {
			source = ensureModuleEntity(g, res.File)
		}
		target := resolveCallTarget(g, res.File, call.Callee, byName)
		g.AddEdge(DependencyEdge{Source: source, Target: target, Kind: DepInvokes})
		if e, ok := g.GetEntity(source); ok {
			e.Deps.Calls = append(e.Deps.Calls, call.Callee)
		}
	}
	for _, inh := range res.Deps.Inherits {
		source := callerID(inh.ChildClass)
		if _, ok := g.GetEntity(source); !ok {
			source = ensureModuleEntity(g, res.File)
		}
		target := resolveCallTarget(g, res.File, inh.ParentClass, byName)
		g.AddEdge(DependencyEdge{Source: source, Target: target, Kind: DepInherits})
		if e, ok := g.GetEntity(source); ok {
			e.Deps.Inherits = append(e.Deps.Inherits, inh.ParentClass)
		}
	}
	for _, comp := range res.Deps.Composes {
		src := callerID(moduleQualifiedName)
		g.AddEdge(DependencyEdge{Source: src, Target: comp.TargetName, Kind: DepComposes})
		if e, ok := g.GetEntity(src); ok {
			e.Deps.Composes = append(e.Deps.Composes, comp.TargetName)
		}
	}
}

// resolveCallTarget prefers a same-file entity whose bare Name matches
// callee, falls back to any entity in the graph with that name, and
// otherwise returns callee itself - a dangling target naming an external
// symbol.
func resolveCallTarget(g *RPGraph, file, callee string, byName map[string][]string) string {
	sameFileID := EntityID(file, callee)
	if _, ok := g.GetEntity(sameFileID); ok {
		return sameFileID
	}
	ids := byName[callee]
	for _, id := range ids {
		if e, ok := g.GetEntity(id); ok && e.File == file {
			return id
		}
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return callee
}
