package nav

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/userFRM/rpg-encoder-sub002/internal/graph"
)

// Search ranks entities against query by fuzzy name match combined with a
// semantic_features substring bonus, tiebreaking on hierarchy depth
// (shallower first). scope, if non-empty, restricts candidates to entities
// whose hierarchy_path is scope or a descendant of it. limit clamps the
// result count; a non-positive limit is treated as unlimited.
func Search(g *graph.RPGraph, query string, mode SearchMode, scope string, limit int) []SearchResult {
	ids := g.OrderedEntityIDs()
	candidates := make([]*graph.Entity, 0, len(ids))
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		e, ok := g.GetEntity(id)
		if !ok {
			continue
		}
		if scope != "" && !inScope(e.HierarchyPath, scope) {
			continue
		}
		candidates = append(candidates, e)
		names = append(names, e.Name)
	}

	nameMatches := make(map[int]fuzzy.Match)
	if query != "" {
		for _, m := range fuzzy.Find(query, names) {
			nameMatches[m.Index] = m
		}
	}

	results := make([]SearchResult, 0, len(candidates))
	for i, e := range candidates {
		m, nameHit := nameMatches[i]
		featureHit := query != "" && featureSubstringMatch(e.SemanticFeatures, query)
		if query != "" && !nameHit && !featureHit {
			continue
		}

		score := 0.0
		if nameHit {
			score += float64(m.Score)
		}
		if featureHit {
			score += 10
		}
		if query == "" {
			score = 1
		}

		results = append(results, toSearchResult(e, score, mode))
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return hierarchyDepth(results[a].HierarchyPath) < hierarchyDepth(results[b].HierarchyPath)
	})

	if mode == ModeHierarchyOnly {
		results = dedupeByHierarchyPath(results)
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ScoredID pairs an entity id with a relevance score computed by an
// external ranking backend (e.g. a bm25 rank from the FTS5 side-index).
type ScoredID struct {
	ID    string
	Score float64
}

// SearchScored materializes SearchResults for entity ids already ranked
// by an external backend, applying the same scope filtering and mode
// shaping as Search. Input order is preserved - the backend owns the
// ranking. Ids that no longer resolve are skipped, since a derived index
// can lag the graph it was built from.
func SearchScored(g *graph.RPGraph, scored []ScoredID, mode SearchMode, scope string, limit int) []SearchResult {
	results := make([]SearchResult, 0, len(scored))
	for _, s := range scored {
		e, ok := g.GetEntity(s.ID)
		if !ok {
			continue
		}
		if scope != "" && !inScope(e.HierarchyPath, scope) {
			continue
		}
		results = append(results, toSearchResult(e, s.Score, mode))
	}

	if mode == ModeHierarchyOnly {
		results = dedupeByHierarchyPath(results)
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func toSearchResult(e *graph.Entity, score float64, mode SearchMode) SearchResult {
	r := SearchResult{
		EntityID:      e.ID,
		Name:          e.Name,
		File:          e.File,
		LineStart:     e.LineStart,
		LineEnd:       e.LineEnd,
		HierarchyPath: e.HierarchyPath,
		Score:         score,
	}
	switch mode {
	case ModeFull:
		r.SemanticFeatures = e.SemanticFeatures
	case ModeHierarchyOnly:
		// name/file/span still populated above; callers that only need the
		// path should read HierarchyPath and ignore the rest.
	default: // ModeSnippets
		if len(e.SemanticFeatures) > 3 {
			r.SemanticFeatures = e.SemanticFeatures[:3]
		} else {
			r.SemanticFeatures = e.SemanticFeatures
		}
	}
	return r
}

func featureSubstringMatch(features []string, query string) bool {
	q := strings.ToLower(query)
	for _, f := range features {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func inScope(hierarchyPath, scope string) bool {
	return hierarchyPath == scope || strings.HasPrefix(hierarchyPath, scope+"/")
}

func hierarchyDepth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, "/") + 1
}

func dedupeByHierarchyPath(results []SearchResult) []SearchResult {
	seen := make(map[string]struct{}, len(results))
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.HierarchyPath]; ok {
			continue
		}
		seen[r.HierarchyPath] = struct{}{}
		out = append(out, r)
	}
	return out
}
