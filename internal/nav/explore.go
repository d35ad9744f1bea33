package nav

import "github.com/userFRM/rpg-encoder-sub002/internal/graph"

// Explore performs a bounded, breadth-first dependency walk from seed,
// stopping at maxDepth hops and optionally restricted to kinds (nil/empty
// means all edge kinds). Returns the reached node ids and the edges between
// them, a sub-graph view rather than a copy of the full graph.
func Explore(g *graph.RPGraph, seed string, maxDepth int, kinds map[graph.DepKind]bool) *ExploreResult {
	adj := graph.BuildAdjGraph(g.Edges, kinds)
	nodes := bfsBounded(adj, seed, maxDepth)

	nodeSet := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = struct{}{}
	}

	edges := make([]graph.DependencyEdge, 0)
	for _, e := range g.Edges {
		if len(kinds) > 0 && !kinds[e.Kind] {
			continue
		}
		_, srcIn := nodeSet[e.Source]
		_, dstIn := nodeSet[e.Target]
		if srcIn && dstIn {
			edges = append(edges, e)
		}
	}

	return &ExploreResult{Seed: seed, Nodes: nodes, Edges: edges}
}

// PathBetween returns the shortest dependency chain from one entity id to
// another, both endpoints included, optionally restricted to kinds
// (nil/empty means all edge kinds). Nil when no chain exists. This is the
// "impact path" answer: the fewest hops by which a change in from reaches
// to.
func PathBetween(g *graph.RPGraph, from, to string, kinds map[graph.DepKind]bool) []string {
	adj := graph.BuildAdjGraph(g.Edges, kinds)
	return adj.ShortestPath(from, to, "forward")
}

// FindCycle reports one dependency cycle in the graph, if any, optionally
// restricted to kinds. The cycle comes back closed (first id repeated at
// the end). Cycles are legal - this is a diagnostic surface, not a
// validation failure.
func FindCycle(g *graph.RPGraph, kinds map[graph.DepKind]bool) (bool, []string) {
	adj := graph.BuildAdjGraph(g.Edges, kinds)
	return adj.FindCycles()
}

// bfsBounded is graph.AdjGraph.BFS with a hop-count ceiling: maxDepth <= 0
// means unbounded (same as a plain BFS from seed).
func bfsBounded(adj *graph.AdjGraph, seed string, maxDepth int) []string {
	if maxDepth <= 0 {
		return adj.BFS(seed, "forward")
	}

	visited := map[string]struct{}{seed: {}}
	result := []string{seed}
	frontier := []string{seed}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, n := range frontier {
			for _, succ := range adj.Successors(n) {
				if _, seen := visited[succ]; seen {
					continue
				}
				visited[succ] = struct{}{}
				result = append(result, succ)
				next = append(next, succ)
			}
		}
		frontier = next
	}
	return result
}
