package graph

// AdjGraph is an in-memory adjacency-list view over an RPGraph's
// dependency edges, used by the explore navigation operation for bounded,
// cycle-safe traversal. It intentionally drops edge kind/metadata - it is
// a pure reachability structure, not a second source of truth.
type AdjGraph struct {
	Edges        map[string][]string
	ReverseEdges map[string][]string
}

// BuildAdjGraph constructs an AdjGraph from an RPGraph's edges, optionally
// filtered to a set of dependency kinds (nil/empty means all kinds).
func BuildAdjGraph(edges []DependencyEdge, kinds map[DepKind]bool) *AdjGraph {
	g := &AdjGraph{
		Edges:        make(map[string][]string),
		ReverseEdges: make(map[string][]string),
	}

	for _, dep := range edges {
		if len(kinds) > 0 && !kinds[dep.Kind] {
			continue
		}
		if _, ok := g.Edges[dep.Source]; !ok {
			g.Edges[dep.Source] = []string{}
		}
		if _, ok := g.ReverseEdges[dep.Target]; !ok {
			g.ReverseEdges[dep.Target] = []string{}
		}
		g.Edges[dep.Source] = append(g.Edges[dep.Source], dep.Target)
		g.ReverseEdges[dep.Target] = append(g.ReverseEdges[dep.Target], dep.Source)
	}

	return g
}

// NodeCount returns the number of nodes keyed in Edges: every edge source
// for a BuildAdjGraph result, every kept node for a Subgraph.
func (g *AdjGraph) NodeCount() int {
	return len(g.Edges)
}

// EdgeCount returns the total number of edges.
func (g *AdjGraph) EdgeCount() int {
	count := 0
	for _, targets := range g.Edges {
		count += len(targets)
	}
	return count
}

// Successors returns nodes that this node depends on.
func (g *AdjGraph) Successors(node string) []string {
	return g.Edges[node]
}

// Predecessors returns nodes that depend on this node.
func (g *AdjGraph) Predecessors(node string) []string {
	return g.ReverseEdges[node]
}

// Nodes returns all node IDs keyed in Edges (see NodeCount).
func (g *AdjGraph) Nodes() []string {
	nodes := make([]string, 0, len(g.Edges))
	for node := range g.Edges {
		nodes = append(nodes, node)
	}
	return nodes
}

// Subgraph creates a new graph containing only the specified nodes and the
// edges between them.
func (g *AdjGraph) Subgraph(nodes []string) *AdjGraph {
	nodeSet := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = struct{}{}
	}

	sub := &AdjGraph{
		Edges:        make(map[string][]string),
		ReverseEdges: make(map[string][]string),
	}

	for _, node := range nodes {
		sub.Edges[node] = []string{}
		sub.ReverseEdges[node] = []string{}

		for _, target := range g.Edges[node] {
			if _, ok := nodeSet[target]; ok {
				sub.Edges[node] = append(sub.Edges[node], target)
			}
		}
		for _, source := range g.ReverseEdges[node] {
			if _, ok := nodeSet[source]; ok {
				sub.ReverseEdges[node] = append(sub.ReverseEdges[node], source)
			}
		}
	}

	return sub
}
