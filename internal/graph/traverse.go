package graph

// Traversal queries over an AdjGraph. The bounded explore walk lives in
// internal/nav; the helpers here answer the unbounded questions the
// navigation surface exposes on top of it: full reachability (BFS),
// impact chains (ShortestPath), and cycle diagnostics (FindCycles).
// Node ids are entity ids or dangling external symbols - traversal does
// not care which, it follows whatever the dependency edges recorded.

// neighbors resolves a direction string to the adjacency list it walks:
// "reverse" follows edges target-to-source (who depends on this entity),
// anything else source-to-target (what this entity depends on).
func (g *AdjGraph) neighbors(direction string) map[string][]string {
	if direction == "reverse" {
		return g.ReverseEdges
	}
	return g.Edges
}

// BFS returns every node reachable from start in breadth-first order,
// start first. With direction "reverse" it walks dependents instead of
// dependencies, which is how "what breaks if this entity changes" is
// answered.
func (g *AdjGraph) BFS(start string, direction string) []string {
	adjacent := g.neighbors(direction)

	order := []string{start}
	seen := map[string]struct{}{start: {}}

	for cursor := 0; cursor < len(order); cursor++ {
		for _, next := range adjacent[order[cursor]] {
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			order = append(order, next)
		}
	}
	return order
}

// ShortestPath returns the fewest-hop dependency chain from start to end,
// both endpoints included, or nil when end is unreachable. The chain is
// the shortest explanation of why one entity's change reaches another;
// "reverse" finds the chain through dependents instead.
func (g *AdjGraph) ShortestPath(start, end, direction string) []string {
	if start == end {
		return []string{start}
	}
	adjacent := g.neighbors(direction)

	cameFrom := map[string]string{start: ""}
	frontier := []string{start}

	for len(frontier) > 0 {
		node := frontier[0]
		frontier = frontier[1:]

		for _, next := range adjacent[node] {
			if _, ok := cameFrom[next]; ok {
				continue
			}
			cameFrom[next] = node
			if next == end {
				return unwindPath(cameFrom, end)
			}
			frontier = append(frontier, next)
		}
	}
	return nil
}

// unwindPath rebuilds the start..end chain from the BFS predecessor map.
func unwindPath(cameFrom map[string]string, end string) []string {
	var path []string
	for node := end; node != ""; node = cameFrom[node] {
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindCycles reports whether the dependency edges contain a cycle and
// returns one example, closed (the first id repeated at the end). Cycles
// are legal in the graph - mutual recursion, re-export loops - so this is
// a diagnostic, not a validation failure.
func (g *AdjGraph) FindCycles() (bool, []string) {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.Edges))
	cameFrom := make(map[string]string)

	var backFrom, backTo string
	var walk func(node string) bool
	walk = func(node string) bool {
		state[node] = onStack
		for _, next := range g.Edges[node] {
			switch state[next] {
			case onStack:
				backFrom, backTo = node, next
				return true
			case unvisited:
				cameFrom[next] = node
				if walk(next) {
					return true
				}
			}
		}
		state[node] = done
		return false
	}

	for node := range g.Edges {
		if state[node] == unvisited && walk(node) {
			var chain []string
			for n := backFrom; n != backTo; n = cameFrom[n] {
				chain = append(chain, n)
			}
			cycle := []string{backTo}
			for i := len(chain) - 1; i >= 0; i-- {
				cycle = append(cycle, chain[i])
			}
			cycle = append(cycle, backTo)
			return true, cycle
		}
	}
	return false, nil
}
