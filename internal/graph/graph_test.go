package graph

import (
	"reflect"
	"sort"
	"testing"
)

// callChainEdges models a small service: main wires a server, the server
// builds a router, the router installs a handler, the handler logs. The
// module-level import edge and the dangling stdlib target are there on
// purpose - traversal must not care whether a node resolves to an entity.
func callChainEdges() []DependencyEdge {
	return []DependencyEdge{
		{Source: "main.go:main", Target: "server.go:NewServer", Kind: DepInvokes},
		{Source: "main.go:main", Target: "config.go:Load", Kind: DepInvokes},
		{Source: "server.go:NewServer", Target: "router.go:NewRouter", Kind: DepInvokes},
		{Source: "router.go:NewRouter", Target: "handler.go:Handle", Kind: DepInvokes},
		{Source: "handler.go:Handle", Target: "logger.go:Log", Kind: DepInvokes},
		{Source: "server.go:<module>", Target: "net/http", Kind: DepImports},
	}
}

func TestBuildAdjGraphFromEdges(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	if g.EdgeCount() != 6 {
		t.Errorf("expected 6 edges, got %d", g.EdgeCount())
	}
	succ := g.Successors("main.go:main")
	sort.Strings(succ)
	want := []string{"config.go:Load", "server.go:NewServer"}
	if !reflect.DeepEqual(succ, want) {
		t.Errorf("Successors(main) = %v, want %v", succ, want)
	}
	if pred := g.Predecessors("logger.go:Log"); len(pred) != 1 || pred[0] != "handler.go:Handle" {
		t.Errorf("Predecessors(Log) = %v, want [handler.go:Handle]", pred)
	}
}

func TestBuildAdjGraphKindFilter(t *testing.T) {
	onlyCalls := BuildAdjGraph(callChainEdges(), map[DepKind]bool{DepInvokes: true})

	if onlyCalls.EdgeCount() != 5 {
		t.Errorf("expected 5 Invokes edges, got %d", onlyCalls.EdgeCount())
	}
	if succ := onlyCalls.Successors("server.go:<module>"); len(succ) != 0 {
		t.Errorf("expected the Imports edge to be filtered out, got %v", succ)
	}
}

func TestBFSReachesTransitiveCallees(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), map[DepKind]bool{DepInvokes: true})

	reached := g.BFS("main.go:main", "forward")
	if reached[0] != "main.go:main" {
		t.Fatalf("expected BFS to start at the seed, got %v", reached)
	}
	if len(reached) != 6 {
		t.Fatalf("expected 6 reachable nodes, got %d: %v", len(reached), reached)
	}
	// one hop (NewServer, Load) must come before two hops (NewRouter)
	pos := make(map[string]int, len(reached))
	for i, id := range reached {
		pos[id] = i
	}
	if pos["server.go:NewServer"] > pos["router.go:NewRouter"] {
		t.Errorf("BFS order violated: %v", reached)
	}
}

func TestBFSReverseWalksCallers(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), map[DepKind]bool{DepInvokes: true})

	callers := g.BFS("logger.go:Log", "reverse")
	want := []string{"logger.go:Log", "handler.go:Handle", "router.go:NewRouter", "server.go:NewServer", "main.go:main"}
	if !reflect.DeepEqual(callers, want) {
		t.Errorf("reverse BFS = %v, want %v", callers, want)
	}
}

func TestBFSDanglingTargetIsWalkable(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	reached := g.BFS("server.go:<module>", "forward")
	if len(reached) != 2 || reached[1] != "net/http" {
		t.Errorf("expected the dangling import target to be reachable, got %v", reached)
	}
}

func TestShortestPathPrefersDirectChain(t *testing.T) {
	edges := append(callChainEdges(),
		// a shortcut: main also calls the handler directly
		DependencyEdge{Source: "main.go:main", Target: "handler.go:Handle", Kind: DepInvokes},
	)
	g := BuildAdjGraph(edges, nil)

	path := g.ShortestPath("main.go:main", "logger.go:Log", "forward")
	want := []string{"main.go:main", "handler.go:Handle", "logger.go:Log"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("expected the 2-hop chain, got %v", path)
	}
}

func TestShortestPathUnreachableIsNil(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	if path := g.ShortestPath("config.go:Load", "logger.go:Log", "forward"); path != nil {
		t.Errorf("expected nil for an unreachable entity, got %v", path)
	}
}

func TestShortestPathSameEntity(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	path := g.ShortestPath("main.go:main", "main.go:main", "forward")
	if len(path) != 1 || path[0] != "main.go:main" {
		t.Errorf("expected the single-node path, got %v", path)
	}
}

func TestShortestPathReverseFindsCallerChain(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	path := g.ShortestPath("logger.go:Log", "main.go:main", "reverse")
	want := []string{"logger.go:Log", "handler.go:Handle", "router.go:NewRouter", "server.go:NewServer", "main.go:main"}
	if !reflect.DeepEqual(path, want) {
		t.Errorf("reverse path = %v, want %v", path, want)
	}
}

func TestFindCyclesMutualRecursion(t *testing.T) {
	edges := []DependencyEdge{
		{Source: "proto.go:encode", Target: "proto.go:encodeField", Kind: DepInvokes},
		{Source: "proto.go:encodeField", Target: "proto.go:encode", Kind: DepInvokes},
		{Source: "main.go:main", Target: "proto.go:encode", Kind: DepInvokes},
	}
	g := BuildAdjGraph(edges, nil)

	found, cycle := g.FindCycles()
	if !found {
		t.Fatal("expected the mutual recursion to be reported as a cycle")
	}
	if len(cycle) < 3 || cycle[0] != cycle[len(cycle)-1] {
		t.Fatalf("expected a closed cycle, got %v", cycle)
	}
	members := make(map[string]bool)
	for _, id := range cycle {
		members[id] = true
	}
	if !members["proto.go:encode"] || !members["proto.go:encodeField"] {
		t.Errorf("expected both mutually recursive entities in the cycle, got %v", cycle)
	}
}

func TestFindCyclesSelfRecursion(t *testing.T) {
	edges := []DependencyEdge{
		{Source: "walk.go:visit", Target: "walk.go:visit", Kind: DepInvokes},
	}
	g := BuildAdjGraph(edges, nil)

	found, cycle := g.FindCycles()
	if !found {
		t.Fatal("expected self-recursion to count as a cycle")
	}
	want := []string{"walk.go:visit", "walk.go:visit"}
	if !reflect.DeepEqual(cycle, want) {
		t.Errorf("expected %v, got %v", want, cycle)
	}
}

func TestFindCyclesAcyclicChain(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	if found, cycle := g.FindCycles(); found {
		t.Errorf("expected no cycle in the call chain, got %v", cycle)
	}
}

func TestSubgraphDropsOutsideEdges(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	keep := []string{"main.go:main", "server.go:NewServer", "router.go:NewRouter"}
	sub := g.Subgraph(keep)

	if sub.NodeCount() != 3 {
		t.Errorf("expected 3 nodes in subgraph, got %d", sub.NodeCount())
	}
	if succ := sub.Successors("main.go:main"); len(succ) != 1 || succ[0] != "server.go:NewServer" {
		t.Errorf("expected only the in-subgraph edge from main, got %v", succ)
	}
	// router's edge to handler.go:Handle points outside the kept set
	if succ := sub.Successors("router.go:NewRouter"); len(succ) != 0 {
		t.Errorf("expected router's outside edge to be dropped, got %v", succ)
	}
}

func TestNodesListsEdgeSources(t *testing.T) {
	g := BuildAdjGraph(callChainEdges(), nil)

	nodes := g.Nodes()
	sort.Strings(nodes)
	want := []string{"handler.go:Handle", "main.go:main", "router.go:NewRouter", "server.go:<module>", "server.go:NewServer"}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("Nodes() = %v, want %v", nodes, want)
	}
}
