package graph

import "strings"

// LowestCommonAncestorDir returns the longest directory prefix shared by
// every entity filed anywhere under node's subtree. It grounds a
// hierarchy node in the file system: a node whose entities all live under
// "internal/parser/" has LCA dir "internal/parser"; a node whose entities
// are scattered has a shorter (possibly empty, meaning project root) LCA.
// Used as an advisory placement signal, not a ranking input - Search's
// tiebreak stays plain hierarchy depth.
func (g *RPGraph) LowestCommonAncestorDir(node *HierarchyNode) string {
	var dirs [][]string
	collectEntityDirs(g, node, &dirs)
	if len(dirs) == 0 {
		return ""
	}
	common := dirs[0]
	for _, d := range dirs[1:] {
		common = commonDirPrefix(common, d)
		if len(common) == 0 {
			break
		}
	}
	return strings.Join(common, "/")
}

func collectEntityDirs(g *RPGraph, node *HierarchyNode, out *[][]string) {
	for _, id := range node.Entities {
		if e, ok := g.GetEntity(id); ok {
			*out = append(*out, fileDirSegments(e.File))
		}
	}
	for _, child := range node.Children {
		collectEntityDirs(g, child, out)
	}
}

// fileDirSegments splits a "/"-separated relative file path into its
// directory segments, dropping the file name itself. "main.rs" (no
// directory) yields an empty slice.
func fileDirSegments(file string) []string {
	idx := strings.LastIndex(file, "/")
	if idx < 0 {
		return []string{}
	}
	return strings.Split(file[:idx], "/")
}

func commonDirPrefix(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// HierarchyNode is a single node of the V_H tree: a functional grouping
// that owns child groupings and/or entity ids.
type HierarchyNode struct {
	ID       string                    `json:"id"`
	Name     string                    `json:"name"`
	Children map[string]*HierarchyNode `json:"children"`
	Entities []string                  `json:"entities"`
}

func newHierarchyNode(id, name string) *HierarchyNode {
	return &HierarchyNode{
		ID:       id,
		Name:     name,
		Children: make(map[string]*HierarchyNode),
		Entities: []string{},
	}
}

// EntityCount recursively sums entity ids attached anywhere in this subtree.
func (n *HierarchyNode) EntityCount() int {
	count := len(n.Entities)
	for _, child := range n.Children {
		count += child.EntityCount()
	}
	return count
}

// hierarchyNodeID builds the "h:<slash-path>" id for a hierarchy path.
func hierarchyNodeID(path string) string {
	return "h:" + path
}

// splitHierarchyPath splits a "/"-separated path into segments, dropping
// empty segments produced by leading/trailing/duplicate slashes.
func splitHierarchyPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}
