package engine

import (
	"fmt"

	"github.com/aretw0/tramita/pkg/domain"
)

// BuildTree assembles the flat, path-annotated hierarchy rows into a rooted
// forest. Parents are located by composite key: a child's parent must have
// the child's parent_id as its step id and the child's path minus its last
// segment as its path. Children keep input order; no re-sorting happens.
// Orphans and shadowed duplicate keys are reported on the result, never
// silently discarded.
func BuildTree(flat []domain.FlatNode) *domain.TreeResult {
	res := &domain.TreeResult{}

	index := make(map[string]*domain.Node, len(flat))
	nodes := make([]*domain.Node, 0, len(flat))
	for _, f := range flat {
		n := &domain.Node{FlatNode: f}
		if prev, ok := index[f.Key()]; ok {
			res.Duplicates = append(res.Duplicates, prev.FlatNode)
		}
		index[f.Key()] = n
		nodes = append(nodes, n)
	}

	for _, n := range nodes {
		if n.ParentID == nil {
			res.Roots = append(res.Roots, n)
			continue
		}

		parentKey := fmt.Sprintf("%d|%s", *n.ParentID, n.ParentPath())
		parent, ok := index[parentKey]
		if !ok || parent == n {
			res.Orphans = append(res.Orphans, n.FlatNode)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	return res
}

// Flatten returns the forest as a list in depth-first pre-order, following
// each node's child order.
func Flatten(roots []*domain.Node) []*domain.Node {
	var out []*domain.Node
	var walk func(*domain.Node)
	walk = func(n *domain.Node) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// CountNodes counts every node placed in the forest, nested included.
func CountNodes(roots []*domain.Node) int {
	return len(Flatten(roots))
}
