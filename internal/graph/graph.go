// Package graph resolves the depends_on references of one epic into a
// dependency graph over its task ids.
package graph

import (
	"slices"

	"github.com/kazz187/pmgraph/internal/document"
)

// Node is one task as seen by the graph builder.
type Node struct {
	ID        string
	DependsOn []string
}

// Dangling is a reference to a task id that does not exist in the epic.
type Dangling struct {
	Task string
	Ref  string
}

// Graph holds the resolved prerequisite edges of an epic. Edges only connect
// tasks of the same epic; references that resolve nowhere are kept in
// Dangling instead.
type Graph struct {
	ids      []string
	prereqs  map[string][]string
	Dangling []Dangling
}

// Build resolves every node's depends_on against the ids present in nodes.
// Prerequisites are deduplicated and kept in id order.
func Build(nodes []Node) *Graph {
	g := &Graph{prereqs: make(map[string][]string, len(nodes))}
	for _, n := range nodes {
		if _, ok := g.prereqs[n.ID]; !ok {
			g.ids = append(g.ids, n.ID)
		}
		g.prereqs[n.ID] = nil
	}
	slices.SortFunc(g.ids, compareIDs)

	for _, n := range nodes {
		seen := make(map[string]bool, len(n.DependsOn))
		var resolved []string
		for _, ref := range n.DependsOn {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			if _, ok := g.prereqs[ref]; !ok {
				g.Dangling = append(g.Dangling, Dangling{Task: n.ID, Ref: ref})
				continue
			}
			resolved = append(resolved, ref)
		}
		slices.SortFunc(resolved, compareIDs)
		g.prereqs[n.ID] = resolved
	}
	slices.SortFunc(g.Dangling, func(a, b Dangling) int {
		if c := compareIDs(a.Task, b.Task); c != 0 {
			return c
		}
		return compareIDs(a.Ref, b.Ref)
	})
	return g
}

// Prerequisites returns the resolved prerequisites of id.
func (g *Graph) Prerequisites(id string) []string {
	return g.prereqs[id]
}

func compareIDs(a, b string) int {
	switch {
	case document.CompareIDs(a, b):
		return -1
	case document.CompareIDs(b, a):
		return 1
	default:
		return 0
	}
}
