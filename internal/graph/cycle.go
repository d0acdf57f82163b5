package graph

import (
	"slices"
	"strings"
)

// Cycles returns one witness path per distinct cycle reachable by a
// depth-first search in id order. A path starts and ends with the same id,
// e.g. [1 2 1]; a self dependency yields [3 3]. Each cycle is rotated to
// start at its smallest id.
func (g *Graph) Cycles() [][]string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(g.ids))
	var stack []string
	var cycles [][]string
	seen := make(map[string]bool)

	var dfs func(u string)
	dfs = func(u string) {
		color[u] = gray
		stack = append(stack, u)
		for _, v := range g.prereqs[u] {
			switch color[v] {
			case white:
				dfs(v)
			case gray:
				// Back edge u -> v: the cycle is the stack from v to u.
				start := slices.Index(stack, v)
				cycle := normalize(stack[start:])
				key := strings.Join(cycle, ",")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[u] = black
	}

	for _, id := range g.ids {
		if color[id] == white {
			dfs(id)
		}
	}
	slices.SortFunc(cycles, func(a, b []string) int {
		return slices.CompareFunc(a, b, compareIDs)
	})
	return cycles
}

// normalize rotates members to start at the smallest id and closes the path.
func normalize(members []string) []string {
	minIdx := 0
	for i, id := range members {
		if compareIDs(id, members[minIdx]) < 0 {
			minIdx = i
		}
	}
	out := make([]string, 0, len(members)+1)
	out = append(out, members[minIdx:]...)
	out = append(out, members[:minIdx]...)
	return append(out, out[0])
}
