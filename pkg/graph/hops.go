package graph

import "github.com/parallax-vis/parallax/pkg/common"

// HopDistances computes the shortest undirected graph distance from the
// principal entity to every reachable entity in links. Unreachable
// entities are absent from the result; callers treat absence as infinite
// distance. The walk is an iterative breadth-first search, never a
// recursion, so it holds up on graphs with tens of thousands of entities.
func HopDistances(links []common.Link, principal string) map[string]int {
	adjacency := make(map[string][]string)
	for _, link := range links {
		if link.A == "" || link.B == "" {
			continue
		}
		adjacency[link.A] = append(adjacency[link.A], link.B)
		adjacency[link.B] = append(adjacency[link.B], link.A)
	}

	distances := map[string]int{principal: 0}
	queue := []string{principal}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range adjacency[current] {
			if _, seen := distances[neighbor]; seen {
				continue
			}
			distances[neighbor] = distances[current] + 1
			queue = append(queue, neighbor)
		}
	}
	return distances
}
