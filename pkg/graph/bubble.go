package graph

import (
	"sort"

	"github.com/parallax-vis/parallax/pkg/common"
)

// BuildCooccurrence folds the unlocated-event bucket into a co-occurrence
// network: every record defines an edge between its actor and target.
// Nodes come back sorted by descending degree (record count), ties by
// first appearance; links are deduplicated by unordered pair.
func BuildCooccurrence(rels []common.Relationship) ([]common.BubbleNode, []common.Link) {
	byPerson := make(map[string]*common.BubbleNode)
	var order []string

	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		for _, name := range []string{rel.Actor, rel.Target} {
			node, ok := byPerson[name]
			if !ok {
				node = &common.BubbleNode{Name: name}
				byPerson[name] = node
				order = append(order, name)
			}
			node.Relationships = append(node.Relationships, rel)
			node.Degree++
		}
	}

	nodes := make([]common.BubbleNode, 0, len(order))
	for _, name := range order {
		nodes = append(nodes, *byPerson[name])
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Degree > nodes[j].Degree
	})

	return nodes, BuildLinks(rels, nil)
}
