package graph

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/parallax-vis/parallax/pkg/common"
)

func TestHopDistances(t *testing.T) {
	tests := []struct {
		name      string
		links     []common.Link
		principal string
		want      map[string]int
	}{
		{
			name:      "no links yields principal only",
			links:     nil,
			principal: "A",
			want:      map[string]int{"A": 0},
		},
		{
			name: "chain distances",
			links: []common.Link{
				{A: "A", B: "B"},
				{A: "B", B: "C"},
				{A: "C", B: "D"},
			},
			principal: "A",
			want:      map[string]int{"A": 0, "B": 1, "C": 2, "D": 3},
		},
		{
			name: "shortcut wins over long path",
			links: []common.Link{
				{A: "A", B: "B"},
				{A: "B", B: "C"},
				{A: "C", B: "D"},
				{A: "A", B: "D"},
			},
			principal: "A",
			want:      map[string]int{"A": 0, "B": 1, "C": 2, "D": 1},
		},
		{
			name: "disconnected component absent",
			links: []common.Link{
				{A: "A", B: "B"},
				{A: "X", B: "Y"},
			},
			principal: "A",
			want:      map[string]int{"A": 0, "B": 1},
		},
		{
			name: "undirected traversal",
			links: []common.Link{
				{A: "B", B: "A"},
				{A: "C", B: "B"},
			},
			principal: "A",
			want:      map[string]int{"A": 0, "B": 1, "C": 2},
		},
		{
			name: "cycle does not loop",
			links: []common.Link{
				{A: "A", B: "B"},
				{A: "B", B: "C"},
				{A: "C", B: "A"},
			},
			principal: "A",
			want:      map[string]int{"A": 0, "B": 1, "C": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HopDistances(tt.links, tt.principal)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("HopDistances() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHopDistancesLargeChain(t *testing.T) {
	// An iterative BFS must survive a path far deeper than any call stack
	// a recursive walk would tolerate.
	const n = 50000
	links := make([]common.Link, 0, n)
	prev := "e0"
	for i := 1; i <= n; i++ {
		cur := nodeName(i)
		links = append(links, common.Link{A: prev, B: cur})
		prev = cur
	}
	got := HopDistances(links, "e0")
	if got[nodeName(n)] != n {
		t.Errorf("distance to chain end = %d, want %d", got[nodeName(n)], n)
	}
}

func nodeName(i int) string {
	return "e" + strconv.Itoa(i)
}
