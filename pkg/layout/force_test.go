package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/parallax-vis/parallax/pkg/common"
)

func graphNodes(names ...string) []common.GraphNode {
	nodes := make([]common.GraphNode, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, common.GraphNode{
			Entity: common.Entity{Name: name},
			Radius: 5,
		})
	}
	return nodes
}

func TestRunForcePrincipalPinned(t *testing.T) {
	nodes := graphNodes("P", "A", "B", "C")
	links := []common.Link{
		{A: "P", B: "A", Strength: 1},
		{A: "P", B: "B", Strength: 0.5},
		{A: "A", B: "C", Strength: 0.2},
	}
	cfg := ForceConfig{Width: 1000, Height: 800}
	got := RunForce(nodes, links, "P", cfg, rand.New(rand.NewSource(1)))

	for _, n := range got {
		if n.Name != "P" {
			continue
		}
		if !n.Pinned {
			t.Error("principal not pinned")
		}
		if n.X != 500 || n.Y != 400 {
			t.Errorf("principal at (%v, %v), want viewport center (500, 400)", n.X, n.Y)
		}
	}
}

func TestRunForcePinnedNodeUnmoved(t *testing.T) {
	nodes := graphNodes("P", "A", "B")
	nodes[1].X = 120
	nodes[1].Y = 340
	nodes[1].Pinned = true
	links := []common.Link{{A: "P", B: "A", Strength: 1}, {A: "P", B: "B", Strength: 1}}

	got := RunForce(nodes, links, "P", ForceConfig{}, rand.New(rand.NewSource(1)))
	if got[1].X != 120 || got[1].Y != 340 {
		t.Errorf("pinned node moved to (%v, %v)", got[1].X, got[1].Y)
	}
}

func TestRunForceSeparatesNodes(t *testing.T) {
	nodes := graphNodes("P", "A", "B", "C", "D")
	got := RunForce(nodes, nil, "P", ForceConfig{}, rand.New(rand.NewSource(5)))

	for i := range got {
		for j := i + 1; j < len(got); j++ {
			dist := math.Hypot(got[j].X-got[i].X, got[j].Y-got[i].Y)
			minDist := got[i].Radius + got[j].Radius
			if dist < minDist {
				t.Errorf("%s and %s overlap: dist %v < %v", got[i].Name, got[j].Name, dist, minDist)
			}
		}
	}
}

func TestRunForceEmpty(t *testing.T) {
	got := RunForce(nil, nil, "P", ForceConfig{}, rand.New(rand.NewSource(1)))
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
