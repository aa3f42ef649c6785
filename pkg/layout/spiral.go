package layout

import (
	"math"

	"github.com/parallax-vis/parallax/pkg/common"
)

// BubbleIterations is the fixed relaxation budget of the co-occurrence
// bubble map. The loop runs synchronously inside one scheduling turn, so
// the budget stays a constant rather than a tunable.
const BubbleIterations = 100

const (
	bubbleGap       = 6.0
	bubbleCentering = 0.012
	spiralStep      = 18.0
)

// BubbleLayout places co-occurrence nodes on an expanding spiral by
// insertion order, then relaxes them with pairwise overlap repulsion and
// a weak pull toward the common center. It converges to a layout free of
// gross overlap within the fixed budget for node counts up to a few
// hundred; it makes no uniqueness or optimality claim beyond that.
func BubbleLayout(nodes []common.BubbleNode) []common.BubbleNode {
	if len(nodes) == 0 {
		return nodes
	}

	maxDegree := 0
	for _, n := range nodes {
		if n.Degree > maxDegree {
			maxDegree = n.Degree
		}
	}
	for i := range nodes {
		importance := CalculateImportance(nodes[i].Degree, maxDegree)
		nodes[i].Radius = ImportanceToRadius(importance) * 2
		angle := float64(i) * 2.4 // golden-angle-ish spread
		dist := spiralStep * math.Sqrt(float64(i))
		nodes[i].X = math.Cos(angle) * dist
		nodes[i].Y = math.Sin(angle) * dist
	}

	for iter := 0; iter < BubbleIterations; iter++ {
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[j].X - nodes[i].X
				dy := nodes[j].Y - nodes[i].Y
				dist := math.Hypot(dx, dy)
				minDist := nodes[i].Radius + nodes[j].Radius + bubbleGap
				if dist >= minDist {
					continue
				}
				if dist < 0.01 {
					// Coincident seeds: separate along a deterministic axis.
					dx, dy, dist = 1, 0, 1
				}
				push := (minDist - dist) / dist / 2
				nodes[i].X -= dx * push
				nodes[i].Y -= dy * push
				nodes[j].X += dx * push
				nodes[j].Y += dy * push
			}
		}
		for i := range nodes {
			nodes[i].X -= nodes[i].X * bubbleCentering
			nodes[i].Y -= nodes[i].Y * bubbleCentering
		}
	}

	return nodes
}
