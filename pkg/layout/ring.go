package layout

import (
	"math"
	"math/rand"
	"sort"

	"github.com/parallax-vis/parallax/pkg/common"
)

// Mode selects how the Z coordinate of spatial nodes is derived.
type Mode string

const (
	// ModeGraph is the flat view: Z is always zero.
	ModeGraph Mode = "graph"
	// ModeDepth and ModeSpatial derive Z from each node's median
	// timestamp via TimestampToDepth.
	ModeDepth   Mode = "depth"
	ModeSpatial Mode = "spatial"
)

// OverflowRing is the bucket for nodes unreachable from the principal.
// They render on a far ring instead of being dropped.
const OverflowRing = 10

const (
	ringSpacing     = 80.0
	ringJitterMax   = 24.0 // strictly under ringSpacing/2 so hop bands never overlap
	heightJitterMax = 30.0
	heightBias      = 50.0
)

// RingLayout places entities on concentric rings keyed by hop distance
// from the principal, which sits at the origin. Ring radius grows with
// hop distance plus bounded jitter; entities spread at even angles with a
// per-ring rotation offset so consecutive rings don't visually align.
// Height combines bounded jitter with a bias proportional to
// (importance - 0.5), pulling important nodes toward the vertical center.
//
// Exact positions are stochastic within these bounds; ring membership and
// radius monotonicity by hop are the contracted invariants. medianTS maps
// entity name to its median associated timestamp for the depth modes.
func RingLayout(
	entities []common.Entity,
	hops map[string]int,
	principal string,
	medianTS map[string]*string,
	mode Mode,
	rng *rand.Rand,
) []common.SpatialNode {
	maxConnections := 0
	for _, e := range entities {
		if e.Connections > maxConnections {
			maxConnections = e.Connections
		}
	}

	byRing := make(map[int][]int)
	nodes := make([]common.SpatialNode, len(entities))
	for i, e := range entities {
		ring := OverflowRing
		if e.Name == principal {
			ring = 0
		} else if h, ok := hops[e.Name]; ok {
			ring = h
			if ring > OverflowRing {
				ring = OverflowRing
			}
		}
		importance := CalculateImportance(e.Connections, maxConnections)
		nodes[i] = common.SpatialNode{
			Entity:     e,
			Ring:       ring,
			Importance: importance,
			Radius:     ImportanceToRadius(importance),
		}
		byRing[ring] = append(byRing[ring], i)
	}

	rings := make([]int, 0, len(byRing))
	for ring := range byRing {
		rings = append(rings, ring)
	}
	sort.Ints(rings)

	for _, ring := range rings {
		members := byRing[ring]
		if ring == 0 {
			for _, i := range members {
				nodes[i].X = 0
				nodes[i].Y = 0
			}
			continue
		}
		rotation := float64(ring) * 0.5
		step := 2 * math.Pi / float64(len(members))
		for k, i := range members {
			angle := rotation + float64(k)*step
			radius := float64(ring)*ringSpacing + rng.Float64()*ringJitterMax
			nodes[i].X = math.Cos(angle) * radius
			nodes[i].Y = math.Sin(angle) * radius
		}
	}

	for i := range nodes {
		height := (rng.Float64()*2 - 1) * heightJitterMax
		height -= (nodes[i].Importance - 0.5) * heightBias
		switch mode {
		case ModeDepth, ModeSpatial:
			var ts *string
			if medianTS != nil {
				ts = medianTS[nodes[i].Name]
			}
			nodes[i].Z = TimestampToDepth(ts) + height
		default:
			nodes[i].Z = 0
		}
	}

	return nodes
}
