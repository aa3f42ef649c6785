package layout

import (
	"math"
	"math/rand"

	"github.com/parallax-vis/parallax/pkg/common"
)

// ForceConfig tunes the 2D relaxation. Zero values fall back to defaults
// sized for the capped flat graph view.
type ForceConfig struct {
	Width        float64
	Height       float64
	Iterations   int
	LinkDistance float64
	Repulsion    float64
	Centering    float64
	CollisionGap float64
}

func (c ForceConfig) withDefaults() ForceConfig {
	if c.Width == 0 {
		c.Width = 1600
	}
	if c.Height == 0 {
		c.Height = 900
	}
	if c.Iterations == 0 {
		c.Iterations = 300
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = 90
	}
	if c.Repulsion == 0 {
		c.Repulsion = 1800
	}
	if c.Centering == 0 {
		c.Centering = 0.02
	}
	if c.CollisionGap == 0 {
		c.CollisionGap = 2
	}
	return c
}

// RunForce relaxes node positions with spring attraction along links,
// many-body repulsion, a weak pull toward the viewport center, and
// pairwise collision resolution. The principal entity is pinned at the
// center for the whole run so the picture keeps a stable frame of
// reference across recomputations; any node with Pinned set keeps its
// position too (user drags pin a node until release).
//
// The loop runs synchronously to its fixed iteration budget, which is why
// the node set is capped upstream.
func RunForce(nodes []common.GraphNode, links []common.Link, principal string, cfg ForceConfig, rng *rand.Rand) []common.GraphNode {
	cfg = cfg.withDefaults()
	if len(nodes) == 0 {
		return nodes
	}

	cx := cfg.Width / 2
	cy := cfg.Height / 2

	index := make(map[string]int, len(nodes))
	for i := range nodes {
		index[nodes[i].Name] = i
		if nodes[i].Name == principal {
			nodes[i].X = cx
			nodes[i].Y = cy
			nodes[i].Pinned = true
			continue
		}
		if nodes[i].Pinned {
			continue
		}
		if nodes[i].X == 0 && nodes[i].Y == 0 {
			angle := rng.Float64() * 2 * math.Pi
			dist := 60 + rng.Float64()*math.Min(cfg.Width, cfg.Height)/3
			nodes[i].X = cx + math.Cos(angle)*dist
			nodes[i].Y = cy + math.Sin(angle)*dist
		}
	}

	damping := 0.85
	for iter := 0; iter < cfg.Iterations; iter++ {
		// Many-body repulsion.
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[j].X - nodes[i].X
				dy := nodes[j].Y - nodes[i].Y
				distSq := dx*dx + dy*dy
				if distSq < 1 {
					distSq = 1
				}
				dist := math.Sqrt(distSq)
				force := cfg.Repulsion / distSq
				fx := dx / dist * force
				fy := dy / dist * force
				nodes[i].VX -= fx
				nodes[i].VY -= fy
				nodes[j].VX += fx
				nodes[j].VY += fy
			}
		}

		// Spring attraction along links, stronger links pull to shorter
		// target distances.
		for _, link := range links {
			ai, ok1 := index[link.A]
			bi, ok2 := index[link.B]
			if !ok1 || !ok2 {
				continue
			}
			dx := nodes[bi].X - nodes[ai].X
			dy := nodes[bi].Y - nodes[ai].Y
			dist := math.Hypot(dx, dy)
			if dist < 1 {
				dist = 1
			}
			target := cfg.LinkDistance * (1.2 - 0.4*link.Strength)
			displacement := (dist - target) / dist * 0.08
			fx := dx * displacement
			fy := dy * displacement
			nodes[ai].VX += fx
			nodes[ai].VY += fy
			nodes[bi].VX -= fx
			nodes[bi].VY -= fy
		}

		// Weak centering.
		for i := range nodes {
			nodes[i].VX += (cx - nodes[i].X) * cfg.Centering
			nodes[i].VY += (cy - nodes[i].Y) * cfg.Centering
		}

		for i := range nodes {
			if nodes[i].Pinned {
				nodes[i].VX = 0
				nodes[i].VY = 0
				continue
			}
			nodes[i].X += nodes[i].VX
			nodes[i].Y += nodes[i].VY
			nodes[i].VX *= damping
			nodes[i].VY *= damping
		}

		resolveCollisions(nodes, cfg.CollisionGap)
	}

	return nodes
}

// resolveCollisions pushes overlapping node pairs apart along their
// separating axis. Pinned nodes absorb none of the correction.
func resolveCollisions(nodes []common.GraphNode, gap float64) {
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[j].X - nodes[i].X
			dy := nodes[j].Y - nodes[i].Y
			dist := math.Hypot(dx, dy)
			minDist := nodes[i].Radius + nodes[j].Radius + gap
			if dist >= minDist || dist == 0 {
				continue
			}
			push := (minDist - dist) / dist / 2
			px := dx * push
			py := dy * push
			switch {
			case nodes[i].Pinned && nodes[j].Pinned:
			case nodes[i].Pinned:
				nodes[j].X += px * 2
				nodes[j].Y += py * 2
			case nodes[j].Pinned:
				nodes[i].X -= px * 2
				nodes[i].Y -= py * 2
			default:
				nodes[i].X -= px
				nodes[i].Y -= py
				nodes[j].X += px
				nodes[j].Y += py
			}
		}
	}
}
