package layout

import (
	"math"
	"time"

	"github.com/parallax-vis/parallax/pkg/common"
)

// The time-depth axis maps the dataset's global window onto a fixed
// world-space range centered at zero. Dates outside the window clamp to
// its edges.
const (
	windowStartYear = 1970
	windowEndYear   = 2025
	depthRange      = 600.0
)

// Visual node radii stay inside a fixed band so no entity collapses to a
// point or dominates the frame.
const (
	minRadius = 2.5
	maxRadius = 14.0
)

// WeakLinkThreshold marks the strength below which a link gets the "weak"
// rendering treatment.
const WeakLinkThreshold = 0.3

// TimestampToDepth maps a date string linearly onto [-depthRange/2,
// +depthRange/2]. Absent or unparseable timestamps map to 0, the visual
// center, so undated records are placed rather than excluded.
func TimestampToDepth(ts *string) float64 {
	if ts == nil || *ts == "" {
		return 0
	}
	t, ok := common.ParseTimestamp(*ts)
	if !ok {
		return 0
	}
	start := time.Date(windowStartYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(windowEndYear, 12, 31, 0, 0, 0, 0, time.UTC)
	if t.Before(start) {
		t = start
	}
	if t.After(end) {
		t = end
	}
	frac := float64(t.Sub(start)) / float64(end.Sub(start))
	return (frac - 0.5) * depthRange
}

// CalculateImportance scales a connection count logarithmically against
// the maximum count in the current set, so a handful of high-degree
// entities do not visually dominate. When maxCount <= 1 the ratio
// degenerates, so a fixed midpoint is returned instead.
func CalculateImportance(count, maxCount int) float64 {
	if maxCount <= 1 {
		return 0.5
	}
	if count < 0 {
		count = 0
	}
	return math.Log(float64(count)+1) / math.Log(float64(maxCount)+1)
}

// ImportanceToRadius maps a normalized importance onto the bounded visual
// radius band. Inputs outside [0, 1] clamp to the band's edges.
func ImportanceToRadius(importance float64) float64 {
	if importance < 0 {
		importance = 0
	}
	if importance > 1 {
		importance = 1
	}
	return minRadius + importance*(maxRadius-minRadius)
}

// CalculateLinkStrength is the linear multiplicity ratio capped at 1.
func CalculateLinkStrength(count, maxCount int) float64 {
	if maxCount <= 0 || count <= 0 {
		return 0
	}
	s := float64(count) / float64(maxCount)
	if s > 1 {
		return 1
	}
	return s
}

// IsWeakLink reports whether a strength falls under the weak-link
// rendering threshold.
func IsWeakLink(strength float64) bool {
	return strength < WeakLinkThreshold
}
