package view

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/graph"
	"github.com/parallax-vis/parallax/pkg/layout"
	"github.com/parallax-vis/parallax/pkg/logger"
	"github.com/parallax-vis/parallax/pkg/store"
)

// DefaultDebounce is how long continuous filter edits settle before the
// refetch/recompute chain runs.
const DefaultDebounce = 2 * time.Second

const recomputeTimeout = 30 * time.Second

// Selection is the current detail focus. At most one of Entity and
// Location is set; EventID is only meaningful alongside Location.
type Selection struct {
	Entity   string `json:"entity,omitempty"`
	Location string `json:"location,omitempty"`
	EventID  int64  `json:"event_id,omitempty"`
}

// Snapshot is one render cycle's derived state. It is immutable once
// published: consumers read a stable reference while the controller
// builds the next snapshot from a freshly fetched record list.
type Snapshot struct {
	Relationships []common.Relationship
	GraphNodes    []common.GraphNode
	GraphLinks    []common.Link
	SpatialNodes  []common.SpatialNode
	Buckets       []common.LocationBucket
	BubbleNodes   []common.BubbleNode
	BubbleLinks   []common.Link
	Hops          map[string]int
}

// Controller owns the process-wide view state: filters, selection, view
// mode and the derived snapshot. All business logic lives in pkg/graph
// and pkg/layout; the controller only sequences refetch and recompute.
type Controller struct {
	mu sync.Mutex

	storage   store.DatasetStorage
	gazetteer *graph.Gazetteer
	rng       *rand.Rand

	filters   common.FilterState
	pending   common.FilterState
	selection Selection
	mode      layout.Mode
	pinned    map[string][2]float64

	snapshot *Snapshot

	debounce         *time.Timer
	debounceInterval time.Duration
	closed           bool
}

// NewControllerParams contains the dependencies of a new controller.
type NewControllerParams struct {
	Storage   store.DatasetStorage
	Gazetteer *graph.Gazetteer

	// Seed feeds the layout jitter source, so tests can fix it.
	Seed int64

	// DebounceInterval defaults to DefaultDebounce when zero.
	DebounceInterval time.Duration

	InitialFilters common.FilterState
}

// NewController creates a controller and computes the initial snapshot.
func NewController(params NewControllerParams) *Controller {
	interval := params.DebounceInterval
	if interval == 0 {
		interval = DefaultDebounce
	}
	c := &Controller{
		storage:          params.Storage,
		gazetteer:        params.Gazetteer,
		rng:              rand.New(rand.NewSource(params.Seed)),
		filters:          normalizeFilters(params.InitialFilters),
		pending:          normalizeFilters(params.InitialFilters),
		mode:             layout.ModeGraph,
		pinned:           make(map[string][2]float64),
		debounceInterval: interval,
	}
	c.mu.Lock()
	c.recomputeLocked()
	c.mu.Unlock()
	return c
}

// Close cancels the pending debounce timer. After Close no further
// recomputation fires; the last snapshot stays readable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

// Filters returns the live filter values, including debounced edits that
// have not been applied yet, so controls can echo user input immediately.
func (c *Controller) Filters() common.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Selection returns the current detail selection.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// Snapshot returns the current derived state. The returned pointer is
// stable for the duration of one render cycle.
func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// SetFilters records a continuous filter edit (year range, keyword, hop
// and density thresholds, limit). The values echo immediately through
// Filters, but the refetch/recompute chain is debounced: rapid edits
// collapse to a single recomputation using only the final value.
func (c *Controller) SetFilters(f common.FilterState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending = normalizeFilters(f)
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.debounceInterval, c.applyPending)
}

func (c *Controller) applyPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.filters = c.pending
	c.recomputeLocked()
}

// ToggleCluster flips one tag cluster's membership. Discrete toggles are
// not debounced; they apply and recompute immediately.
func (c *Controller) ToggleCluster(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.filters.ClusterIDs = toggleID(c.filters.ClusterIDs, id)
	c.pending.ClusterIDs = c.filters.ClusterIDs
	c.recomputeLocked()
}

// ToggleCategory flips one document category's membership, immediately.
func (c *Controller) ToggleCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.filters.Categories = toggleString(c.filters.Categories, category)
	c.pending.Categories = c.filters.Categories
	c.recomputeLocked()
}

// SelectEntity makes name the principal entity and clears any location or
// event selection. Hop distances and layouts recompute around the new
// principal.
func (c *Controller) SelectEntity(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.selection = Selection{Entity: name}
	c.recomputeLocked()
}

// SelectLocation focuses a location bucket, clearing any entity or event
// selection. The snapshot is unaffected; only the detail panel changes.
func (c *Controller) SelectLocation(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = Selection{Location: name}
}

// SelectEvent focuses one event within the selected location. Without a
// location selection the call is a no-op.
func (c *Controller) SelectEvent(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection.Location == "" {
		return
	}
	c.selection.EventID = id
}

// ClearSelection drops the detail selection entirely.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = Selection{}
}

// SetMode switches the layout mode and recomputes the spatial placement.
func (c *Controller) SetMode(mode layout.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.mode == mode {
		return
	}
	c.mode = mode
	c.recomputeLocked()
}

// PinNode fixes a node at a dragged position until released. The pin
// survives recomputation so the next simulation run respects it.
func (c *Controller) PinNode(name string, x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinned[name] = [2]float64{x, y}
}

// ReleaseNode returns a dragged node to free movement.
func (c *Controller) ReleaseNode(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pinned, name)
}

// recomputeLocked refetches the filtered record set and rebuilds every
// derived structure. A failed refetch keeps the previous snapshot intact:
// stale-but-consistent beats an empty view.
func (c *Controller) recomputeLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
	defer cancel()

	rels, err := c.storage.FetchRelationships(ctx, c.filters)
	if err != nil {
		logger.Error("refetch failed, keeping previous snapshot", "err", err)
		return
	}

	principal := c.selection.Entity
	entities := graph.TopEntities(rels, graph.TopEntityCap)

	include := make(map[string]bool, len(entities))
	for _, e := range entities {
		include[e.Name] = true
	}
	links := graph.BuildLinks(rels, include)
	hops := graph.HopDistances(links, principal)

	if c.filters.MinDensityPct > 0 {
		entities = graph.DensityFilter(entities, hops, c.filters.MinDensityPct)
		include = make(map[string]bool, len(entities))
		for _, e := range entities {
			include[e.Name] = true
		}
		links = graph.BuildLinks(rels, include)
	}
	if c.filters.MaxHops != nil {
		entities = withinHops(entities, hops, principal, *c.filters.MaxHops)
		include = make(map[string]bool, len(entities))
		for _, e := range entities {
			include[e.Name] = true
		}
		links = graph.BuildLinks(rels, include)
	}

	maxConnections := 0
	for _, e := range entities {
		if e.Connections > maxConnections {
			maxConnections = e.Connections
		}
	}
	graphNodes := make([]common.GraphNode, len(entities))
	for i, e := range entities {
		importance := layout.CalculateImportance(e.Connections, maxConnections)
		graphNodes[i] = common.GraphNode{
			Entity:     e,
			Importance: importance,
			Radius:     layout.ImportanceToRadius(importance),
		}
		if pos, ok := c.pinned[e.Name]; ok {
			graphNodes[i].X = pos[0]
			graphNodes[i].Y = pos[1]
			graphNodes[i].Pinned = true
		}
	}
	graphNodes = layout.RunForce(graphNodes, links, principal, layout.ForceConfig{}, c.rng)

	medians := layout.MedianTimestamps(rels)
	spatialNodes := layout.RingLayout(entities, hops, principal, medians, c.mode, c.rng)

	buckets := c.gazetteer.BucketByLocation(rels)
	var bubbleNodes []common.BubbleNode
	var bubbleLinks []common.Link
	for _, b := range buckets {
		if b.Name == common.UnknownLocation {
			bubbleNodes, bubbleLinks = graph.BuildCooccurrence(b.Relationships)
			bubbleNodes = layout.BubbleLayout(bubbleNodes)
		}
	}

	c.snapshot = &Snapshot{
		Relationships: rels,
		GraphNodes:    graphNodes,
		GraphLinks:    links,
		SpatialNodes:  spatialNodes,
		Buckets:       buckets,
		BubbleNodes:   bubbleNodes,
		BubbleLinks:   bubbleLinks,
		Hops:          hops,
	}
}

func withinHops(entities []common.Entity, hops map[string]int, principal string, maxHops int) []common.Entity {
	kept := make([]common.Entity, 0, len(entities))
	for _, e := range entities {
		if e.Name == principal {
			kept = append(kept, e)
			continue
		}
		if h, ok := hops[e.Name]; ok && h <= maxHops {
			kept = append(kept, e)
		}
	}
	return kept
}

// normalizeFilters enforces internal consistency at the mutator, so no
// downstream consumer ever sees an inverted year range.
func normalizeFilters(f common.FilterState) common.FilterState {
	if f.YearMin > f.YearMax {
		f.YearMin, f.YearMax = f.YearMax, f.YearMin
	}
	return f
}

func toggleID(ids []int64, id int64) []int64 {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}

func toggleString(items []string, item string) []string {
	for i, existing := range items {
		if existing == item {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return append(items, item)
}
