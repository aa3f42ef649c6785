package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/graph"
)

type countingStorage struct {
	mu         sync.Mutex
	fetches    int
	lastFilter common.FilterState
	rels       []common.Relationship
	fail       bool
}

func (s *countingStorage) FetchRelationships(_ context.Context, filter common.FilterState) ([]common.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	s.lastFilter = filter
	if s.fail {
		return nil, errors.New("connection reset")
	}
	return s.rels, nil
}

func (s *countingStorage) SearchActors(context.Context, string) ([]common.Entity, error) {
	return nil, nil
}

func (s *countingStorage) GetDocument(context.Context, int64) (common.Document, error) {
	return common.Document{}, nil
}

func (s *countingStorage) GetDocumentText(context.Context, int64) (string, error) {
	return "", nil
}

func (s *countingStorage) DeepSearch(context.Context, string, bool) (common.SearchResult, error) {
	return common.SearchResult{}, nil
}

func (s *countingStorage) ListTagClusters(context.Context) (map[int64]string, error) {
	return nil, nil
}

func (s *countingStorage) ListCategories(context.Context) ([]string, error) {
	return nil, nil
}

func (s *countingStorage) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *countingStorage) filter() common.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFilter
}

func (s *countingStorage) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func testRelationships() []common.Relationship {
	loc := "Palm Beach"
	return []common.Relationship{
		{ID: 1, Actor: "A", Action: "met", Target: "B", Location: &loc},
		{ID: 2, Actor: "A", Action: "paid", Target: "C"},
		{ID: 3, Actor: "B", Action: "called", Target: "C"},
	}
}

func newTestController(t *testing.T, storage *countingStorage) *Controller {
	t.Helper()
	c := NewController(NewControllerParams{
		Storage:          storage,
		Gazetteer:        graph.DefaultGazetteer(),
		Seed:             1,
		DebounceInterval: 25 * time.Millisecond,
	})
	t.Cleanup(c.Close)
	return c
}

func waitForFetches(t *testing.T, storage *countingStorage, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if storage.fetchCount() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("fetch count stuck at %d, want %d", storage.fetchCount(), want)
}

func TestNewControllerComputesInitialSnapshot(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	if storage.fetchCount() != 1 {
		t.Errorf("fetches = %d, want 1", storage.fetchCount())
	}
	snap := c.Snapshot()
	if snap == nil {
		t.Fatal("no initial snapshot")
	}
	if len(snap.GraphNodes) != 3 {
		t.Errorf("graph nodes = %d, want 3", len(snap.GraphNodes))
	}
	if len(snap.Buckets) == 0 {
		t.Error("no location buckets")
	}
}

func TestSetFiltersDebounceCollapses(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	// Three rapid edits must collapse to one recomputation with the final
	// value; intermediates never hit the store.
	c.SetFilters(common.FilterState{Keyword: "first"})
	c.SetFilters(common.FilterState{Keyword: "second"})
	c.SetFilters(common.FilterState{Keyword: "third"})

	if got := c.Filters().Keyword; got != "third" {
		t.Errorf("pending keyword = %q, want immediate echo of the last edit", got)
	}
	if storage.fetchCount() != 1 {
		t.Errorf("fetches before settle = %d, want 1", storage.fetchCount())
	}

	waitForFetches(t, storage, 2)
	time.Sleep(60 * time.Millisecond) // no further timer may fire
	if storage.fetchCount() != 2 {
		t.Errorf("fetches after settle = %d, want 2", storage.fetchCount())
	}
	if got := storage.filter().Keyword; got != "third" {
		t.Errorf("applied keyword = %q, want third", got)
	}
}

func TestToggleClusterRecomputesImmediately(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	c.ToggleCluster(4)
	if storage.fetchCount() != 2 {
		t.Errorf("fetches = %d, want immediate recompute", storage.fetchCount())
	}
	if ids := storage.filter().ClusterIDs; len(ids) != 1 || ids[0] != 4 {
		t.Errorf("cluster ids = %v, want [4]", ids)
	}

	c.ToggleCluster(4)
	if ids := storage.filter().ClusterIDs; len(ids) != 0 {
		t.Errorf("cluster ids after second toggle = %v, want empty", ids)
	}
}

func TestRefetchFailureKeepsSnapshot(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	before := c.Snapshot()
	storage.setFail(true)
	c.SelectEntity("A")

	after := c.Snapshot()
	if after != before {
		t.Error("snapshot replaced despite refetch failure")
	}
	// The selection itself still applies; the next successful recompute
	// will pick it up.
	if c.Selection().Entity != "A" {
		t.Errorf("selection = %+v, want entity A", c.Selection())
	}
}

func TestSelectionTransitions(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	c.SelectEvent(9)
	if c.Selection().EventID != 0 {
		t.Error("event selection without a location must be a no-op")
	}

	c.SelectLocation("Palm Beach")
	c.SelectEvent(9)
	if sel := c.Selection(); sel.Location != "Palm Beach" || sel.EventID != 9 {
		t.Errorf("selection = %+v, want location with event", sel)
	}

	c.SelectEntity("A")
	if sel := c.Selection(); sel.Entity != "A" || sel.Location != "" || sel.EventID != 0 {
		t.Errorf("selection = %+v, want entity only", sel)
	}

	c.ClearSelection()
	if sel := c.Selection(); sel != (Selection{}) {
		t.Errorf("selection = %+v, want cleared", sel)
	}
}

func TestSelectEntityRecomputesHops(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	c.SelectEntity("A")
	snap := c.Snapshot()
	if snap.Hops["A"] != 0 || snap.Hops["B"] != 1 || snap.Hops["C"] != 1 {
		t.Errorf("hops = %v, want A at 0 with B and C adjacent", snap.Hops)
	}
}

func TestPinSurvivesRecompute(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	c.PinNode("C", 111, 222)
	c.ToggleCategory("court")

	for _, n := range c.Snapshot().GraphNodes {
		if n.Name != "C" {
			continue
		}
		if !n.Pinned || n.X != 111 || n.Y != 222 {
			t.Errorf("pinned node = %+v, want fixed at (111, 222)", n)
		}
	}

	c.ReleaseNode("C")
	c.ToggleCategory("court")
	for _, n := range c.Snapshot().GraphNodes {
		if n.Name == "C" && n.Pinned {
			t.Error("node still pinned after release")
		}
	}
}

func TestCloseCancelsPendingDebounce(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := NewController(NewControllerParams{
		Storage:          storage,
		Gazetteer:        graph.DefaultGazetteer(),
		Seed:             1,
		DebounceInterval: 25 * time.Millisecond,
	})

	c.SetFilters(common.FilterState{Keyword: "late"})
	c.Close()
	time.Sleep(80 * time.Millisecond)

	if storage.fetchCount() != 1 {
		t.Errorf("fetches = %d, want the initial fetch only", storage.fetchCount())
	}
}

func TestFiltersNormalizeYearRange(t *testing.T) {
	storage := &countingStorage{rels: testRelationships()}
	c := newTestController(t, storage)

	c.SetFilters(common.FilterState{YearMin: 2010, YearMax: 1990})
	f := c.Filters()
	if f.YearMin != 1990 || f.YearMax != 2010 {
		t.Errorf("year range = [%d, %d], want swapped into order", f.YearMin, f.YearMax)
	}
}
