package graph

import (
	"reflect"
	"testing"

	"github.com/parallax-vis/parallax/pkg/common"
)

func TestBuildCooccurrence(t *testing.T) {
	rels := []common.Relationship{
		rel("A", "met", "B"),
		rel("A", "called", "C"),
		rel("B", "met", "A"),
		rel("", "met", "C"),
	}

	nodes, links := BuildCooccurrence(rels)

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	// A appears in 3 records, B in 2, C in 1.
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("node order = %v, want %v", names, want)
	}
	if nodes[0].Degree != 3 {
		t.Errorf("A degree = %d, want 3", nodes[0].Degree)
	}
	if len(nodes[0].Relationships) != 3 {
		t.Errorf("A carries %d records, want 3", len(nodes[0].Relationships))
	}

	if len(links) != 2 {
		t.Fatalf("link count = %d, want 2 deduplicated pairs", len(links))
	}
	if links[0].A != "A" || links[0].B != "B" || links[0].Count != 2 {
		t.Errorf("A-B link = %+v, want collapsed count 2", links[0])
	}
}

func TestBuildCooccurrenceEmpty(t *testing.T) {
	nodes, links := BuildCooccurrence(nil)
	if len(nodes) != 0 || len(links) != 0 {
		t.Errorf("empty input yields %d nodes %d links, want none", len(nodes), len(links))
	}
}
