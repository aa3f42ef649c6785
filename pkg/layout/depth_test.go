package layout

import (
	"testing"

	"github.com/parallax-vis/parallax/pkg/common"
)

func tsRel(actor, target string, ts *string) common.Relationship {
	return common.Relationship{Actor: actor, Target: target, Timestamp: ts}
}

func TestMedianTimestamps(t *testing.T) {
	rels := []common.Relationship{
		tsRel("A", "B", strPtr("2001-01-01")),
		tsRel("A", "C", strPtr("1995-06-01")),
		tsRel("A", "D", strPtr("2010-03-15")),
		tsRel("E", "F", nil),
	}

	got := MedianTimestamps(rels)

	if m := got["A"]; m == nil || *m != "2001-01-01" {
		t.Errorf("A median = %v, want 2001-01-01", m)
	}
	if m, ok := got["E"]; !ok || m != nil {
		t.Errorf("E median = %v (present %v), want a nil entry", m, ok)
	}
	if m := got["B"]; m == nil || *m != "2001-01-01" {
		t.Errorf("B median = %v, want its single date", m)
	}
}

func TestMedianTimestampsEvenCount(t *testing.T) {
	rels := []common.Relationship{
		tsRel("A", "B", strPtr("1990")),
		tsRel("A", "C", strPtr("2000")),
	}
	got := MedianTimestamps(rels)
	// Upper median on even counts.
	if m := got["A"]; m == nil || *m != "2000" {
		t.Errorf("A median = %v, want 2000", m)
	}
}
