package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/parallax-vis/parallax/pkg/common"
)

func TestMergeResults(t *testing.T) {
	first := common.SearchResult{
		Query:         "ranch",
		Events:        []common.EventHit{{ID: 1, Summary: "meeting at the ranch"}},
		Documents:     []common.DocumentHit{{ID: 10, Summary: "deposition"}},
		Actors:        []string{"A", "B"},
		Excerpts:      []common.Excerpt{{DocID: 10, Text: "the ranch was purchased in 1993"}},
		TotalExcerpts: 4,
	}
	second := common.SearchResult{
		Query:         "purchase",
		Events:        []common.EventHit{{ID: 1, Summary: "meeting at the ranch"}, {ID: 2, Summary: "wire transfer"}},
		Documents:     []common.DocumentHit{{ID: 11, Summary: "bank records"}},
		Actors:        []string{"B", "C"},
		Excerpts:      []common.Excerpt{{DocID: 10, Text: "the ranch was purchased in 1993"}},
		TotalExcerpts: 2,
	}

	merged := MergeResults([]common.SearchResult{first, second})

	if len(merged.Events) != 2 || merged.Events[0].ID != 1 || merged.Events[1].ID != 2 {
		t.Errorf("events = %v, want ids [1 2] with first-seen order", merged.Events)
	}
	if len(merged.Documents) != 2 {
		t.Errorf("documents = %v, want 2", merged.Documents)
	}
	if !reflect.DeepEqual(merged.Actors, []string{"A", "B", "C"}) {
		t.Errorf("actors = %v, want [A B C]", merged.Actors)
	}
	if len(merged.Excerpts) != 1 {
		t.Errorf("excerpts = %v, want the duplicate collapsed", merged.Excerpts)
	}
	if merged.TotalExcerpts != 6 {
		t.Errorf("total excerpts = %d, want 6", merged.TotalExcerpts)
	}
}

func TestMergeResultsExcerptKeyTruncation(t *testing.T) {
	base := strings.Repeat("x", excerptKeyLen)
	a := common.SearchResult{Excerpts: []common.Excerpt{{DocID: 1, Text: base + " tail one"}}}
	b := common.SearchResult{Excerpts: []common.Excerpt{{DocID: 2, Text: base + " tail two"}}}

	merged := MergeResults([]common.SearchResult{a, b})
	// Identical leading windows collapse even when the tails differ.
	if len(merged.Excerpts) != 1 {
		t.Errorf("excerpts = %d, want 1", len(merged.Excerpts))
	}
	if merged.Excerpts[0].DocID != 1 {
		t.Errorf("kept excerpt from doc %d, want first-seen doc 1", merged.Excerpts[0].DocID)
	}
}

func TestMergeResultsEmpty(t *testing.T) {
	merged := MergeResults(nil)
	if len(merged.Events) != 0 || len(merged.Excerpts) != 0 || merged.TotalExcerpts != 0 {
		t.Errorf("merged = %+v, want zero value", merged)
	}
}
