package query

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/graph"
	"github.com/parallax-vis/parallax/pkg/logger"
)

// Per-category caps bound the evidence context handed to the model.
// Excerpts come first and verbatim; everything else is summarized.
const (
	maxContextExcerpts   = 5
	maxContextEvents     = 10
	maxContextDocuments  = 5
	maxContextActors     = 10
	maxContextLocations  = 8
	maxContextAssociates = 8
	maxContextTokens     = 3000
)

// BuildContext assembles the bounded evidence context for one question:
// known locations and associates drawn from the loaded relationship set,
// then the merged deep-search results in priority order.
func BuildContext(merged common.SearchResult, rels []common.Relationship) string {
	var b strings.Builder

	locations, associates := knownBackground(merged.Actors, rels)
	if len(locations) > 0 {
		b.WriteString("## Known locations\n")
		for _, loc := range capped(locations, maxContextLocations) {
			fmt.Fprintf(&b, "- %s\n", loc)
		}
		b.WriteString("\n")
	}
	if len(associates) > 0 {
		b.WriteString("## Known associates\n")
		for _, a := range capped(associates, maxContextAssociates) {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	if len(merged.Excerpts) > 0 {
		b.WriteString("## Document excerpts\n")
		for _, ex := range merged.Excerpts[:minInt(len(merged.Excerpts), maxContextExcerpts)] {
			fmt.Fprintf(&b, "[doc %d] %q\n", ex.DocID, ex.Text)
		}
		b.WriteString("\n")
	}
	if len(merged.Events) > 0 {
		b.WriteString("## Matched events\n")
		for _, e := range merged.Events[:minInt(len(merged.Events), maxContextEvents)] {
			fmt.Fprintf(&b, "- %s\n", e.Summary)
		}
		b.WriteString("\n")
	}
	if len(merged.Documents) > 0 {
		b.WriteString("## Matched documents\n")
		for _, d := range merged.Documents[:minInt(len(merged.Documents), maxContextDocuments)] {
			fmt.Fprintf(&b, "- [doc %d] %s\n", d.ID, d.Summary)
		}
		b.WriteString("\n")
	}
	if len(merged.Actors) > 0 {
		b.WriteString("## Matched actors\n")
		b.WriteString(strings.Join(capped(merged.Actors, maxContextActors), ", "))
		b.WriteString("\n")
	}

	return trimToTokenBudget(b.String(), maxContextTokens)
}

// knownBackground collects the locations and counterparties of the
// matched actors from the currently loaded relationship set.
func knownBackground(actors []string, rels []common.Relationship) (locations, associates []string) {
	seenLoc := make(map[string]bool)
	seenAssoc := make(map[string]bool)
	for _, actor := range actors {
		for _, rel := range rels {
			if rel.Actor != actor && rel.Target != actor {
				continue
			}
			if rel.Location != nil && *rel.Location != "" && !seenLoc[*rel.Location] {
				seenLoc[*rel.Location] = true
				locations = append(locations, *rel.Location)
			}
		}
		for _, g := range graph.ConnectionGroups(rels, actor) {
			if seenAssoc[g.Counterparty] {
				continue
			}
			seenAssoc[g.Counterparty] = true
			associates = append(associates, g.Counterparty)
		}
	}
	return locations, associates
}

// trimToTokenBudget drops trailing lines until the context fits the
// budget. Counting falls back to a byte heuristic if the encoder cannot
// load (it fetches its tables on first use).
func trimToTokenBudget(context string, budget int) string {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Warn("token encoder unavailable, using byte heuristic", "err", err)
		if len(context) > budget*4 {
			return context[:budget*4]
		}
		return context
	}

	if len(enc.Encode(context, nil, nil)) <= budget {
		return context
	}
	lines := strings.Split(context, "\n")
	for len(lines) > 1 {
		lines = lines[:len(lines)-1]
		trimmed := strings.Join(lines, "\n")
		if len(enc.Encode(trimmed, nil, nil)) <= budget {
			return trimmed
		}
	}
	return lines[0]
}

func capped(items []string, cap int) []string {
	if len(items) > cap {
		return items[:cap]
	}
	return items
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
