package graph

import (
	"sort"

	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/layout"
)

// TopEntityCap bounds the flat graph view to the most connected entities.
// Entities outside the cap stay fully visible in the location and
// connection-group views, which do not apply it; the cap exists purely to
// keep the force simulation and canvas responsive.
const TopEntityCap = 200

// OverflowHopBucket is the ring bucket for entities with no path to the
// principal, so they render far out instead of being dropped.
const OverflowHopBucket = 10

// CountConnections counts, per entity name, the relationship records that
// mention it as actor or target. Records with an empty actor or target
// are skipped defensively; the upstream extractor validates them, but the
// aggregator must not fall over when one slips through.
func CountConnections(rels []common.Relationship) map[string]int {
	counts := make(map[string]int)
	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		counts[rel.Actor]++
		counts[rel.Target]++
	}
	return counts
}

// TopEntities returns up to cap entities ordered by descending connection
// count, ties broken by first appearance in the input. Each entity
// carries its earliest and latest parseable timestamp.
func TopEntities(rels []common.Relationship, cap int) []common.Entity {
	counts := CountConnections(rels)

	firstSeen := make(map[string]int)
	var names []string
	note := func(name string) {
		if _, ok := firstSeen[name]; !ok {
			firstSeen[name] = len(names)
			names = append(names, name)
		}
	}
	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		note(rel.Actor)
		note(rel.Target)
	}

	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	if cap > 0 && len(names) > cap {
		names = names[:cap]
	}

	spans := timeSpans(rels)
	entities := make([]common.Entity, 0, len(names))
	for _, name := range names {
		e := common.Entity{Name: name, Connections: counts[name]}
		if span, ok := spans[name]; ok {
			e.Earliest = span.earliest
			e.Latest = span.latest
		}
		entities = append(entities, e)
	}
	return entities
}

// BuildLinks collapses relationships onto unordered entity pairs. When
// include is non-nil, only links with both endpoints in the set survive;
// a link between an included and an excluded entity is omitted outright,
// not rerouted. Strength is normalized by the maximum multiplicity in the
// returned set.
func BuildLinks(rels []common.Relationship, include map[string]bool) []common.Link {
	type pair struct{ a, b string }
	counts := make(map[pair]int)
	var order []pair

	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		if include != nil && (!include[rel.Actor] || !include[rel.Target]) {
			continue
		}
		p := pair{rel.Actor, rel.Target}
		if p.b < p.a {
			p.a, p.b = p.b, p.a
		}
		if _, seen := counts[p]; !seen {
			order = append(order, p)
		}
		counts[p]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	links := make([]common.Link, 0, len(order))
	for _, p := range order {
		strength := layout.CalculateLinkStrength(counts[p], maxCount)
		links = append(links, common.Link{
			A:        p.a,
			B:        p.b,
			Count:    counts[p],
			Strength: strength,
			Weak:     layout.IsWeakLink(strength),
		})
	}
	return links
}

// ConnectionGroups partitions every relationship touching the focal
// entity by counterparty, in either direction. Groups come back sorted by
// descending record count, ties keeping input order.
func ConnectionGroups(rels []common.Relationship, focal string) []common.ConnectionGroup {
	byCounterparty := make(map[string]*common.ConnectionGroup)
	var order []string

	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		var counterparty string
		switch focal {
		case rel.Actor:
			counterparty = rel.Target
		case rel.Target:
			counterparty = rel.Actor
		default:
			continue
		}
		g, ok := byCounterparty[counterparty]
		if !ok {
			g = &common.ConnectionGroup{Counterparty: counterparty}
			byCounterparty[counterparty] = g
			order = append(order, counterparty)
		}
		g.Relationships = append(g.Relationships, rel)
		if rel.Dated() {
			g.Earliest = earlierOf(g.Earliest, rel.Timestamp)
			g.Latest = laterOf(g.Latest, rel.Timestamp)
		}
	}

	groups := make([]common.ConnectionGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, *byCounterparty[name])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count() > groups[j].Count()
	})
	return groups
}

// DensityFilter keeps entities whose connection count reaches the given
// percentage of the mean connection count of their hop tier, inclusive at
// the threshold. Entities absent from hops fall into the overflow tier.
// A non-positive percentage disables the filter.
func DensityFilter(entities []common.Entity, hops map[string]int, minPct float64) []common.Entity {
	if minPct <= 0 {
		return entities
	}

	tierTotal := make(map[int]int)
	tierSize := make(map[int]int)
	tierOf := func(name string) int {
		if h, ok := hops[name]; ok {
			return h
		}
		return OverflowHopBucket
	}
	for _, e := range entities {
		tier := tierOf(e.Name)
		tierTotal[tier] += e.Connections
		tierSize[tier]++
	}

	kept := make([]common.Entity, 0, len(entities))
	for _, e := range entities {
		tier := tierOf(e.Name)
		mean := float64(tierTotal[tier]) / float64(tierSize[tier])
		if float64(e.Connections) >= minPct/100*mean {
			kept = append(kept, e)
		}
	}
	return kept
}

type span struct {
	earliest *string
	latest   *string
}

func timeSpans(rels []common.Relationship) map[string]span {
	spans := make(map[string]span)
	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" || !rel.Dated() {
			continue
		}
		for _, name := range []string{rel.Actor, rel.Target} {
			s := spans[name]
			s.earliest = earlierOf(s.earliest, rel.Timestamp)
			s.latest = laterOf(s.latest, rel.Timestamp)
			spans[name] = s
		}
	}
	return spans
}

func earlierOf(current, candidate *string) *string {
	if candidate == nil {
		return current
	}
	ct, ok := common.ParseTimestamp(*candidate)
	if !ok {
		return current
	}
	if current == nil {
		return candidate
	}
	if et, ok := common.ParseTimestamp(*current); !ok || ct.Before(et) {
		return candidate
	}
	return current
}

func laterOf(current, candidate *string) *string {
	if candidate == nil {
		return current
	}
	ct, ok := common.ParseTimestamp(*candidate)
	if !ok {
		return current
	}
	if current == nil {
		return candidate
	}
	if lt, ok := common.ParseTimestamp(*current); !ok || ct.After(lt) {
		return candidate
	}
	return current
}
