package common

import "time"

// Relationship is a single extracted relationship triple from the source
// dataset: an actor performing an action on a target, optionally anchored
// to a date and a location, with provenance back to a source document.
//
// Relationships are immutable from this system's point of view; the
// dataset is pre-extracted and never modified here.
type Relationship struct {
	ID        int64    `json:"id"`
	Actor     string   `json:"actor"`
	Action    string   `json:"action"`
	Target    string   `json:"target"`
	Timestamp *string  `json:"timestamp"` // nil means undated
	Location  *string  `json:"location"`  // nil means unlocated
	DocID     int64    `json:"doc_id"`
	Tags      []string `json:"tags"`
	Topic     string   `json:"topic,omitempty"`
}

// Dated reports whether the relationship carries a timestamp. Undated
// relationships stay selectable and countable everywhere dated ones are.
func (r Relationship) Dated() bool {
	return r.Timestamp != nil && *r.Timestamp != ""
}

// Entity is a distinct actor or target name appearing in the current
// filtered record set. Entities are derived on every recomputation and
// never persisted; identity is exact case-sensitive name equality.
type Entity struct {
	Name        string  `json:"name"`
	Connections int     `json:"connections"`
	Earliest    *string `json:"earliest,omitempty"`
	Latest      *string `json:"latest,omitempty"`
	HopDistance int     `json:"hop_distance"`
}

// ConnectionGroup collects every relationship between a focal entity and
// one counterparty, in either direction.
type ConnectionGroup struct {
	Counterparty  string         `json:"counterparty"`
	Relationships []Relationship `json:"relationships"`
	Earliest      *string        `json:"earliest,omitempty"`
	Latest        *string        `json:"latest,omitempty"`
}

// Count returns the number of relationships in the group.
func (g ConnectionGroup) Count() int {
	return len(g.Relationships)
}

// LocationBucket is one partition cell of the filtered record set keyed by
// normalized location name. The synthetic bucket (see UnknownLocation)
// collects every record whose location is absent or unresolvable.
type LocationBucket struct {
	Name          string         `json:"name"`
	Lat           float64        `json:"lat"`
	Lon           float64        `json:"lon"`
	Known         bool           `json:"known"`
	Relationships []Relationship `json:"relationships"`
	People        []string       `json:"people"`
}

// UnknownLocation is the display name of the synthetic bucket for records
// without a resolvable location.
const UnknownLocation = "Unknown/Unspecified"

// Link is an unordered pair of entity names with the number of
// relationships collapsing onto the pair. Derived link lists hold at most
// one Link per pair; multi-edges are pre-collapsed into Count.
type Link struct {
	A        string  `json:"a"`
	B        string  `json:"b"`
	Count    int     `json:"count"`
	Strength float64 `json:"strength"`
	Weak     bool    `json:"weak"`
}

// GraphNode wraps an Entity with the mutable layout fields of the flat
// 2D graph view. X and Y are owned by the force simulation while it runs;
// a pinned node keeps its position regardless of forces.
type GraphNode struct {
	Entity
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"-"`
	VY         float64 `json:"-"`
	Pinned     bool    `json:"pinned"`
	Importance float64 `json:"importance"`
	Radius     float64 `json:"radius"`
}

// SpatialNode is a node placed by the hop-ring layout. Z carries the
// time-depth coordinate and is 0 in the flat graph mode.
type SpatialNode struct {
	Entity
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Ring       int     `json:"ring"`
	Importance float64 `json:"importance"`
	Radius     float64 `json:"radius"`
}

// BubbleNode is a node of the unlocated-event co-occurrence map.
type BubbleNode struct {
	Name          string         `json:"name"`
	Degree        int            `json:"degree"`
	Relationships []Relationship `json:"relationships"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	Radius        float64        `json:"radius"`
}

// FilterState is the full set of user-adjustable filters. It is owned by
// the view controller; every consumer reads it, none mutate it.
type FilterState struct {
	YearMin        int      `json:"year_min"`
	YearMax        int      `json:"year_max"`
	ClusterIDs     []int64  `json:"cluster_ids"`
	Categories     []string `json:"categories"`
	Keyword        string   `json:"keyword"`
	IncludeUndated bool     `json:"include_undated"`
	MaxHops        *int     `json:"max_hops"`    // nil means unbounded
	MinDensityPct  float64  `json:"min_density"` // percent of tier-average connections
	Limit          int      `json:"limit"`
}

// Document is the metadata of a source document a relationship points at.
type Document struct {
	ID       int64  `json:"doc_id"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// EventHit is a deep-search hit on a relationship event.
type EventHit struct {
	ID      int64  `json:"id"`
	Summary string `json:"summary"`
}

// DocumentHit is a deep-search hit on a document summary.
type DocumentHit struct {
	ID      int64  `json:"doc_id"`
	Summary string `json:"summary"`
}

// Excerpt is a verbatim fragment of document text matched by deep search.
type Excerpt struct {
	DocID int64  `json:"doc_id"`
	Text  string `json:"text"`
}

// SearchResult is the outcome of one deep-search call.
type SearchResult struct {
	Query         string        `json:"query"`
	Events        []EventHit    `json:"events"`
	Documents     []DocumentHit `json:"documents"`
	Actors        []string      `json:"actors"`
	Excerpts      []Excerpt     `json:"excerpts"`
	TotalExcerpts int           `json:"total_excerpts"`
}

// ParseTimestamp parses the dataset's date strings. The extraction
// pipeline emits ISO dates but older documents occasionally carry only a
// year or a year-month prefix.
func ParseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
