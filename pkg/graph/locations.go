package graph

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/parallax-vis/parallax/pkg/common"
)

// PlaceRule maps a free-text location substring to a canonical display
// name and coordinates. Rule order is significant: the table lists the
// most specific places first (a named estate or small island before its
// containing city, region or country) and Normalize takes the first
// match.
type PlaceRule struct {
	Match string  `yaml:"match"`
	Name  string  `yaml:"name"`
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
}

// Gazetteer holds the ordered location-normalization rule table.
type Gazetteer struct {
	rules []PlaceRule
}

//go:embed places.yaml
var defaultPlaces []byte

// DefaultGazetteer returns the gazetteer built from the embedded rule
// table.
func DefaultGazetteer() *Gazetteer {
	g, err := parseGazetteer(defaultPlaces)
	if err != nil {
		// The embedded table ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded places table invalid: %v", err))
	}
	return g
}

// LoadGazetteer reads a rule table from a YAML file, preserving rule
// order.
func LoadGazetteer(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read places table: %w", err)
	}
	return parseGazetteer(data)
}

// NewGazetteer builds a gazetteer from an explicit rule list. Used by
// tests and by callers that manage the table themselves.
func NewGazetteer(rules []PlaceRule) *Gazetteer {
	return &Gazetteer{rules: rules}
}

func parseGazetteer(data []byte) (*Gazetteer, error) {
	var doc struct {
		Places []PlaceRule `yaml:"places"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse places table: %w", err)
	}
	return &Gazetteer{rules: doc.Places}, nil
}

// Normalize resolves a free-text location to its canonical rule. The
// first rule whose match string appears in the input (case-insensitive)
// wins, so specific places shadow their containing regions. Returns false
// when no rule matches.
func (g *Gazetteer) Normalize(location string) (PlaceRule, bool) {
	lower := strings.ToLower(location)
	for _, rule := range g.rules {
		if strings.Contains(lower, strings.ToLower(rule.Match)) {
			return rule, true
		}
	}
	return PlaceRule{}, false
}

// BucketByLocation partitions relationships into location buckets. Every
// record lands in exactly one bucket; records whose location is absent or
// matches no rule go to the synthetic Unknown bucket. Records with an
// empty actor or target are dropped defensively. Known buckets are
// ordered by descending record count (stable on ties), with the Unknown
// bucket always last.
func (g *Gazetteer) BucketByLocation(rels []common.Relationship) []common.LocationBucket {
	byName := make(map[string]*common.LocationBucket)
	var order []string

	unknown := &common.LocationBucket{Name: common.UnknownLocation}

	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		bucket := unknown
		if rel.Location != nil && *rel.Location != "" {
			if rule, ok := g.Normalize(*rel.Location); ok {
				b, exists := byName[rule.Name]
				if !exists {
					b = &common.LocationBucket{
						Name:  rule.Name,
						Lat:   rule.Lat,
						Lon:   rule.Lon,
						Known: true,
					}
					byName[rule.Name] = b
					order = append(order, rule.Name)
				}
				bucket = b
			}
		}
		bucket.Relationships = append(bucket.Relationships, rel)
		bucket.People = appendPerson(bucket.People, rel.Actor)
		bucket.People = appendPerson(bucket.People, rel.Target)
	}

	buckets := make([]common.LocationBucket, 0, len(order)+1)
	for _, name := range order {
		buckets = append(buckets, *byName[name])
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return len(buckets[i].Relationships) > len(buckets[j].Relationships)
	})
	if len(unknown.Relationships) > 0 {
		buckets = append(buckets, *unknown)
	}
	return buckets
}

func appendPerson(people []string, name string) []string {
	for _, p := range people {
		if p == name {
			return people
		}
	}
	return append(people, name)
}
