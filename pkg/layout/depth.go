package layout

import (
	"sort"

	"github.com/parallax-vis/parallax/pkg/common"
)

// MedianTimestamps computes, per entity, the median timestamp among the
// relationships that mention it. Entities whose records are all undated
// get a nil entry, which TimestampToDepth places at the visual center.
func MedianTimestamps(rels []common.Relationship) map[string]*string {
	dated := make(map[string][]string)
	seen := make(map[string]bool)
	for _, rel := range rels {
		if rel.Actor == "" || rel.Target == "" {
			continue
		}
		for _, name := range []string{rel.Actor, rel.Target} {
			seen[name] = true
			if rel.Dated() {
				dated[name] = append(dated[name], *rel.Timestamp)
			}
		}
	}

	medians := make(map[string]*string, len(seen))
	for name := range seen {
		stamps := dated[name]
		if len(stamps) == 0 {
			medians[name] = nil
			continue
		}
		sort.Slice(stamps, func(i, j int) bool {
			ti, oki := common.ParseTimestamp(stamps[i])
			tj, okj := common.ParseTimestamp(stamps[j])
			if !oki || !okj {
				return oki
			}
			return ti.Before(tj)
		})
		m := stamps[len(stamps)/2]
		medians[name] = &m
	}
	return medians
}
