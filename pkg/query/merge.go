package query

import "github.com/parallax-vis/parallax/pkg/common"

// excerptKeyLen truncates excerpt text into a dedup key, so near-identical
// windows cut from the same passage collapse to one entry.
const excerptKeyLen = 80

// MergeResults folds per-term search results into one, deduplicating by
// record identifier (event id, document id, actor name) and by truncated
// excerpt text. Order within results is the issue order of the terms, so
// the most specific term's hits win on conflicts; completion order never
// matters because the caller waits for every lookup before merging.
func MergeResults(results []common.SearchResult) common.SearchResult {
	merged := common.SearchResult{}

	seenEvents := make(map[int64]bool)
	seenDocs := make(map[int64]bool)
	seenActors := make(map[string]bool)
	seenExcerpts := make(map[string]bool)

	for _, r := range results {
		for _, e := range r.Events {
			if seenEvents[e.ID] {
				continue
			}
			seenEvents[e.ID] = true
			merged.Events = append(merged.Events, e)
		}
		for _, d := range r.Documents {
			if seenDocs[d.ID] {
				continue
			}
			seenDocs[d.ID] = true
			merged.Documents = append(merged.Documents, d)
		}
		for _, a := range r.Actors {
			if seenActors[a] {
				continue
			}
			seenActors[a] = true
			merged.Actors = append(merged.Actors, a)
		}
		for _, ex := range r.Excerpts {
			key := ex.Text
			if len(key) > excerptKeyLen {
				key = key[:excerptKeyLen]
			}
			if seenExcerpts[key] {
				continue
			}
			seenExcerpts[key] = true
			merged.Excerpts = append(merged.Excerpts, ex)
		}
		merged.TotalExcerpts += r.TotalExcerpts
	}

	return merged
}
