package query

import (
	"regexp"
	"sort"
	"strings"
)

// Stop words are discarded during plain tokenization. Quoted substrings,
// email-like tokens and username-like tokens bypass the list entirely:
// they are the most specific handles a question can contain.
var stopWords = map[string]bool{
	"a": true, "about": true, "all": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"been": true, "between": true, "but": true, "by": true, "did": true,
	"do": true, "does": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "him": true,
	"his": true, "how": true, "i": true, "in": true, "is": true,
	"it": true, "its": true, "know": true, "me": true, "of": true,
	"on": true, "or": true, "she": true, "tell": true, "that": true,
	"the": true, "their": true, "them": true, "there": true, "they": true,
	"this": true, "to": true, "was": true, "we": true, "were": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"whom": true, "why": true, "with": true, "you": true, "your": true,
}

var (
	reQuoted   = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	reEmail    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reUsername = regexp.MustCompile(`\b[A-Za-z]+[0-9]+\b`)
	reWord     = regexp.MustCompile(`[A-Za-z][A-Za-z'-]+`)
)

// ExtractTerms pulls candidate search terms out of a free-text question.
// Quoted substrings, email-like and username-like patterns rank as
// high-priority terms regardless of the stop-word list; remaining words
// are kept unless stopped. The result is ordered by descending length
// (a proxy for specificity), priority terms first within equal length,
// and deduplicated case-insensitively.
func ExtractTerms(question string) []string {
	type candidate struct {
		term     string
		priority bool
	}
	var candidates []candidate
	seen := make(map[string]bool)
	add := func(term string, priority bool) {
		term = strings.TrimSpace(term)
		if len(term) < 2 {
			return
		}
		key := strings.ToLower(term)
		if seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, candidate{term: term, priority: priority})
	}

	for _, m := range reQuoted.FindAllStringSubmatch(question, -1) {
		if m[1] != "" {
			add(m[1], true)
		} else {
			add(m[2], true)
		}
	}
	for _, m := range reEmail.FindAllString(question, -1) {
		add(m, true)
	}
	for _, m := range reUsername.FindAllString(question, -1) {
		add(m, true)
	}
	for _, m := range reWord.FindAllString(question, -1) {
		if stopWords[strings.ToLower(m)] {
			continue
		}
		add(m, false)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i].term) != len(candidates[j].term) {
			return len(candidates[i].term) > len(candidates[j].term)
		}
		return candidates[i].priority && !candidates[j].priority
	})

	terms := make([]string, len(candidates))
	for i, c := range candidates {
		terms[i] = c.term
	}
	return terms
}
