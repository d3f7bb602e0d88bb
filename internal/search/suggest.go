// Package search ranks catalog titles against search terms that the
// browse pipeline could not match, producing "did you mean" hints.
// Suggestion ranking is deliberately separate from the pipeline's
// boolean matching, which has no relevance order at all.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultLimit is the number of suggestions shown for a missed search.
const DefaultLimit = 5

// Suggest returns up to limit titles close to term, best first. It is
// meant to be called only when a non-empty term matched nothing; an
// empty term yields no suggestions.
func Suggest(term string, titles []string, limit int) []string {
	term = strings.TrimSpace(term)
	if term == "" || limit <= 0 {
		return nil
	}

	matches := fuzzy.RankFindNormalizedFold(term, titles)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	out := make([]string, 0, limit)
	for _, match := range matches {
		out = append(out, match.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
