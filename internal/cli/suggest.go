package cli

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestClosest returns the choice nearest to input, or "" when nothing is
// close enough to be a plausible typo.
func suggestClosest(input string, choices []string) string {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" || len(choices) == 0 {
		return ""
	}

	// Prefix or subsequence matches ("loo" -> "lookup") win over edit distance.
	if ranks := fuzzy.RankFindFold(input, choices); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best := ""
	bestDist := 1 << 30
	for _, c := range choices {
		d := fuzzy.LevenshteinDistance(input, strings.ToLower(c))
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	limit := 2
	if len(input) >= 8 {
		limit = 3
	}
	if bestDist <= limit {
		return best
	}
	return ""
}
