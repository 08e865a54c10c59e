// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"sort"
	"unicode/utf8"
)

// genericTerms are research words too broad to search on.
var genericTerms = NewStopwords(
	"system", "systems", "object", "objects", "source", "sources", "method", "methods",
	"observation", "observations", "measurement", "measurements", "detection", "detections",
	"model", "models", "simulation", "simulations", "technique", "techniques", "approach",
	"approaches", "investigation", "investigations", "research", "work", "survey", "surveys",
	"catalog", "catalogue", "database", "sample", "samples", "population", "populations",
	"distribution", "distributions", "properties", "characteristics", "parameters",
	"values", "data", "dataset", "datasets", "analysis", "analyses", "statistics",
)

// titleWeight multiplies title counts when combining rankings.
const titleWeight = 2

// minKeywordLength is exclusive: keywords need more runes than this.
const minKeywordLength = 3

// Keywords combines title and abstract frequencies, weighting titles
// double, and returns up to n words suitable for exact-phrase searching.
// Words of three runes or fewer are skipped, as are generic research terms
// when excludeGeneric is set. Ties keep first appearance (titles first).
func Keywords(titles, abstracts []WordCount, n int, excludeGeneric bool) []string {
	combined := map[string]int{}
	var order []string
	add := func(entries []WordCount, weight int) {
		for _, e := range entries {
			if _, ok := combined[e.Word]; !ok {
				order = append(order, e.Word)
			}
			combined[e.Word] += e.Count * weight
		}
	}
	add(titles, titleWeight)
	add(abstracts, 1)

	sort.SliceStable(order, func(i, j int) bool {
		return combined[order[i]] > combined[order[j]]
	})

	var out []string
	for _, w := range order {
		if n > 0 && len(out) >= n {
			break
		}
		if utf8.RuneCountInString(w) <= minKeywordLength {
			continue
		}
		if excludeGeneric && genericTerms.Contains(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// UnionTopWords returns the top n words of a followed by the top n words
// of b not already listed.
func UnionTopWords(a, b []WordCount, n int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, list := range [][]WordCount{a, b} {
		for _, wc := range FromCounts(list).Top(n) {
			if _, ok := seen[wc.Word]; ok {
				continue
			}
			seen[wc.Word] = struct{}{}
			out = append(out, wc.Word)
		}
	}
	return out
}
