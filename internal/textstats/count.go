// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import "sort"

// WordCount is one ranked entry.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Table is a word frequency table. It is built once and not modified.
type Table struct {
	counts map[string]int
	order  []string
	total  int
}

// Count cleans every text and tallies the surviving tokens. Texts are
// processed in order, which fixes the first-occurrence order used to
// break ties.
func Count(texts []string, opts Options) *Table {
	opts = opts.withDefaults()
	t := &Table{counts: map[string]int{}}
	for _, text := range texts {
		t.add(Clean(text, opts))
	}
	return t
}

// FromTokens tallies already-cleaned tokens.
func FromTokens(tokens []string) *Table {
	t := &Table{counts: map[string]int{}}
	t.add(tokens)
	return t
}

// FromCounts rebuilds a table from ranked entries, e.g. a frequency file.
// Entry order becomes first-occurrence order; non-positive counts are
// ignored and repeated words are summed.
func FromCounts(entries []WordCount) *Table {
	t := &Table{counts: map[string]int{}}
	for _, e := range entries {
		if e.Count <= 0 || e.Word == "" {
			continue
		}
		if _, ok := t.counts[e.Word]; !ok {
			t.order = append(t.order, e.Word)
		}
		t.counts[e.Word] += e.Count
		t.total += e.Count
	}
	return t
}

func (t *Table) add(tokens []string) {
	for _, w := range tokens {
		if _, ok := t.counts[w]; !ok {
			t.order = append(t.order, w)
		}
		t.counts[w]++
		t.total++
	}
}

// Get returns the count of word, zero when absent.
func (t *Table) Get(word string) int { return t.counts[word] }

// TotalWords is the number of tokens counted. It equals the sum of all
// counts.
func (t *Table) TotalWords() int { return t.total }

// UniqueWords is the number of distinct tokens.
func (t *Table) UniqueWords() int { return len(t.order) }

// Words returns the distinct tokens in first-occurrence order.
func (t *Table) Words() []string {
	return append([]string(nil), t.order...)
}

// Top returns the n most frequent words, by descending count with ties in
// first-occurrence order. n <= 0 returns every word.
func (t *Table) Top(n int) []WordCount {
	ranked := make([]WordCount, len(t.order))
	for i, w := range t.order {
		ranked[i] = WordCount{Word: w, Count: t.counts[w]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
