// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTotals(t *testing.T) {
	texts := []string{
		"Contact binary stars in the Kepler field",
		"Period changes of contact binary systems",
		"<i>Binary</i> evolution",
	}
	table := Count(texts, Options{})

	sum := 0
	for _, w := range table.Words() {
		sum += table.Get(w)
	}
	assert.Equal(t, table.TotalWords(), sum)
	assert.Equal(t, 3, table.Get("binary"))
	assert.Equal(t, 2, table.Get("contact"))
	assert.Equal(t, len(table.Words()), table.UniqueWords())
	assert.Zero(t, table.Get("the"))
}

func TestTopTiesByFirstOccurrence(t *testing.T) {
	table := FromTokens([]string{"zeta", "alpha", "beta", "alpha", "zeta", "gamma"})

	assert.Equal(t, []WordCount{
		{"zeta", 2}, {"alpha", 2}, {"beta", 1}, {"gamma", 1},
	}, table.Top(0))
	assert.Equal(t, []WordCount{{"zeta", 2}, {"alpha", 2}, {"beta", 1}}, table.Top(3))
	assert.Len(t, table.Top(100), 4)
}

func TestTopEmpty(t *testing.T) {
	table := Count(nil, Options{})
	assert.Empty(t, table.Top(10))
	assert.Zero(t, table.TotalWords())
}

func TestFromCounts(t *testing.T) {
	table := FromCounts([]WordCount{{"binary", 5}, {"star", 3}, {"binary", 1}, {"void", 0}, {"", 4}})
	assert.Equal(t, 6, table.Get("binary"))
	assert.Equal(t, 9, table.TotalWords())
	assert.Equal(t, []string{"binary", "star"}, table.Words())
}
