// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords(t *testing.T) {
	titles := []WordCount{{"contact", 10}, {"binary", 8}, {"systems", 7}, {"uma", 6}}
	abstracts := []WordCount{{"period", 25}, {"binary", 3}, {"spots", 12}, {"data", 40}}

	// Combined: binary 19, contact 20, period 25, spots 12, systems 14, data 40.
	got := Keywords(titles, abstracts, 4, true)
	assert.Equal(t, []string{"period", "contact", "binary", "spots"}, got)

	withGeneric := Keywords(titles, abstracts, 3, false)
	assert.Equal(t, []string{"data", "period", "contact"}, withGeneric)
}

func TestKeywordsSkipsShortWords(t *testing.T) {
	got := Keywords([]WordCount{{"uma", 100}, {"star", 1}}, nil, 10, true)
	assert.Equal(t, []string{"star"}, got)
}

func TestUnionTopWords(t *testing.T) {
	a := []WordCount{{"contact", 5}, {"binary", 4}, {"period", 1}}
	b := []WordCount{{"binary", 9}, {"spots", 3}, {"light", 2}}

	assert.Equal(t, []string{"contact", "binary", "spots"}, UnionTopWords(a, b, 2))
	assert.Equal(t, []string{"contact", "binary", "period", "spots", "light"}, UnionTopWords(a, b, 0))
}
