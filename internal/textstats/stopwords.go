// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Stopwords is a set of lowercase words dropped during cleaning.
type Stopwords map[string]struct{}

// NewStopwords builds a set from words, lowercased and trimmed.
func NewStopwords(words ...string) Stopwords {
	s := make(Stopwords, len(words))
	s.Add(words...)
	return s
}

// Add inserts words into the set.
func (s Stopwords) Add(words ...string) {
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			s[w] = struct{}{}
		}
	}
}

// Contains reports whether w is in the set.
func (s Stopwords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Merge returns a new set holding the words of s and other.
func (s Stopwords) Merge(other Stopwords) Stopwords {
	out := make(Stopwords, len(s)+len(other))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range other {
		out[w] = struct{}{}
	}
	return out
}

var defaultStopwords = []string{
	"the", "and", "of", "in", "to", "a", "is", "are", "for", "with", "by", "on", "as",
	"at", "be", "or", "an", "we", "it", "that", "from", "this", "these", "have", "has",
	"was", "were", "been", "their", "they", "them", "than", "more", "can", "will", "would",
	"could", "should", "may", "might", "must", "shall", "do", "does", "did", "had", "which",
	"who", "what", "where", "when", "why", "how", "all", "any", "each", "every", "some",
	"many", "much", "most", "other", "such", "only", "own", "same", "so", "also", "just",
	"now", "here", "there", "then", "very", "well", "still", "even", "back", "through",
	"about", "into", "over", "after", "up", "out", "if", "no", "not", "new", "our", "but",
	"first", "last", "two", "three", "one", "year", "years", "time", "during", "within",
	"between", "under", "above", "below", "found", "using", "used", "based", "obtained",
	"observed", "presented", "show", "shows", "shown", "present", "presents", "analysis",
	"study", "studies", "paper", "data", "results", "result", "suggest", "suggests",
	"indicate", "indicates", "determine", "determined", "calculate", "calculated",
	"measure", "measured", "estimate", "estimated", "derive", "derived", "find", "finds",
}

// DefaultStopwords returns a fresh copy of the stopword list tuned for
// astronomical abstracts: English function words plus reporting verbs
// ("observed", "derived") that dominate every paper.
func DefaultStopwords() Stopwords {
	return NewStopwords(defaultStopwords...)
}

// LoadStopwords reads a stopword file. A YAML sequence of strings is
// accepted; anything else is read as one word per line, with blank lines
// and lines starting with '#' ignored.
func LoadStopwords(path string) (Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stopwords: %w", err)
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return NewStopwords(list...), nil
	}

	s := Stopwords{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parsing stopwords %s: %w", path, err)
	}
	return s, nil
}
