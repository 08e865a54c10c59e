// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pdiddy/ads-parser/internal/catalogue"
)

// DefaultTopN is the number of ranked words written to a frequency file.
const DefaultTopN = 100

// FrequencyFile is the JSON export of a frequency table.
type FrequencyFile struct {
	Metadata        FrequencyMetadata `json:"metadata"`
	WordFrequencies RankedWords       `json:"word_frequencies"`
}

// FrequencyMetadata describes the corpus behind a frequency file.
type FrequencyMetadata struct {
	TotalWords  int       `json:"total_words"`
	UniqueWords int       `json:"unique_words"`
	TopNWords   int       `json:"top_n_words"`
	Source      string    `json:"source,omitempty"`
	Field       string    `json:"field,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// FrequencyOptions labels an exported table.
type FrequencyOptions struct {
	// TopN defaults to DefaultTopN.
	TopN   int
	Source string
	Field  string

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewFrequencyFile ranks the top words of t.
func NewFrequencyFile(t *Table, opts FrequencyOptions) FrequencyFile {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return FrequencyFile{
		Metadata: FrequencyMetadata{
			TotalWords:  t.TotalWords(),
			UniqueWords: t.UniqueWords(),
			TopNWords:   opts.TopN,
			Source:      opts.Source,
			Field:       opts.Field,
			GeneratedAt: opts.Now().UTC(),
		},
		WordFrequencies: t.Top(opts.TopN),
	}
}

// WriteFrequencies writes the ranked top words of t with metadata to path.
func WriteFrequencies(path string, t *Table, opts FrequencyOptions) error {
	data, err := json.MarshalIndent(NewFrequencyFile(t, opts), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling frequencies: %w", err)
	}
	return catalogue.WriteFileAtomic(path, append(data, '\n'))
}

// ReadFrequencies loads a frequency file. Both the ranked list form and
// the older object form ({"word": count, ...}) are accepted.
func ReadFrequencies(path string) (*FrequencyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading frequencies: %w", err)
	}
	var ff FrequencyFile
	if err := json.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing frequencies %s: %w", path, err)
	}
	return &ff, nil
}

// RankedWords is a ranked word list. It decodes from a JSON array of
// {word, count} objects or from a JSON object mapping word to count, in
// which case key order is kept.
type RankedWords []WordCount

// UnmarshalJSON implements json.Unmarshaler.
func (r *RankedWords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if data[0] == '[' {
		var list []WordCount
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("word_frequencies: want array or object")
	}
	var out []WordCount
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		word, ok := tok.(string)
		if !ok {
			return fmt.Errorf("word_frequencies: unexpected key %v", tok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("word_frequencies[%q]: %w", word, err)
		}
		out = append(out, WordCount{Word: word, Count: count})
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	*r = out
	return nil
}

// Table rebuilds a frequency table from the ranked list.
func (f *FrequencyFile) Table() *Table {
	return FromCounts(f.WordFrequencies)
}
