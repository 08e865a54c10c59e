// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ads-parser/internal/catalogue"
	"github.com/pdiddy/ads-parser/pkg/types"
)

func TestWriteReadFrequencies(t *testing.T) {
	table := FromTokens([]string{"binary", "star", "binary", "period", "star", "binary"})
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "wordclouds", "titles_frequencies.json")

	err := WriteFrequencies(path, table, FrequencyOptions{TopN: 2, Source: "papers.json", Field: "titles", Now: func() time.Time { return now }})
	require.NoError(t, err)

	ff, err := ReadFrequencies(path)
	require.NoError(t, err)
	assert.Equal(t, 6, ff.Metadata.TotalWords)
	assert.Equal(t, 3, ff.Metadata.UniqueWords)
	assert.Equal(t, 2, ff.Metadata.TopNWords)
	assert.Equal(t, "titles", ff.Metadata.Field)
	assert.True(t, now.Equal(ff.Metadata.GeneratedAt))
	assert.Equal(t, RankedWords{{"binary", 3}, {"star", 2}}, ff.WordFrequencies)
}

func TestFrequencyFileJSONShape(t *testing.T) {
	ff := NewFrequencyFile(FromTokens([]string{"binary"}), FrequencyOptions{})
	data, err := json.Marshal(ff)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	meta := raw["metadata"].(map[string]any)
	assert.EqualValues(t, DefaultTopN, meta["top_n_words"])
	for _, key := range []string{"total_words", "unique_words", "generated_at"} {
		assert.Contains(t, meta, key)
	}
	list := raw["word_frequencies"].([]any)
	assert.Equal(t, map[string]any{"word": "binary", "count": float64(1)}, list[0])
}

func TestReadFrequenciesObjectForm(t *testing.T) {
	legacy := `{
  "metadata": {"total_words": 10, "unique_words": 3, "top_n_words": 100, "generated_at": "2025-01-20T00:00:00Z"},
  "word_frequencies": {"contact": 5, "binary": 4, "period": 1}
}`
	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	ff, err := ReadFrequencies(path)
	require.NoError(t, err)
	assert.Equal(t, RankedWords{{"contact", 5}, {"binary", 4}, {"period", 1}}, ff.WordFrequencies)
	assert.Equal(t, 5, ff.Table().Get("contact"))
}

func TestReadFrequenciesErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadFrequencies(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"word_frequencies": "nope"}`), 0o644))
	_, err = ReadFrequencies(bad)
	assert.Error(t, err)
}

func TestTexts(t *testing.T) {
	a := &catalogue.Artifact{Papers: map[string]types.PaperRecord{
		"B": {Bibcode: "B", Title: "Second title", Abstract: "Second abstract"},
		"A": {Bibcode: "A", Title: "First title"},
		"C": {Bibcode: "C", Abstract: "Only abstract"},
	}}

	tests := []struct {
		field types.TextField
		want  []string
	}{
		{types.FieldTitles, []string{"First title", "Second title"}},
		{"", []string{"First title", "Second title"}},
		{types.FieldAbstracts, []string{"Second abstract", "Only abstract"}},
		{types.FieldAll, []string{"First title", "Second title", "Second abstract", "Only abstract"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got, err := Texts(a, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Texts(a, "keywords")
	assert.Error(t, err)
}
