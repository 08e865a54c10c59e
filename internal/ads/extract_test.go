// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ads-parser/pkg/types"
)

func intPtr(n int) *int { return &n }

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want types.PaperRecord
	}{
		{
			name: "full document",
			doc: Document{
				Bibcode:       "2019AJ....157..111S",
				Title:         []string{"  Contact binaries  ", "Alternate title"},
				Author:        []string{"Smith, J.", "Doe, A."},
				Abstract:      "We study W UMa stars.",
				Pub:           "The Astronomical Journal",
				Year:          "2019",
				CitationCount: intPtr(12),
			},
			want: types.PaperRecord{
				Bibcode:       "2019AJ....157..111S",
				Title:         "Contact binaries",
				Authors:       []string{"Smith, J.", "Doe, A."},
				Abstract:      "We study W UMa stars.",
				Journal:       "The Astronomical Journal",
				Year:          2019,
				CitationCount: 12,
			},
		},
		{
			name: "bibcode only",
			doc:  Document{Bibcode: "2004A&A...426..247D"},
			want: types.PaperRecord{Bibcode: "2004A&A...426..247D"},
		},
		{
			name: "non-numeric year",
			doc:  Document{Bibcode: "b", Year: "in press"},
			want: types.PaperRecord{Bibcode: "b"},
		},
		{
			name: "empty author entries dropped",
			doc:  Document{Bibcode: "b", Author: []string{"", "  ", "Ng, K."}},
			want: types.PaperRecord{Bibcode: "b", Authors: []string{"Ng, K."}},
		},
		{
			name: "zero citations",
			doc:  Document{Bibcode: "b", CitationCount: intPtr(0)},
			want: types.PaperRecord{Bibcode: "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMissingBibcode(t *testing.T) {
	_, err := Extract(Document{Bibcode: "  ", Title: []string{"Lost paper"}})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "bibcode", ve.Field)
	assert.Contains(t, ve.Error(), "Lost paper")
}

func TestExtractFromJSON(t *testing.T) {
	raw := `{"bibcode":"2020MNRAS.491.1234X","title":["Title"],"year":"2020","citation_count":3}`
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	rec, err := Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, 2020, rec.Year)
	assert.Equal(t, 3, rec.CitationCount)
	assert.Empty(t, rec.Abstract)
}

func TestDescribeTruncatesLongTitles(t *testing.T) {
	got := describe(Document{Title: []string{strings.Repeat("x", 100)}})
	assert.Less(t, len(got), 80)
	assert.Contains(t, got, "...")
	assert.Equal(t, "untitled document", describe(Document{}))

	got = describe(Document{Title: []string{strings.Repeat("Ω", 100)}})
	assert.True(t, utf8.ValidString(got))
	assert.Contains(t, got, strings.Repeat("Ω", 57)+"...")
}
