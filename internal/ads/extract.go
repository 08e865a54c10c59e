// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"strconv"
	"strings"

	"github.com/pdiddy/ads-parser/pkg/types"
)

// Document is one entry of an ADS search response. Bibcode is mandatory;
// every other field is optional and defaults to its zero value.
type Document struct {
	Bibcode       string   `json:"bibcode"`
	Title         []string `json:"title,omitempty"`
	Author        []string `json:"author,omitempty"`
	Abstract      string   `json:"abstract,omitempty"`
	Pub           string   `json:"pub,omitempty"`
	Year          string   `json:"year,omitempty"`
	CitationCount *int     `json:"citation_count,omitempty"`
}

// Extract maps a raw ADS document to a PaperRecord. Only a missing bibcode
// is an error.
func Extract(doc Document) (types.PaperRecord, error) {
	bibcode := strings.TrimSpace(doc.Bibcode)
	if bibcode == "" {
		return types.PaperRecord{}, &ValidationError{Field: "bibcode", Doc: describe(doc)}
	}

	rec := types.PaperRecord{
		Bibcode:  bibcode,
		Abstract: strings.TrimSpace(doc.Abstract),
		Journal:  strings.TrimSpace(doc.Pub),
	}
	if len(doc.Title) > 0 {
		rec.Title = strings.TrimSpace(doc.Title[0])
	}
	for _, a := range doc.Author {
		if a = strings.TrimSpace(a); a != "" {
			rec.Authors = append(rec.Authors, a)
		}
	}
	if y, err := strconv.Atoi(strings.TrimSpace(doc.Year)); err == nil && y > 0 {
		rec.Year = y
	}
	if doc.CitationCount != nil && *doc.CitationCount > 0 {
		rec.CitationCount = *doc.CitationCount
	}
	return rec, nil
}

// describe summarizes a document for error messages.
func describe(doc Document) string {
	if len(doc.Title) > 0 && doc.Title[0] != "" {
		return "title " + strconv.Quote(truncate(doc.Title[0], 60))
	}
	return "untitled document"
}
