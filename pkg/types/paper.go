// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ads-parser pipeline.
package types

import (
	"sort"
	"time"
)

// PaperRecord is the flattened metadata of one ADS document. Records are
// built by the extractor and never modified afterwards.
type PaperRecord struct {
	// Bibcode is the ADS bibliographic code, unique per publication.
	Bibcode string `json:"bibcode" yaml:"bibcode"`

	// Title is the first entry of the ADS title list.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is empty when ADS has none or it was not requested.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Journal is the publication venue (ADS "pub" field).
	Journal string `json:"journal" yaml:"journal"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year" yaml:"year"`

	// CitationCount is the ADS citation count, zero when absent.
	CitationCount int `json:"citation_count" yaml:"citation_count"`
}

// RateLimit is the quota snapshot carried by ADS response headers.
type RateLimit struct {
	// Observed is false until a response carried the headers.
	Observed bool `json:"observed" yaml:"observed"`

	// Limit is the daily request allowance (X-RateLimit-Limit).
	Limit int `json:"limit" yaml:"limit"`

	// Remaining is the number of requests left (X-RateLimit-Remaining).
	Remaining int `json:"remaining" yaml:"remaining"`

	// Reset is when the allowance is restored (X-RateLimit-Reset).
	Reset time.Time `json:"reset" yaml:"reset"`
}

// Tighter returns whichever snapshot has fewer remaining requests. An
// unobserved snapshot never wins over an observed one.
func (r RateLimit) Tighter(other RateLimit) RateLimit {
	switch {
	case !other.Observed:
		return r
	case !r.Observed:
		return other
	case other.Remaining < r.Remaining:
		return other
	default:
		return r
	}
}

// BulkResult accumulates the outcome of a bulk retrieval run.
type BulkResult struct {
	// Requested is the deduplicated input in first-seen order.
	Requested []string `json:"requested" yaml:"requested"`

	// Papers maps bibcode to its record.
	Papers map[string]PaperRecord `json:"papers" yaml:"papers"`

	// NotFound lists requested bibcodes with no record, in request order.
	NotFound []string `json:"not_found" yaml:"not_found"`

	// RequestsIssued counts bulk calls made, successful or not.
	RequestsIssued int `json:"requests_issued" yaml:"requests_issued"`

	// FailedBatches counts batches lost to transient errors.
	FailedBatches int `json:"failed_batches" yaml:"failed_batches"`

	// Skipped counts response documents dropped by validation.
	Skipped int `json:"skipped" yaml:"skipped"`

	// RateLimit is the tightest quota snapshot seen during the run.
	RateLimit RateLimit `json:"rate_limit" yaml:"rate_limit"`
}

// Found returns the bibcodes with records, in request order.
func (r BulkResult) Found() []string {
	found := make([]string, 0, len(r.Papers))
	for _, b := range r.Requested {
		if _, ok := r.Papers[b]; ok {
			found = append(found, b)
		}
	}
	if len(found) == len(r.Papers) {
		return found
	}
	// Papers loaded without a Requested list (e.g. from older artifacts).
	found = found[:0]
	for b := range r.Papers {
		found = append(found, b)
	}
	sort.Strings(found)
	return found
}

// HasFailures reports whether any batch failed.
func (r BulkResult) HasFailures() bool {
	return r.FailedBatches > 0
}
