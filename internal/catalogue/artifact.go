// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/ads-parser/pkg/types"
)

// Artifact is the on-disk result of a catalogue run. Text analysis and the
// exports read it back without touching the network.
type Artifact struct {
	Metadata Metadata                     `json:"metadata" yaml:"metadata"`
	Papers   map[string]types.PaperRecord `json:"papers" yaml:"papers"`
	NotFound []string                     `json:"not_found" yaml:"not_found"`
	Summary  Summary                      `json:"summary" yaml:"summary"`
}

// Metadata describes the run that produced an artifact.
type Metadata struct {
	RunID            string    `json:"run_id" yaml:"run_id"`
	SourceFile       string    `json:"source_file" yaml:"source_file"`
	Column           string    `json:"column" yaml:"column"`
	DownloadDate     time.Time `json:"download_date" yaml:"download_date"`
	CompletedDate    time.Time `json:"completed_date" yaml:"completed_date"`
	TotalBibcodes    int       `json:"total_bibcodes" yaml:"total_bibcodes"`
	BatchSize        int       `json:"batch_size" yaml:"batch_size"`
	IncludeAbstracts bool      `json:"include_abstracts" yaml:"include_abstracts"`
	PapersRetrieved  int       `json:"papers_retrieved" yaml:"papers_retrieved"`
}

// Summary holds the run totals.
type Summary struct {
	TotalRequested    int             `json:"total_requested" yaml:"total_requested"`
	Found             int             `json:"found" yaml:"found"`
	NotFound          int             `json:"not_found" yaml:"not_found"`
	DuplicatesRemoved int             `json:"duplicates_removed" yaml:"duplicates_removed"`
	SkippedRecords    int             `json:"skipped_records" yaml:"skipped_records"`
	RequestsIssued    int             `json:"requests_issued" yaml:"requests_issued"`
	FailedBatches     int             `json:"failed_batches" yaml:"failed_batches"`
	RateLimit         types.RateLimit `json:"rate_limit" yaml:"rate_limit"`
}

// NewArtifact wraps a bulk result. Metadata totals are filled from the
// result; callers set run identity and timestamps.
func NewArtifact(meta Metadata, res types.BulkResult, duplicatesRemoved int) *Artifact {
	papers := res.Papers
	if papers == nil {
		papers = map[string]types.PaperRecord{}
	}
	notFound := res.NotFound
	if notFound == nil {
		notFound = []string{}
	}

	meta.TotalBibcodes = len(res.Requested)
	meta.PapersRetrieved = len(papers)
	return &Artifact{
		Metadata: meta,
		Papers:   papers,
		NotFound: notFound,
		Summary: Summary{
			TotalRequested:    len(res.Requested),
			Found:             len(papers),
			NotFound:          len(notFound),
			DuplicatesRemoved: duplicatesRemoved,
			SkippedRecords:    res.Skipped,
			RequestsIssued:    res.RequestsIssued,
			FailedBatches:     res.FailedBatches,
			RateLimit:         res.RateLimit,
		},
	}
}

// Bibcodes returns the found bibcodes in sorted order.
func (a *Artifact) Bibcodes() []string {
	out := make([]string, 0, len(a.Papers))
	for b := range a.Papers {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// Records returns the found records sorted by bibcode.
func (a *Artifact) Records() []types.PaperRecord {
	keys := a.Bibcodes()
	out := make([]types.PaperRecord, len(keys))
	for i, b := range keys {
		out[i] = a.Papers[b]
	}
	return out
}

// Result converts the artifact back to a BulkResult. Requested order is
// found bibcodes (sorted) followed by not-found ones, since the artifact
// does not keep input order.
func (a *Artifact) Result() types.BulkResult {
	requested := append(a.Bibcodes(), a.NotFound...)
	return types.BulkResult{
		Requested:      requested,
		Papers:         a.Papers,
		NotFound:       a.NotFound,
		RequestsIssued: a.Summary.RequestsIssued,
		FailedBatches:  a.Summary.FailedBatches,
		Skipped:        a.Summary.SkippedRecords,
		RateLimit:      a.Summary.RateLimit,
	}
}

// Write saves the artifact as indented JSON. The file is written to a
// temporary sibling and renamed into place, so a crash never leaves a
// partial artifact.
func (a *Artifact) Write(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling artifact: %w", err)
	}
	return WriteFileAtomic(path, append(data, '\n'))
}

// ReadArtifact loads an artifact written by Write.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing artifact %s: %w", path, err)
	}
	if a.Papers == nil {
		a.Papers = map[string]types.PaperRecord{}
	}
	// Older artifacts keyed records without repeating the bibcode.
	for b, rec := range a.Papers {
		if rec.Bibcode == "" {
			rec.Bibcode = b
			a.Papers[b] = rec
		}
	}
	if a.NotFound == nil {
		a.NotFound = []string{}
	}
	return &a, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place. Parent directories are created as needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
