// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ads-parser/pkg/types"
)

func sampleResult() types.BulkResult {
	return types.BulkResult{
		Requested: []string{"2019AJ....157..111S", "MISSING", "2004A&A...426..247D"},
		Papers: map[string]types.PaperRecord{
			"2019AJ....157..111S": {
				Bibcode:       "2019AJ....157..111S",
				Title:         "Contact binaries in the Catalina survey",
				Authors:       []string{"Smith, J.", "Doe, A."},
				Abstract:      "We study W UMa stars with $\\alpha$ < 1.",
				Journal:       "The Astronomical Journal",
				Year:          2019,
				CitationCount: 12,
			},
			"2004A&A...426..247D": {
				Bibcode: "2004A&A...426..247D",
				Title:   "Spots on contact binaries",
				Authors: []string{"Dupont, M."},
				Journal: "Astronomy and Astrophysics",
				Year:    2004,
			},
		},
		NotFound:       []string{"MISSING"},
		RequestsIssued: 2,
		FailedBatches:  1,
		Skipped:        1,
		RateLimit: types.RateLimit{
			Observed:  true,
			Limit:     5000,
			Remaining: 4321,
			Reset:     time.Unix(1767225600, 0).UTC(),
		},
	}
}

func sampleArtifact() *Artifact {
	meta := Metadata{
		RunID:            "6f1c1f34-3f0b-4b9c-9d1e-2a7c5c1d0e11",
		SourceFile:       "data/WUMaCat.csv",
		Column:           "bibcode",
		DownloadDate:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		CompletedDate:    time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC),
		BatchSize:        50,
		IncludeAbstracts: true,
	}
	return NewArtifact(meta, sampleResult(), 4)
}

func TestNewArtifactSummary(t *testing.T) {
	a := sampleArtifact()

	assert.Equal(t, 3, a.Summary.TotalRequested)
	assert.Equal(t, 2, a.Summary.Found)
	assert.Equal(t, 1, a.Summary.NotFound)
	assert.Equal(t, 4, a.Summary.DuplicatesRemoved)
	assert.Equal(t, 1, a.Summary.SkippedRecords)
	assert.Equal(t, 2, a.Summary.RequestsIssued)
	assert.Equal(t, 4321, a.Summary.RateLimit.Remaining)
	assert.Equal(t, 3, a.Metadata.TotalBibcodes)
	assert.Equal(t, 2, a.Metadata.PapersRetrieved)
}

func TestArtifactRoundTrip(t *testing.T) {
	a := sampleArtifact()
	path := filepath.Join(t.TempDir(), "out", "papers.json")

	require.NoError(t, a.Write(path))
	got, err := ReadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, a.Papers, got.Papers)
	assert.Equal(t, a.NotFound, got.NotFound)
	assert.Equal(t, a.Summary, got.Summary)
	assert.Equal(t, a.Metadata, got.Metadata)

	res := got.Result()
	assert.ElementsMatch(t, []string{"2019AJ....157..111S", "2004A&A...426..247D"}, res.Found())
	assert.Equal(t, []string{"MISSING"}, res.NotFound)
}

func TestArtifactJSONShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")
	require.NoError(t, sampleArtifact().Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "metadata")
	assert.Contains(t, raw, "papers")
	assert.Contains(t, raw, "not_found")
	assert.Contains(t, raw, "summary")

	var summary map[string]any
	require.NoError(t, json.Unmarshal(raw["summary"], &summary))
	for _, key := range []string{"total_requested", "found", "not_found", "rate_limit"} {
		assert.Contains(t, summary, key)
	}
}

func TestArtifactWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers.json")
	require.NoError(t, sampleArtifact().Write(path))
	require.NoError(t, sampleArtifact().Write(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "papers.json", entries[0].Name())
}

func TestReadArtifactLegacyPapers(t *testing.T) {
	// Records keyed by bibcode with only title and abstract.
	legacy := `{
  "metadata": {"source_file": "WUMaCat.csv", "total_bibcodes": 2, "batch_size": 50},
  "papers": {
    "2019AJ....157..111S": {"title": "Contact binaries", "abstract": "W UMa stars."}
  }
}`
	path := filepath.Join(t.TempDir(), "legacy.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	a, err := ReadArtifact(path)
	require.NoError(t, err)
	rec := a.Papers["2019AJ....157..111S"]
	assert.Equal(t, "2019AJ....157..111S", rec.Bibcode)
	assert.Equal(t, "Contact binaries", rec.Title)
	assert.NotNil(t, a.NotFound)
}

func TestReadArtifactErrors(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = ReadArtifact(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing artifact")
}

func TestRecordsSortedByBibcode(t *testing.T) {
	recs := sampleArtifact().Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "2004A&A...426..247D", recs[0].Bibcode)
	assert.Equal(t, "2019AJ....157..111S", recs[1].Bibcode)
}
