// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalogue downloads ADS records for every bibcode listed in a
// CSV catalogue and saves them as a single JSON artifact. It also exports
// artifacts to YAML, CSL-YAML, and SQLite.
package catalogue

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/ads-parser/internal/bulk"
	"github.com/pdiddy/ads-parser/internal/observability"
	"github.com/pdiddy/ads-parser/pkg/types"
)

// RunOptions carries the ambient collaborators of a catalogue run.
type RunOptions struct {
	Logger   zerolog.Logger
	Metrics  *observability.Metrics
	Progress io.Writer

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run reads bibcodes from cfg.InputPath, retrieves them through the bulk
// pipeline, and writes the artifact to cfg.OutputPath once at the end. An
// unusable input file fails with a FileFormatError before any request is
// sent. When the bulk run aborts (auth failure, cancellation) nothing is
// written and the partial artifact is returned with the error.
func Run(ctx context.Context, f bulk.Fetcher, cfg types.CatalogueConfig, opts RunOptions) (*Artifact, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if cfg.Column == "" {
		cfg.Column = DefaultColumn
	}

	ids, err := ReadIdentifiers(cfg.InputPath, cfg.Column)
	if err != nil {
		return nil, err
	}
	unique := bulk.Dedupe(ids)
	if len(unique) == 0 {
		return nil, &FileFormatError{Path: cfg.InputPath, Reason: "no bibcodes in " + cfg.Column + " column"}
	}
	dups := len(ids) - len(unique)

	runID := uuid.NewString()
	log := observability.WithRunContext(opts.Logger, runID, "catalogue")
	log.Info().
		Str("source", cfg.InputPath).
		Int("rows", len(ids)).
		Int("unique", len(unique)).
		Int("duplicates_removed", dups).
		Msg("read catalogue")
	progress(opts.Progress, "Read %d bibcodes (%d duplicates removed)\n", len(unique), dups)

	bopts := bulk.FromConfig(cfg.BulkConfig)
	bopts.Logger = log
	bopts.Metrics = opts.Metrics
	bopts.Progress = opts.Progress

	meta := Metadata{
		RunID:            runID,
		SourceFile:       cfg.InputPath,
		Column:           cfg.Column,
		DownloadDate:     now().UTC(),
		BatchSize:        batchSize(bopts.BatchSize),
		IncludeAbstracts: cfg.IncludeAbstracts,
	}

	res, runErr := bulk.Run(ctx, f, unique, bopts)
	meta.CompletedDate = now().UTC()
	art := NewArtifact(meta, res, dups)
	if runErr != nil {
		return art, runErr
	}

	if cfg.OutputPath != "" {
		if err := art.Write(cfg.OutputPath); err != nil {
			return art, err
		}
		log.Info().Str("path", cfg.OutputPath).Msg("artifact written")
	}

	progress(opts.Progress, "\nCatalogue summary: %d found, %d not found, %d requests (total: %d)\n",
		art.Summary.Found, art.Summary.NotFound, art.Summary.RequestsIssued, art.Summary.TotalRequested)
	if art.Summary.RateLimit.Observed {
		progress(opts.Progress, "Rate limit remaining: %d\n", art.Summary.RateLimit.Remaining)
	}
	return art, nil
}

func batchSize(n int) int {
	if n <= 0 {
		return bulk.DefaultBatchSize
	}
	return n
}

func progress(w io.Writer, format string, args ...any) {
	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}
