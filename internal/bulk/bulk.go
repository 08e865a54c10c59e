// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bulk retrieves paper records for many bibcodes through batched
// ADS lookups. Batches run strictly one after another; a batch that fails
// transiently is recorded as not found and the run continues, while a
// rejected token aborts the run.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/ads-parser/internal/ads"
	"github.com/pdiddy/ads-parser/internal/observability"
	"github.com/pdiddy/ads-parser/pkg/types"
)

const (
	// DefaultBatchSize is the number of bibcodes per request.
	DefaultBatchSize = 50

	// DefaultDelay is the pause between consecutive batches used by the
	// CLI when nothing is configured.
	DefaultDelay = 1 * time.Second
)

// Fetcher performs one bulk lookup. *ads.Client satisfies it.
type Fetcher interface {
	BulkLookup(ctx context.Context, bibcodes []string, includeAbstract bool) (ads.BulkResponse, error)
}

// Options controls a bulk run.
type Options struct {
	// BatchSize defaults to DefaultBatchSize.
	BatchSize int

	IncludeAbstracts bool

	// Delay is the minimum spacing between batch requests. Zero or
	// negative disables pacing.
	Delay time.Duration

	// Logger receives progress and swallowed errors. Zero value is a
	// disabled logger.
	Logger zerolog.Logger

	// Metrics is optional.
	Metrics *observability.Metrics

	// Progress, if set, receives one human-readable line per batch.
	Progress io.Writer
}

// FromConfig builds Options from a BulkConfig.
func FromConfig(cfg types.BulkConfig) Options {
	return Options{
		BatchSize:        cfg.BatchSize,
		IncludeAbstracts: cfg.IncludeAbstracts,
		Delay:            cfg.BatchDelay,
	}
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}

// Dedupe trims identifiers, drops blanks, and removes duplicates while
// keeping first-seen order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Partition splits ids into consecutive batches of at most size elements.
// The last batch may be shorter. A non-positive size yields one batch.
func Partition(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size <= 0 || size >= len(ids) {
		return [][]string{ids}
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// Run deduplicates ids, looks them up in batches, and returns the
// accumulated result. Every deduplicated id ends up either in Papers or in
// NotFound. The returned error is non-nil only for an AuthError or a
// cancelled context; the partial result is returned alongside it.
func Run(ctx context.Context, f Fetcher, ids []string, opts Options) (types.BulkResult, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	requested := Dedupe(ids)
	result := types.BulkResult{
		Requested: requested,
		Papers:    make(map[string]types.PaperRecord, len(requested)),
		NotFound:  []string{},
	}
	if len(requested) == 0 {
		return result, nil
	}

	batches := Partition(requested, opts.BatchSize)

	var limiter *rate.Limiter
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	log.Info().
		Int("bibcodes", len(requested)).
		Int("batches", len(batches)).
		Int("batch_size", opts.BatchSize).
		Msg("starting bulk retrieval")

	for i, batch := range batches {
		blog := observability.WithBatchContext(log, i+1, len(batches), len(batch))

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return finish(result, opts), ctxErr(ctx, err)
			}
		}

		start := time.Now()
		resp, err := f.BulkLookup(ctx, batch, opts.IncludeAbstracts)
		elapsed := time.Since(start).Seconds()
		result.RequestsIssued++
		result.RateLimit = result.RateLimit.Tighter(resp.RateLimit)

		if err != nil {
			switch {
			case ctx.Err() != nil:
				opts.Metrics.RecordRequest(observability.OutcomeCancelled, elapsed)
				return finish(result, opts), ctx.Err()
			case ads.IsAuth(err):
				opts.Metrics.RecordRequest(observability.OutcomeAuth, elapsed)
				blog.Error().Err(err).Msg("ADS rejected credentials, aborting")
				return finish(result, opts), fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
			case ads.IsTransient(err):
				opts.Metrics.RecordRequest(observability.OutcomeTransient, elapsed)
				opts.Metrics.RecordBatchFailure()
				result.FailedBatches++
				blog.Warn().Err(err).
					Strs("bibcodes", batch).
					Int("status", statusOf(err)).
					Msg("batch failed, marking bibcodes not found")
				progress(opts.Progress, "batch %d/%d: failed (%v)\n", i+1, len(batches), err)
				continue
			default:
				// Programming or configuration errors (e.g. oversized batch).
				return finish(result, opts), fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
			}
		}
		opts.Metrics.RecordRequest(observability.OutcomeOK, elapsed)

		// Only this batch's bibcodes count: a failed batch stays not found
		// even if a later response carries one of its records.
		inBatch := make(map[string]struct{}, len(batch))
		for _, id := range batch {
			inBatch[id] = struct{}{}
		}
		got := 0
		for _, doc := range resp.Docs {
			rec, err := ads.Extract(doc)
			if err != nil {
				result.Skipped++
				blog.Warn().Err(err).Msg("skipping invalid ADS document")
				continue
			}
			if _, ok := inBatch[rec.Bibcode]; !ok {
				blog.Debug().Str("bibcode", rec.Bibcode).Msg("ignoring unrequested bibcode in response")
				continue
			}
			if _, dup := result.Papers[rec.Bibcode]; !dup {
				got++
			}
			result.Papers[rec.Bibcode] = rec
		}
		blog.Debug().Int("found", got).Msg("batch done")
		progress(opts.Progress, "batch %d/%d: %d of %d found\n", i+1, len(batches), got, len(batch))
	}

	result = finish(result, opts)
	log.Info().
		Int("found", len(result.Papers)).
		Int("not_found", len(result.NotFound)).
		Int("requests", result.RequestsIssued).
		Int("failed_batches", result.FailedBatches).
		Int("ratelimit_remaining", result.RateLimit.Remaining).
		Msg("bulk retrieval complete")
	return result, nil
}

// finish derives NotFound from the requested ids and records metrics.
func finish(result types.BulkResult, opts Options) types.BulkResult {
	result.NotFound = result.NotFound[:0]
	for _, id := range result.Requested {
		if _, ok := result.Papers[id]; !ok {
			result.NotFound = append(result.NotFound, id)
		}
	}
	opts.Metrics.RecordPapers(len(result.Papers), len(result.NotFound), result.Skipped)
	if result.RateLimit.Observed {
		opts.Metrics.RecordRateLimit(result.RateLimit.Remaining)
	}
	return result
}

func statusOf(err error) int {
	var te *ads.TransientError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}

func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func progress(w io.Writer, format string, args ...any) {
	if w != nil {
		fmt.Fprintf(w, format, args...)
	}
}
