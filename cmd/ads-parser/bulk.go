// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/ads-parser/internal/bulk"
	"github.com/pdiddy/ads-parser/internal/catalogue"
	"github.com/pdiddy/ads-parser/pkg/types"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk [bibcodes...]",
	Short: "Fetch many papers in batched requests",
	Long: `Bulk deduplicates the given bibcodes, splits them into batches, and fetches
each batch with one ADS request. Batches that fail transiently are reported
as not found and the run continues; a rejected token stops the run.

Bibcodes come from the arguments, from --file (one per line, or a CSV with
a bibcode column), or both.`,
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().String("file", "", "file listing bibcodes (.csv or one per line)")
	bulkCmd.Flags().String("column", "", "CSV column holding bibcodes (default bibcode)")
	bulkCmd.Flags().String("out", "", "write the result as a JSON artifact to this path")
	addBulkFlags(bulkCmd)

	rootCmd.AddCommand(bulkCmd)
}

// addBulkFlags registers the flags shared by bulk and catalogue.
func addBulkFlags(cmd *cobra.Command) {
	cmd.Flags().Int("batch-size", 0, "bibcodes per request (default 50)")
	cmd.Flags().Bool("abstracts", false, "request abstracts")
	cmd.Flags().Duration("delay", 0, "minimum spacing between requests (default 1s, 0 disables pacing)")
}

// applyBulkFlags overrides config values with flags the user set.
func applyBulkFlags(cmd *cobra.Command, cfg *types.BulkConfig) {
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	}
	if cmd.Flags().Changed("abstracts") {
		cfg.IncludeAbstracts, _ = cmd.Flags().GetBool("abstracts")
	}
	if cmd.Flags().Changed("delay") {
		cfg.BatchDelay, _ = cmd.Flags().GetDuration("delay")
	}
}

func runBulk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	bcfg := cfg.Catalogue.BulkConfig
	applyBulkFlags(cmd, &bcfg)

	ids := append([]string(nil), args...)
	source := "arguments"
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		column, _ := cmd.Flags().GetString("column")
		fromFile, err := readBibcodeFile(path, column)
		if err != nil {
			return err
		}
		ids = append(ids, fromFile...)
		source = path
	}
	unique := bulk.Dedupe(ids)
	if len(unique) == 0 {
		return fmt.Errorf("provide one or more bibcodes as arguments or with --file")
	}

	client, err := newClient(cmd, cfg.ADS)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := bulk.FromConfig(bcfg)
	opts.Logger = logger
	opts.Metrics = metrics
	opts.Progress = out

	started := time.Now().UTC()
	res, err := bulk.Run(cmd.Context(), client, unique, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFound %d of %d bibcodes in %d requests\n", len(res.Papers), len(res.Requested), res.RequestsIssued)
	for _, b := range res.NotFound {
		fmt.Fprintf(out, "  not found: %s\n", b)
	}
	if res.RateLimit.Observed {
		fmt.Fprintf(out, "Rate limit remaining: %d of %d\n", res.RateLimit.Remaining, res.RateLimit.Limit)
	}

	if path, _ := cmd.Flags().GetString("out"); path != "" {
		art := catalogue.NewArtifact(catalogue.Metadata{
			RunID:            uuid.NewString(),
			SourceFile:       source,
			DownloadDate:     started,
			CompletedDate:    time.Now().UTC(),
			BatchSize:        opts.BatchSize,
			IncludeAbstracts: opts.IncludeAbstracts,
		}, res, len(ids)-len(unique))
		if err := art.Write(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	}

	if res.HasFailures() {
		return fmt.Errorf("%d batch(es) failed; their bibcodes are listed as not found", res.FailedBatches)
	}
	return nil
}

// readBibcodeFile reads bibcodes from a CSV column or, for any other
// extension, one per line with '#' comments.
func readBibcodeFile(path, column string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		if column == "" {
			column = catalogue.DefaultColumn
		}
		return catalogue.ReadIdentifiers(path, column)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return readBibcodeLines(f)
}

func readBibcodeLines(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading bibcodes: %w", err)
	}
	return ids, nil
}
