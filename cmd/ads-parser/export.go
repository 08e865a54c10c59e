// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ads-parser/internal/catalogue"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a catalogue artifact to YAML, CSL-YAML, or SQLite",
	Long: `Export converts a JSON artifact written by catalogue or bulk.

  yaml    the whole artifact as YAML
  csl     CSL-YAML references for Pandoc and reference managers
  sqlite  runs, papers, authors, and not_found tables for ad-hoc SQL

YAML and CSL go to stdout unless --out is given; sqlite needs --out and
replaces any earlier copy of the same run. --input may also name a SQLite
database written by a previous export, in which case --run selects the run
(default: the latest).`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("input", "", "JSON artifact or SQLite database to read")
	exportCmd.Flags().String("format", catalogue.FormatYAML, "export format: "+strings.Join(catalogue.Formats, ", "))
	exportCmd.Flags().String("out", "", "output path")
	exportCmd.Flags().String("run", "", "run id to read from a SQLite input (default latest)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	runID, _ := cmd.Flags().GetString("run")

	if input == "" {
		return fmt.Errorf("provide an artifact with --input")
	}
	format = strings.ToLower(format)
	if !catalogue.ValidFormat(format) {
		return fmt.Errorf("unknown format %q (want %s)", format, strings.Join(catalogue.Formats, ", "))
	}

	a, err := loadArtifact(cmd.Context(), input, runID)
	if err != nil {
		return err
	}

	if format == catalogue.FormatSQLite {
		if outPath == "" {
			return fmt.Errorf("sqlite export needs --out")
		}
		if err := exportSQLite(cmd.Context(), a, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported run %s (%d papers) to %s\n", a.Metadata.RunID, len(a.Papers), outPath)
		return nil
	}

	if outPath == "" {
		return writeExport(cmd.OutOrStdout(), a, format)
	}
	var buf bytes.Buffer
	if err := writeExport(&buf, a, format); err != nil {
		return err
	}
	if err := catalogue.WriteFileAtomic(outPath, buf.Bytes()); err != nil {
		return err
	}
	logger.Info().Str("format", format).Str("path", outPath).Int("papers", len(a.Papers)).Msg("exported")
	return nil
}

func writeExport(w io.Writer, a *catalogue.Artifact, format string) error {
	if format == catalogue.FormatCSL {
		return catalogue.WriteCSL(a, w)
	}
	return catalogue.WriteYAML(a, w)
}

// loadArtifact reads a JSON artifact, or a run from a SQLite export when
// the path has a database extension.
func loadArtifact(ctx context.Context, path, runID string) (*catalogue.Artifact, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := catalogue.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx, runID)
	default:
		return catalogue.ReadArtifact(path)
	}
}

func exportSQLite(ctx context.Context, a *catalogue.Artifact, path string) error {
	store, err := catalogue.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, a)
}
