// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ads-parser/internal/catalogue"
)

var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Download every paper listed in a CSV catalogue",
	Long: `Catalogue reads bibcodes from a column of a CSV file, removes duplicates,
fetches the records in batches, and writes one JSON artifact with the
papers, the bibcodes ADS did not return, and a run summary.

The input file is checked before any request is sent. The artifact is
written once, at the end; an aborted run leaves no output file.`,
	Args: cobra.NoArgs,
	RunE: runCatalogue,
}

func init() {
	catalogueCmd.Flags().String("csv", "", "CSV file listing bibcodes")
	catalogueCmd.Flags().String("out", "", "output JSON artifact (default <csv name>_papers.json)")
	catalogueCmd.Flags().String("column", "", "CSV column holding bibcodes (default bibcode)")
	addBulkFlags(catalogueCmd)

	viper.BindPFlag("catalogue.input_path", catalogueCmd.Flags().Lookup("csv"))
	viper.BindPFlag("catalogue.output_path", catalogueCmd.Flags().Lookup("out"))
	viper.BindPFlag("catalogue.column", catalogueCmd.Flags().Lookup("column"))

	rootCmd.AddCommand(catalogueCmd)
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ccfg := cfg.Catalogue
	applyBulkFlags(cmd, &ccfg.BulkConfig)
	if ccfg.InputPath == "" {
		return fmt.Errorf("provide the catalogue with --csv or catalogue.input_path")
	}
	if ccfg.Column == "" {
		ccfg.Column = catalogue.DefaultColumn
	}
	if ccfg.OutputPath == "" {
		ccfg.OutputPath = defaultArtifactPath(ccfg.InputPath)
	}

	// Reject unusable input before resolving the token or touching the network.
	if _, err := catalogue.ReadIdentifiers(ccfg.InputPath, ccfg.Column); err != nil {
		return err
	}

	client, err := newClient(cmd, cfg.ADS)
	if err != nil {
		return err
	}

	art, err := catalogue.Run(cmd.Context(), client, ccfg, catalogue.RunOptions{
		Logger:   logger,
		Metrics:  metrics,
		Progress: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ccfg.OutputPath)
	if art.Summary.FailedBatches > 0 {
		return fmt.Errorf("%d batch(es) failed; their bibcodes are listed as not found", art.Summary.FailedBatches)
	}
	return nil
}

// defaultArtifactPath names the artifact after the CSV: a/b/list.csv
// becomes a/b/list_papers.json.
func defaultArtifactPath(csvPath string) string {
	ext := filepath.Ext(csvPath)
	return strings.TrimSuffix(csvPath, ext) + "_papers.json"
}
