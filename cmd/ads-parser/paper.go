// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ads-parser/internal/ads"
	"github.com/pdiddy/ads-parser/pkg/types"
)

var paperCmd = &cobra.Command{
	Use:   "paper <bibcode>",
	Short: "Look up one paper by bibcode",
	Long: `Paper fetches a single record from the ADS search endpoint and prints its
title, authors, journal, year, and citation count. A bibcode ADS does not
know is reported, not treated as a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaper,
}

func init() {
	paperCmd.Flags().Bool("abstract", false, "include the abstract")
	paperCmd.Flags().Bool("json", false, "output the record as JSON")

	rootCmd.AddCommand(paperCmd)
}

func runPaper(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cmd, cfg.ADS)
	if err != nil {
		return err
	}

	withAbstract, _ := cmd.Flags().GetBool("abstract")
	rec, err := client.Lookup(cmd.Context(), args[0], withAbstract)
	switch {
	case ads.IsNotFound(err):
		fmt.Fprintf(cmd.OutOrStdout(), "No paper found for %s\n", args[0])
		return nil
	case err != nil:
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	printPaper(cmd.OutOrStdout(), rec)
	return nil
}

func printPaper(w io.Writer, r types.PaperRecord) {
	fmt.Fprintf(w, "Bibcode:   %s\n", r.Bibcode)
	fmt.Fprintf(w, "Title:     %s\n", r.Title)
	fmt.Fprintf(w, "Authors:   %s\n", formatAuthors(r.Authors, 5))
	fmt.Fprintf(w, "Journal:   %s\n", r.Journal)
	if r.Year > 0 {
		fmt.Fprintf(w, "Year:      %d\n", r.Year)
	}
	fmt.Fprintf(w, "Citations: %d\n", r.CitationCount)
	if r.Abstract != "" {
		fmt.Fprintf(w, "\n%s\n", r.Abstract)
	}
}

// formatAuthors joins up to limit names and summarizes the rest.
func formatAuthors(authors []string, limit int) string {
	if len(authors) == 0 {
		return "(none)"
	}
	if len(authors) <= limit {
		return strings.Join(authors, "; ")
	}
	return fmt.Sprintf("%s; et al. (%d authors)", strings.Join(authors[:limit], "; "), len(authors))
}
