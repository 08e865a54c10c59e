// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ads-parser/internal/textstats"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Suggest search keywords from frequency files",
	Long: `Keywords combines a titles and an abstracts frequency file written by
wordcloud. Title counts weigh double; words of three letters or fewer and
generic research terms ("analysis", "model", "survey") are left out.

With --union it instead lists the top words of each file, deduplicated.`,
	Args: cobra.NoArgs,
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().String("titles", "", "titles frequency file")
	keywordsCmd.Flags().String("abstracts", "", "abstracts frequency file")
	keywordsCmd.Flags().IntP("count", "n", 20, "number of words to list")
	keywordsCmd.Flags().Bool("include-generic", false, "keep generic research terms")
	keywordsCmd.Flags().Bool("union", false, "list the union of each file's top words")
	keywordsCmd.Flags().Bool("query", false, "print an ADS abstract query joining the keywords with OR")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	titlesPath, _ := cmd.Flags().GetString("titles")
	abstractsPath, _ := cmd.Flags().GetString("abstracts")
	if titlesPath == "" && abstractsPath == "" {
		return fmt.Errorf("provide --titles, --abstracts, or both")
	}
	n, _ := cmd.Flags().GetInt("count")
	includeGeneric, _ := cmd.Flags().GetBool("include-generic")
	union, _ := cmd.Flags().GetBool("union")
	asQuery, _ := cmd.Flags().GetBool("query")

	titles, err := readRanked(titlesPath)
	if err != nil {
		return err
	}
	abstracts, err := readRanked(abstractsPath)
	if err != nil {
		return err
	}

	var words []string
	if union {
		words = textstats.UnionTopWords(titles, abstracts, n)
	} else {
		words = textstats.Keywords(titles, abstracts, n, !includeGeneric)
	}

	out := cmd.OutOrStdout()
	if asQuery {
		fmt.Fprintln(out, abstractQuery(words))
		return nil
	}
	for i, w := range words {
		fmt.Fprintf(out, "%2d. %s\n", i+1, w)
	}
	return nil
}

func readRanked(path string) ([]textstats.WordCount, error) {
	if path == "" {
		return nil, nil
	}
	ff, err := textstats.ReadFrequencies(path)
	if err != nil {
		return nil, err
	}
	return ff.WordFrequencies, nil
}

// abstractQuery builds an ADS query matching any keyword as an exact
// abstract phrase.
func abstractQuery(words []string) string {
	clauses := make([]string, len(words))
	for i, w := range words {
		clauses[i] = `abs:"` + w + `"`
	}
	return strings.Join(clauses, " OR ")
}
