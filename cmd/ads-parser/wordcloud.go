// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ads-parser/internal/catalogue"
	"github.com/pdiddy/ads-parser/internal/textstats"
	"github.com/pdiddy/ads-parser/internal/wordcloud"
	"github.com/pdiddy/ads-parser/pkg/types"
)

var wordcloudCmd = &cobra.Command{
	Use:   "wordcloud",
	Short: "Count words in an artifact and render a word cloud",
	Long: `Wordcloud cleans the titles or abstracts of a catalogue artifact (HTML and
LaTeX markup, stopwords, short words), counts the remaining words, and
writes two files: a PNG word cloud drawn from the full table and a JSON
list of the top words with totals and a timestamp.

By default both files go to a wordclouds/ directory next to the input,
named after the field.`,
	Args: cobra.NoArgs,
	RunE: runWordCloud,
}

func init() {
	f := wordcloudCmd.Flags()
	f.String("input", "", "JSON artifact or SQLite export to analyze")
	f.String("run", "", "run id when --input is a SQLite export (default latest)")
	f.String("field", "", "text to analyze: titles, abstracts, or all (default titles)")
	f.String("png", "", "word cloud output (default wordclouds/<field>_wordcloud.png)")
	f.String("freq", "", "frequency output (default wordclouds/<field>_frequencies.json)")
	f.Int("top", 0, "words in the frequency file (default 100)")
	f.Int("min-length", 0, "shortest word kept (default 3)")
	f.String("stopwords", "", "extra stopwords file (YAML list or one word per line)")
	f.Bool("replace-stopwords", false, "use only the --stopwords file, not the built-in list")
	f.Bool("keep-numbers", false, "keep digits inside words")
	f.Int("width", 0, "image width in pixels (default 1200)")
	f.Int("height", 0, "image height in pixels (default 600)")
	f.Int("max-words", 0, "words drawn in the cloud (default 100)")

	viper.BindPFlag("wordcloud.field", f.Lookup("field"))
	viper.BindPFlag("wordcloud.top_n", f.Lookup("top"))
	viper.BindPFlag("wordcloud.min_word_length", f.Lookup("min-length"))
	viper.BindPFlag("wordcloud.stopwords_file", f.Lookup("stopwords"))
	viper.BindPFlag("wordcloud.width", f.Lookup("width"))
	viper.BindPFlag("wordcloud.height", f.Lookup("height"))
	viper.BindPFlag("wordcloud.max_words", f.Lookup("max-words"))

	rootCmd.AddCommand(wordcloudCmd)
}

func runWordCloud(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	wcfg := cfg.WordCloud

	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return fmt.Errorf("provide an artifact with --input")
	}
	field, err := textstats.ParseField(string(wcfg.Field))
	if err != nil {
		return err
	}
	wcfg.Field = field

	runID, _ := cmd.Flags().GetString("run")
	a, err := loadArtifact(cmd.Context(), input, runID)
	if err != nil {
		return err
	}

	replace, _ := cmd.Flags().GetBool("replace-stopwords")
	keepNumbers, _ := cmd.Flags().GetBool("keep-numbers")
	table, err := buildTable(a, wcfg, replace, keepNumbers)
	if err != nil {
		return err
	}
	metrics.RecordWords(table.TotalWords())
	logger.Info().
		Str("field", string(field)).
		Int("papers", len(a.Papers)).
		Int("total_words", table.TotalWords()).
		Int("unique_words", table.UniqueWords()).
		Msg("counted words")

	outDir := filepath.Join(filepath.Dir(input), "wordclouds")
	pngPath, _ := cmd.Flags().GetString("png")
	if pngPath == "" {
		pngPath = filepath.Join(outDir, string(field)+"_wordcloud.png")
	}
	freqPath, _ := cmd.Flags().GetString("freq")
	if freqPath == "" {
		freqPath = filepath.Join(outDir, string(field)+"_frequencies.json")
	}

	out := cmd.OutOrStdout()
	if err := textstats.WriteFrequencies(freqPath, table, textstats.FrequencyOptions{
		TopN:   wcfg.TopN,
		Source: input,
		Field:  string(field),
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", freqPath)

	if err := wordcloud.SavePNG(pngPath, table, wordcloud.Options{
		Width:    wcfg.Width,
		Height:   wcfg.Height,
		MaxWords: wcfg.MaxWords,
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", pngPath)

	fmt.Fprintf(out, "\n%d words, %d unique. Top words:\n", table.TotalWords(), table.UniqueWords())
	for i, wc := range table.Top(10) {
		fmt.Fprintf(out, "  %2d. %-20s %d\n", i+1, wc.Word, wc.Count)
	}
	return nil
}

// buildTable counts the words of the selected field. A stopwords file is
// merged with the built-in list unless replace is set.
func buildTable(a *catalogue.Artifact, cfg types.WordCloudConfig, replace, keepNumbers bool) (*textstats.Table, error) {
	texts, err := textstats.Texts(a, cfg.Field)
	if err != nil {
		return nil, err
	}

	stop := textstats.DefaultStopwords()
	if cfg.StopwordsFile != "" {
		custom, err := textstats.LoadStopwords(cfg.StopwordsFile)
		if err != nil {
			return nil, err
		}
		if replace {
			stop = custom
		} else {
			stop = stop.Merge(custom)
		}
	}

	table := textstats.Count(texts, textstats.Options{
		MinLength:   cfg.MinWordLength,
		Stopwords:   stop,
		KeepNumbers: keepNumbers,
	})
	if table.UniqueWords() == 0 {
		return nil, fmt.Errorf("no words left in %s after cleaning (%d texts)", cfg.Field, len(texts))
	}
	return table, nil
}
