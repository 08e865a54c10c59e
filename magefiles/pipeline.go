//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

// catalogueCSV is the default catalogue input. Override with CATALOGUE_CSV.
const catalogueCSV = "data/catalogue.csv"

func catalogueInput() string {
	if v := os.Getenv("CATALOGUE_CSV"); v != "" {
		return v
	}
	return catalogueCSV
}

func artifactFor(csv string) string {
	return strings.TrimSuffix(csv, filepath.Ext(csv)) + "_papers.json"
}

// Ping checks the configured ADS token.
func Ping() error {
	return run("ping")
}

// Catalogue downloads every bibcode in the catalogue CSV, with abstracts.
func Catalogue() error {
	csv := catalogueInput()
	if _, err := os.Stat(csv); err != nil {
		return fmt.Errorf("catalogue input: %w (set CATALOGUE_CSV)", err)
	}
	return run("catalogue", "--csv", csv, "--out", artifactFor(csv), "--abstracts")
}

// Wordclouds renders title and abstract word clouds from the catalogue
// artifact, then prints suggested search keywords.
func Wordclouds() error {
	artifact := artifactFor(catalogueInput())
	if _, err := os.Stat(artifact); err != nil {
		return fmt.Errorf("artifact missing, run mage catalogue first: %w", err)
	}
	outDir := filepath.Join(filepath.Dir(artifact), "wordclouds")
	for _, field := range []string{"titles", "abstracts"} {
		if err := run("wordcloud", "--input", artifact, "--field", field); err != nil {
			return err
		}
	}
	return run("keywords",
		"--titles", filepath.Join(outDir, "titles_frequencies.json"),
		"--abstracts", filepath.Join(outDir, "abstracts_frequencies.json"))
}

// Pipeline runs Catalogue then Wordclouds.
func Pipeline() {
	mg.SerialDeps(Catalogue, Wordclouds)
}
