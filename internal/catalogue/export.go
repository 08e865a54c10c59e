// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Export formats.
const (
	FormatYAML   = "yaml"
	FormatCSL    = "csl"
	FormatSQLite = "sqlite"
)

// Formats lists the accepted export formats.
var Formats = []string{FormatYAML, FormatCSL, FormatSQLite}

// WriteYAML writes the whole artifact as YAML to w.
func WriteYAML(a *Artifact, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// ValidFormat reports whether f names a supported export format.
func ValidFormat(f string) bool {
	return slices.Contains(Formats, strings.ToLower(f))
}
