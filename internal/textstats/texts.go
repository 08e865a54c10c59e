// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textstats

import (
	"fmt"

	"github.com/pdiddy/ads-parser/internal/catalogue"
	"github.com/pdiddy/ads-parser/pkg/types"
)

// ParseField validates a field name. Empty means titles.
func ParseField(s string) (types.TextField, error) {
	switch f := types.TextField(s); f {
	case "":
		return types.FieldTitles, nil
	case types.FieldTitles, types.FieldAbstracts, types.FieldAll:
		return f, nil
	default:
		return "", fmt.Errorf("unknown text field %q (want %s, %s, or %s)",
			s, types.FieldTitles, types.FieldAbstracts, types.FieldAll)
	}
}

// Texts collects the non-empty titles, abstracts, or both from an
// artifact, in bibcode order.
func Texts(a *catalogue.Artifact, field types.TextField) ([]string, error) {
	field, err := ParseField(string(field))
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, r := range a.Records() {
		if field != types.FieldAbstracts && r.Title != "" {
			texts = append(texts, r.Title)
		}
		if field != types.FieldTitles && r.Abstract != "" {
			texts = append(texts, r.Abstract)
		}
	}
	return texts, nil
}
