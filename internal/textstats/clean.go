// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textstats turns titles and abstracts into ranked word
// frequencies. Cleaning strips HTML and LaTeX markup, lowercases, and
// drops stopwords and short tokens; counting keeps first-occurrence order
// so equal counts rank deterministically.
package textstats

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinLength is the shortest token kept.
const DefaultMinLength = 3

// Options controls cleaning.
type Options struct {
	// MinLength drops tokens with fewer runes (default 3).
	MinLength int

	// Stopwords replaces the default set when non-nil.
	Stopwords Stopwords

	// KeepNumbers keeps digits inside tokens instead of treating them as
	// separators.
	KeepNumbers bool
}

func (o Options) withDefaults() Options {
	if o.MinLength <= 0 {
		o.MinLength = DefaultMinLength
	}
	if o.Stopwords == nil {
		o.Stopwords = DefaultStopwords()
	}
	return o
}

var (
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
	braceGroup   = regexp.MustCompile(`\{[^}]*\}`)
	latexCommand = regexp.MustCompile(`\\([a-zA-Z]+)`)
)

// greek maps LaTeX Greek-letter commands to the word kept in their place.
var greek = map[string]string{
	"alpha": "alpha", "beta": "beta", "gamma": "gamma", "delta": "delta",
	"epsilon": "epsilon", "varepsilon": "epsilon", "zeta": "zeta", "eta": "eta",
	"theta": "theta", "vartheta": "theta", "iota": "iota", "kappa": "kappa",
	"lambda": "lambda", "mu": "mu", "nu": "nu", "xi": "xi", "pi": "pi",
	"varpi": "pi", "rho": "rho", "varrho": "rho", "sigma": "sigma",
	"varsigma": "sigma", "tau": "tau", "upsilon": "upsilon", "phi": "phi",
	"varphi": "phi", "chi": "chi", "psi": "psi", "omega": "omega",
	"Gamma": "gamma", "Delta": "delta", "Theta": "theta", "Lambda": "lambda",
	"Xi": "xi", "Pi": "pi", "Sigma": "sigma", "Upsilon": "upsilon",
	"Phi": "phi", "Psi": "psi", "Omega": "omega",
}

// StripMarkup decodes HTML entities and removes HTML tags and LaTeX
// markup. Brace groups are dropped
// with their contents, Greek-letter commands become their name, and every
// other command is dropped. Math delimiters fall away later as separators.
func StripMarkup(text string) string {
	text = htmlTag.ReplaceAllString(html.UnescapeString(text), " ")
	text = braceGroup.ReplaceAllString(text, " ")
	return latexCommand.ReplaceAllStringFunc(text, func(cmd string) string {
		if word, ok := greek[cmd[1:]]; ok {
			return " " + word + " "
		}
		return " "
	})
}

// Clean returns the tokens of text that survive markup stripping,
// lowercasing, and stopword and length filtering, in text order.
func Clean(text string, opts Options) []string {
	opts = opts.withDefaults()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ToLower(StripMarkup(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		if unicode.IsLetter(r) {
			return false
		}
		return !(opts.KeepNumbers && unicode.IsDigit(r))
	})

	tokens := fields[:0]
	for _, w := range fields {
		if utf8.RuneCountInString(w) < opts.MinLength || opts.Stopwords.Contains(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
