// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize reduces enrichment clusters to their most frequent
// label terms.
//
// Each record label is cleaned of identifier prefixes and punctuation,
// lowercased, split on whitespace and filtered of stopwords. Surviving
// tokens are counted per cluster, case-insensitively, and reported in the
// casing they first appeared with.
package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// DefaultTopN is the number of terms kept per cluster when the caller has
// no preference.
const DefaultTopN = 4

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// noiseRules are applied in order; each removes every match.
var noiseRules = []rule{
	{regexp.MustCompile(`GO:\d+~`), ""},
	{regexp.MustCompile(`IPR\d+:`), ""},
	{regexp.MustCompile(`SM\d+:`), ""},
	{regexp.MustCompile(`domain:`), ""},
	{regexp.MustCompile(`repeat:`), ""},
	{regexp.MustCompile(`,`), ""},
	{regexp.MustCompile(`:`), ""},
	{regexp.MustCompile(`[()]`), ""},
}

var stopwords = map[string]bool{
	"of":  true,
	"in":  true,
	"a":   true,
	"to":  true,
	"on":  true,
	"and": true,
}

// Summarize returns one row per cluster with its topN most frequent terms,
// in input order. Clusters whose labels yield no countable tokens are
// omitted. A topN below 1 is treated as 1. Records with an empty label
// are skipped. The input is not modified.
func Summarize(clusters []types.Cluster, topN int) []types.SummaryRow {
	if topN < 1 {
		topN = 1
	}

	// A Caser carries state, so each call gets its own.
	lower := cases.Lower(language.Und)

	rows := make([]types.SummaryRow, 0, len(clusters))
	for _, c := range clusters {
		cnt := newCounter()
		for _, rec := range c.Records {
			if rec.Label == "" {
				continue
			}
			countLabel(cnt, rec.Label, lower)
		}
		if cnt.empty() {
			continue
		}
		rows = append(rows, types.SummaryRow{
			Cluster:     c.Name,
			TopTerms:    cnt.top(topN),
			RecordCount: len(c.Records),
			Score:       c.Score,
		})
	}
	return rows
}

// countLabel adds the label's surviving tokens to cnt.
func countLabel(cnt *counter, label string, lower cases.Caser) {
	stripped := strip(label)
	for _, tok := range strings.Fields(lower.String(stripped)) {
		if isStopword(tok) {
			continue
		}
		display, ok := originalCase(tok, stripped)
		if !ok {
			// Only reachable when lowercasing changed the token's shape.
			display = tok
		}
		cnt.add(tok, display)
	}
}

// strip folds noiseRules over s.
func strip(s string) string {
	for _, r := range noiseRules {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// isStopword reports whether tok is excluded from counting: one of the
// fixed stopwords or a run of digits.
func isStopword(tok string) bool {
	if stopwords[tok] {
		return true
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// originalCase finds the first case-insensitive occurrence of tok in text
// and returns it as written in text.
func originalCase(tok, text string) (string, bool) {
	n := utf8.RuneCountInString(tok)
	for i := range text {
		j, k := i, 0
		for k < n && j < len(text) {
			_, size := utf8.DecodeRuneInString(text[j:])
			j += size
			k++
		}
		if k < n {
			break
		}
		if strings.EqualFold(text[i:j], tok) {
			return text[i:j], true
		}
	}
	return "", false
}

type termCount struct {
	display string
	count   int
}

// counter tallies terms keyed by their lowercase form and remembers the
// order in which keys were first seen.
type counter struct {
	index map[string]int
	terms []termCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key, display string) {
	if i, ok := c.index[key]; ok {
		c.terms[i].count++
		return
	}
	c.index[key] = len(c.terms)
	c.terms = append(c.terms, termCount{display: display, count: 1})
}

func (c *counter) empty() bool { return len(c.terms) == 0 }

// top returns up to n display terms, most frequent first. Equal counts
// keep first-seen order.
func (c *counter) top(n int) []string {
	ranked := make([]termCount, len(c.terms))
	copy(ranked, c.terms)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	for i, t := range ranked {
		out[i] = t.display
	}
	return out
}
