// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// FormatTable writes summary rows as a human-readable table to w.
func FormatTable(title string, rows []types.SummaryRow, w io.Writer) {
	fmt.Fprintf(w, "%s\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No clusters.")
		return
	}

	fmt.Fprintf(w, "%-24s  %-60s  %-7s  %s\n", "Cluster", "Top terms", "Records", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range rows {
		fmt.Fprintf(w, "%-24s  %-60s  %-7d  %.2f\n",
			truncate(r.Cluster, 24), truncate(r.Terms(), 60), r.RecordCount, r.Score)
	}
	fmt.Fprintf(w, "\n%d clusters\n", len(rows))
}

// FormatChart writes functional annotation chart records as a table to w.
func FormatChart(records []types.ChartRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No enriched terms.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-50s  %-5s  %-9s  %s\n", "Category", "Term", "Count", "EASE", "Benjamini")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-50s  %-5d  %-9.2e  %.2e\n",
			truncate(r.Category, 20), truncate(r.Term, 50), r.Count, r.EASE, r.Benjamini)
	}
	fmt.Fprintf(w, "\n%d terms\n", len(records))
}

// WriteJSON writes v as indented JSON to w.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
