// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the enrichment-engine.
// Clusters and records come back from the remote enrichment service;
// summary rows are derived from them; an Analysis bundles both for
// save and restore.
package types

import "strings"

// Record is one annotated entry inside a cluster: a gene in a gene
// cluster, or an annotation term in a term cluster.
type Record struct {
	// ID is the service identifier for the entry (gene ID or term name).
	ID string `json:"id" yaml:"id"`

	// Label is the free-text description the summarizer reads
	// (e.g. "GO:0006915~apoptosis" or a gene name). Empty when the
	// service returned no label.
	Label string `json:"label" yaml:"label"`

	// Category is the annotation category for term records
	// (e.g. "GOTERM_BP_FAT"). Empty for gene records.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Attributes carries the remaining fields of the service record verbatim.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Cluster is a named, scored group of records returned for one
// clustering run.
type Cluster struct {
	Name    string   `json:"name" yaml:"name"`
	Score   float64  `json:"score" yaml:"score"`
	Records []Record `json:"records" yaml:"records"`
}

// SummaryRow is the digest of one cluster: its most frequent label terms,
// the number of records it held, and its score.
type SummaryRow struct {
	Cluster     string   `json:"cluster" yaml:"cluster"`
	TopTerms    []string `json:"top_terms" yaml:"top_terms"`
	RecordCount int      `json:"record_count" yaml:"record_count"`
	Score       float64  `json:"score" yaml:"score"`
}

// Terms returns the top terms as a single display string.
func (r SummaryRow) Terms() string {
	return strings.Join(r.TopTerms, ", ")
}

// ChartRecord is one row of the functional annotation chart: a term
// enriched in the submitted list with its statistics.
type ChartRecord struct {
	Category       string  `json:"category" yaml:"category"`
	Term           string  `json:"term" yaml:"term"`
	Count          int     `json:"count" yaml:"count"`
	Percent        float64 `json:"percent" yaml:"percent"`
	EASE           float64 `json:"ease" yaml:"ease"`
	Genes          string  `json:"genes" yaml:"genes"`
	ListTotals     int     `json:"list_totals" yaml:"list_totals"`
	PopHits        int     `json:"pop_hits" yaml:"pop_hits"`
	PopTotals      int     `json:"pop_totals" yaml:"pop_totals"`
	FoldEnrichment float64 `json:"fold_enrichment" yaml:"fold_enrichment"`
	Bonferroni     float64 `json:"bonferroni" yaml:"bonferroni"`
	Benjamini      float64 `json:"benjamini" yaml:"benjamini"`
	FDR            float64 `json:"fdr" yaml:"fdr"`
}

// Analysis is the saved form of one enrichment run. The four fields are
// kept in this order in every serialized form.
type Analysis struct {
	GeneClusters []Cluster    `json:"gene_clusters" yaml:"gene_clusters"`
	GeneSummary  []SummaryRow `json:"gene_summary" yaml:"gene_summary"`
	TermClusters []Cluster    `json:"term_clusters" yaml:"term_clusters"`
	TermSummary  []SummaryRow `json:"term_summary" yaml:"term_summary"`
}
