// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// --- helpers ---

func cluster(name string, score float64, labels ...string) types.Cluster {
	c := types.Cluster{Name: name, Score: score}
	for i, l := range labels {
		c.Records = append(c.Records, types.Record{ID: string(rune('a' + i)), Label: l})
	}
	return c
}

// --- strip ---

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"GO prefix", "GO:0006915~Apoptosis", "Apoptosis"},
		{"InterPro prefix", "IPR000001:Kinase", "Kinase"},
		{"SMART prefix", "SM00220:S_TKc", "S_TKc"},
		{"domain literal", "domain:Protein kinase", "Protein kinase"},
		{"repeat literal", "repeat:WD 1", "WD 1"},
		{"punctuation", "Kinase, core (catalytic): domain", "Kinase core catalytic domain"},
		{"multiple GO prefixes", "GO:0001~a GO:0002~b", "a b"},
		{"no noise", "cell adhesion", "cell adhesion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strip(tt.label))
		})
	}
}

// --- isStopword ---

func TestIsStopword(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"of", true},
		{"in", true},
		{"a", true},
		{"to", true},
		{"on", true},
		{"and", true},
		{"12", true},
		{"0006915", true},
		{"p53", false},
		{"apoptosis", false},
		{"Of", false},
		{"an", false},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, isStopword(tt.tok))
		})
	}
}

// --- originalCase ---

func TestOriginalCase(t *testing.T) {
	tests := []struct {
		name   string
		tok    string
		text   string
		want   string
		wantOK bool
	}{
		{"exact", "kinase", "kinase", "kinase", true},
		{"capitalized", "apoptosis", "Apoptosis", "Apoptosis", true},
		{"gene symbol", "tp53", "Regulates TP53 activity", "TP53", true},
		{"first occurrence wins", "cell", "Cell cell adhesion", "Cell", true},
		{"substring of longer word", "ion", "Regulation", "ion", true},
		{"multibyte", "ß-catenin", "SS ß-Catenin", "ß-Catenin", true},
		{"not found", "zinc", "kinase", "", false},
		{"token longer than text", "kinases", "kinase", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := originalCase(tt.tok, tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- Summarize ---

func TestSummarizeEmptyInput(t *testing.T) {
	rows := Summarize(nil, DefaultTopN)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows = Summarize([]types.Cluster{}, DefaultTopN)
	assert.Empty(t, rows)
}

func TestSummarizePreservesOriginalCasing(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("Annotation Cluster 1", 3.2, "GO:0006915~Apoptosis"),
	}, DefaultTopN)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Apoptosis"}, rows[0].TopTerms)
}

func TestSummarizeCountsCaseInsensitively(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("c1", 1, "DNA repair", "dna binding", "Dna replication"),
	}, 1)

	require.Len(t, rows, 1)
	// "DNA" is seen three times under different casings; the first wins.
	assert.Equal(t, []string{"DNA"}, rows[0].TopTerms)
}

func TestSummarizeStripsInterProPrefix(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("c1", 1, "IPR000001:Kinase"),
		cluster("c2", 1, "domain:Kinase"),
	}, DefaultTopN)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Kinase"}, rows[0].TopTerms)
	assert.Equal(t, []string{"Kinase"}, rows[1].TopTerms)
}

func TestSummarizeInterProLabelKeepsTrailingDomain(t *testing.T) {
	// Only "domain:" with a colon is noise; a trailing word is a term.
	rows := Summarize([]types.Cluster{
		cluster("c1", 1, "IPR000001:Kinase domain"),
	}, DefaultTopN)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Kinase", "domain"}, rows[0].TopTerms)
}

func TestSummarizeKeepsLabelCharacters(t *testing.T) {
	tests := []struct {
		label string
		want  []string
	}{
		{"Ca²⁺ binding", []string{"Ca²⁺", "binding"}},
		{"ﬁbroblast growth", []string{"ﬁbroblast", "growth"}},
		{"Ｋinase activity", []string{"Ｋinase", "activity"}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			rows := Summarize([]types.Cluster{cluster("c1", 1, tt.label)}, DefaultTopN)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].TopTerms)
		})
	}
}

func TestSummarizeTieBreakKeepsFirstSeenOrder(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("c1", 1, "apoptosis", "repair", "apoptosis repair binding"),
	}, 2)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"apoptosis", "repair"}, rows[0].TopTerms)

	// Same counts, but "repair" is observed first this time.
	rows = Summarize([]types.Cluster{
		cluster("c1", 1, "binding repair", "apoptosis repair", "apoptosis"),
	}, 2)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"repair", "apoptosis"}, rows[0].TopTerms)
}

func TestSummarizeFrequencyOrder(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("c1", 1,
			"GO:0016310~phosphorylation",
			"GO:0006468~protein phosphorylation",
			"GO:0004672~protein kinase activity",
			"IPR000719:Protein kinase, core",
			"SM00220:S_TKc",
		),
	}, 3)

	require.Len(t, rows, 1)
	// protein=3; phosphorylation and kinase tie at 2, phosphorylation seen first.
	assert.Equal(t, []string{"protein", "phosphorylation", "kinase"}, rows[0].TopTerms)
	assert.Equal(t, "protein, phosphorylation, kinase", rows[0].Terms())
}

func TestSummarizeDropsClustersWithOnlyStopwords(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("keep-1", 2.5, "cell adhesion"),
		cluster("drop", 9.9, "of in a", "to on and", "123 4567", "GO:0000001~of"),
		cluster("keep-2", 1.5, "ion transport"),
	}, DefaultTopN)

	require.Len(t, rows, 2)
	assert.Equal(t, "keep-1", rows[0].Cluster)
	assert.Equal(t, "keep-2", rows[1].Cluster)
	for _, r := range rows {
		assert.NotEqual(t, "drop", r.Cluster)
	}
}

func TestSummarizeRespectsTopN(t *testing.T) {
	clusters := []types.Cluster{
		cluster("c1", 1, "alpha beta gamma delta epsilon zeta eta theta"),
		cluster("c2", 1, "alpha", "beta"),
	}
	for n := 1; n <= 10; n++ {
		for _, r := range Summarize(clusters, n) {
			assert.LessOrEqual(t, len(r.TopTerms), n, "topN=%d cluster=%s", n, r.Cluster)
		}
	}

	rows := Summarize(clusters, 4)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, rows[0].TopTerms)
	assert.Equal(t, []string{"alpha", "beta"}, rows[1].TopTerms)
}

func TestSummarizeFloorsNonPositiveTopN(t *testing.T) {
	clusters := []types.Cluster{cluster("c1", 1, "alpha beta gamma")}

	for _, n := range []int{0, -1, -100} {
		rows := Summarize(clusters, n)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"alpha"}, rows[0].TopTerms, "topN=%d", n)
	}
}

func TestSummarizeRecordCountAndScorePassthrough(t *testing.T) {
	c := types.Cluster{
		Name:  "Annotation Cluster 7",
		Score: 4.25,
		Records: []types.Record{
			{ID: "1", Label: "apoptosis"},
			{ID: "2", Label: ""},
			{ID: "3", Label: "of and"},
			{ID: "4"},
		},
	}

	rows := Summarize([]types.Cluster{c}, DefaultTopN)
	require.Len(t, rows, 1)
	assert.Equal(t, "Annotation Cluster 7", rows[0].Cluster)
	assert.Equal(t, 4, rows[0].RecordCount)
	assert.Equal(t, 4.25, rows[0].Score)
	assert.Equal(t, []string{"apoptosis"}, rows[0].TopTerms)
}

func TestSummarizeSkipsMissingLabels(t *testing.T) {
	c := types.Cluster{Name: "c1", Records: []types.Record{{ID: "1"}, {ID: "2"}}}
	assert.Empty(t, Summarize([]types.Cluster{c}, DefaultTopN))
}

func TestSummarizeCountsRepeatedTokensWithinLabel(t *testing.T) {
	rows := Summarize([]types.Cluster{
		cluster("c1", 1, "Cell cell adhesion", "adhesion"),
	}, DefaultTopN)

	require.Len(t, rows, 1)
	// "cell" counted twice, displayed as its first match in the label.
	assert.Equal(t, []string{"Cell", "adhesion"}, rows[0].TopTerms)
}

func TestSummarizeIsDeterministic(t *testing.T) {
	clusters := []types.Cluster{
		cluster("c1", 1, "z y x w v", "v w x y z", "a b c"),
		cluster("c2", 2, "GO:0001~Alpha beta", "alpha Beta"),
	}
	first := Summarize(clusters, 3)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Summarize(clusters, 3))
	}
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	clusters := []types.Cluster{
		cluster("c1", 1, "GO:0006915~Apoptosis", "IPR000001:Kinase, core"),
	}
	before := []types.Cluster{
		cluster("c1", 1, "GO:0006915~Apoptosis", "IPR000001:Kinase, core"),
	}

	Summarize(clusters, DefaultTopN)
	assert.Equal(t, before, clusters)
}
