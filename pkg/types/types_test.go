// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsFor(t *testing.T) {
	tests := []struct {
		in   Stringency
		want ClusterParams
	}{
		{"highest", ClusterParams{5, 5, 5, 0.5, 100}},
		{"high", ClusterParams{4, 5, 5, 0.5, 85}},
		{"medium", ClusterParams{4, 4, 4, 0.5, 50}},
		{"low", ClusterParams{4, 3, 3, 0.5, 35}},
		{"lowest", ClusterParams{3, 3, 3, 0.5, 20}},
		{"HIGH", ClusterParams{4, 5, 5, 0.5, 85}},
		{" Lowest ", ClusterParams{3, 3, 3, 0.5, 20}},
		{"extreme", DefaultClusterParams},
		{"", DefaultClusterParams},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ParamsFor(tt.in))
		})
	}
}

func TestDefaultDiffersFromMedium(t *testing.T) {
	assert.NotEqual(t, ParamsFor(StringencyMedium), ParamsFor("unknown"))
	assert.Equal(t, ClusterParams{3, 3, 3, 0.5, 50}, ParamsFor("unknown"))
}

func TestStringenciesAreNamed(t *testing.T) {
	for _, s := range Stringencies {
		assert.NotEqual(t, DefaultClusterParams, ParamsFor(s), s)
	}
}

func TestClusterParamsArgs(t *testing.T) {
	assert.Equal(t, []string{"4", "4", "4", "0.5", "50"}, ParamsFor(StringencyMedium).Args())
	assert.Equal(t, []string{"5", "5", "5", "0.5", "100"}, ParamsFor(StringencyHighest).Args())
}

func TestSummaryRowTerms(t *testing.T) {
	assert.Equal(t, "kinase, protein", SummaryRow{TopTerms: []string{"kinase", "protein"}}.Terms())
	assert.Equal(t, "", SummaryRow{}.Terms())
}
