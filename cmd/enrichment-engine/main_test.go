// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/enrichment-engine/internal/archive"
	"github.com/pdiddy/enrichment-engine/internal/secrets"
	"github.com/pdiddy/enrichment-engine/pkg/types"
)

func TestReadIDs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(file, []byte("ENSG3\nENSG4, ENSG5\n\n"), 0o644))

	tests := []struct {
		name  string
		args  []string
		file  string
		stdin string
		want  []string
	}{
		{"args only", []string{"ENSG1", "ENSG2"}, "", "", []string{"ENSG1", "ENSG2"}},
		{"comma separated arg", []string{"ENSG1,ENSG2"}, "", "", []string{"ENSG1", "ENSG2"}},
		{"file", nil, file, "", []string{"ENSG3", "ENSG4", "ENSG5"}},
		{"args then file", []string{"ENSG1"}, file, "", []string{"ENSG1", "ENSG3", "ENSG4", "ENSG5"}},
		{"stdin", nil, "-", "7157\t672\n", []string{"7157", "672"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readIDs(tt.args, tt.file, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadIDsMissingFile(t *testing.T) {
	_, err := readIDs(nil, filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorContains(t, err, "reading identifiers")
}

func TestPrintStringencies(t *testing.T) {
	var buf bytes.Buffer
	printStringencies(&buf)
	out := buf.String()

	for _, s := range types.Stringencies {
		assert.Contains(t, out, string(s))
	}
	assert.Contains(t, out, "Kappa")
}

func TestPrintEntriesAndHits(t *testing.T) {
	var buf bytes.Buffer
	printEntries(nil, &buf)
	assert.Contains(t, buf.String(), "No archived analyses.")

	buf.Reset()
	printEntries([]archive.Entry{{ID: "id-1", Name: "screen", CreatedAt: time.Now(), GeneRows: 2, TermRows: 3}}, &buf)
	assert.Contains(t, buf.String(), "id-1")
	assert.Contains(t, buf.String(), "1 analyses")

	buf.Reset()
	printHits([]archive.TermHit{{AnalysisName: "screen", Kind: archive.KindTerm, Cluster: "Annotation Cluster 1", Terms: "cell, adhesion", Score: 3.3}}, &buf)
	assert.Contains(t, buf.String(), "cell, adhesion")
	assert.Contains(t, buf.String(), "3.30")
}

func TestAnalysisConfigPrecedence(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		setDefaults()
		loadedSecrets = nil
	})
	viper.Reset()
	setDefaults()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("email", "", "")
	cmd.Flags().String("id-type", "", "")
	cmd.Flags().String("stringency", "", "")
	cmd.Flags().Int("top-n", 0, "")

	loadedSecrets = secrets.Secrets{secrets.DAVIDEmail: "secret@example.com"}

	cfg := analysisConfig(cmd)
	assert.Equal(t, "secret@example.com", cfg.Identity)
	assert.Equal(t, "ENSEMBL_GENE_ID", cfg.IDType)
	assert.Equal(t, types.StringencyMedium, cfg.Stringency)
	assert.Equal(t, 4, cfg.TopN)

	viper.Set(keyStringency, "low")
	viper.Set(keyIdentity, "config@example.com")
	cfg = analysisConfig(cmd)
	assert.Equal(t, "config@example.com", cfg.Identity)
	assert.Equal(t, types.Stringency("low"), cfg.Stringency)

	require.NoError(t, cmd.Flags().Set("email", "flag@example.com"))
	require.NoError(t, cmd.Flags().Set("stringency", "highest"))
	require.NoError(t, cmd.Flags().Set("top-n", "2"))
	cfg = analysisConfig(cmd)
	assert.Equal(t, "flag@example.com", cfg.Identity)
	assert.Equal(t, types.StringencyHighest, cfg.Stringency)
	assert.Equal(t, 2, cfg.TopN)
}

func TestClipKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "screen", clip("screen", 24))
	assert.Equal(t, "κιν...", clip("κινάση πρωτεΐνη", 6))
}
