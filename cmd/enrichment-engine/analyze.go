// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/pdiddy/enrichment-engine/internal/analysis"
	"github.com/pdiddy/enrichment-engine/internal/archive"
	"github.com/pdiddy/enrichment-engine/internal/david"
	"github.com/pdiddy/enrichment-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ids...]",
	Short: "Run a clustered enrichment analysis on a gene list",
	Long: `Analyze submits a gene identifier list to the DAVID service, fetches the
gene and term cluster reports at the chosen stringency, and prints the top
terms of each cluster.

Identifiers come from the arguments and from --ids-file (use - for stdin),
separated by whitespace or commas. The identity registered with DAVID comes
from --email, the analysis.identity config value, or .secrets/david-email.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	idsFile, _ := cmd.Flags().GetString("ids-file")
	ids, err := readIDs(args, idsFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	client := david.NewClient(clientConfig(cmd))
	a, err := analysis.Run(cmd.Context(), client, analysis.Request{
		AnalysisConfig: analysisConfig(cmd),
		IDs:            ids,
	}, os.Stderr)
	if err != nil {
		return err
	}

	if err := persist(cmd, a); err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printAnalysis(a, jsonOutput, os.Stdout)
}

// persist writes a to the --save file and the archive, when asked.
func persist(cmd *cobra.Command, a *types.Analysis) error {
	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := analysis.Save(path, a); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", path)
	}

	if name, _ := cmd.Flags().GetString("archive"); name != "" {
		arc, err := archive.Open(archiveConfig(cmd))
		if err != nil {
			return err
		}
		defer arc.Close()

		id, err := arc.Put(cmd.Context(), name, a)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "archived %s as %s\n", name, id)
	}
	return nil
}

func printAnalysis(a *types.Analysis, jsonOutput bool, w io.Writer) error {
	if jsonOutput {
		return analysis.WriteJSON(a, w)
	}
	analysis.FormatTable("Gene clusters", a.GeneSummary, w)
	fmt.Fprintln(w)
	analysis.FormatTable("Term clusters", a.TermSummary, w)
	return nil
}

// readIDs collects identifiers from args and, when idsFile is set, from
// that file ("-" reads stdin).
func readIDs(args []string, idsFile string, stdin io.Reader) ([]string, error) {
	ids := splitIDs(strings.Join(args, " "))
	if idsFile == "" {
		return ids, nil
	}

	var (
		data []byte
		err  error
	)
	if idsFile == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(idsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading identifiers: %w", err)
	}
	return append(ids, splitIDs(string(data))...), nil
}

func splitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// --- show ---

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a saved analysis",
	Long: `Show loads an analysis written with analyze --save and prints its
summaries. With --top-n the summaries are recomputed from the saved
cluster reports without contacting the service.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := analysis.Load(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top-n") {
		topN, _ := cmd.Flags().GetInt("top-n")
		a = analysis.Resummarize(a, topN)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return printAnalysis(a, jsonOutput, os.Stdout)
}

func init() {
	analyzeCmd.Flags().String("ids-file", "", "file of identifiers, - for stdin")
	analyzeCmd.Flags().String("id-type", analysis.DefaultIDType, "identifier namespace of the list")
	analyzeCmd.Flags().String("stringency", string(types.StringencyMedium), "clustering stringency: highest, high, medium, low, lowest")
	analyzeCmd.Flags().Int("top-n", 4, "terms kept per cluster (0 = default 4)")
	analyzeCmd.Flags().String("email", "", "identity registered with DAVID")
	analyzeCmd.Flags().String("save", "", "write the analysis to this file (.json for JSON, YAML otherwise)")
	analyzeCmd.Flags().String("archive", "", "store the analysis in the archive under this name")
	analyzeCmd.Flags().String("archive-dir", "archive", "archive directory")
	analyzeCmd.Flags().Bool("json", false, "output results as JSON")

	showCmd.Flags().Int("top-n", 4, "recompute summaries with this many terms per cluster (0 = default 4)")
	showCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(showCmd)
}
