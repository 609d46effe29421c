// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/enrichment-engine/internal/analysis"
	"github.com/pdiddy/enrichment-engine/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage archived analyses (list, get, search, delete)",
	Long: `Archive manages a local SQLite database of analyses stored with
analyze --archive. Summary terms are indexed for full-text search.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived analyses, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(arc *archive.Archive) error {
			entries, err := arc.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return analysis.WriteJSON(entries, os.Stdout)
			}
			printEntries(entries, os.Stdout)
			return nil
		})
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print or export an archived analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(arc *archive.Archive) error {
			a, err := arc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				if err := analysis.Save(out, a); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "saved %s\n", out)
				return nil
			}
			jsonOutput, _ := cmd.Flags().GetBool("json")
			return printAnalysis(a, jsonOutput, os.Stdout)
		})
	},
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search summary terms across archived analyses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(arc *archive.Archive) error {
			limit, _ := cmd.Flags().GetInt("limit")
			hits, err := arc.SearchTerms(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return analysis.WriteJSON(hits, os.Stdout)
			}
			printHits(hits, os.Stdout)
			return nil
		})
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an analysis from the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(cmd, func(arc *archive.Archive) error {
			if err := arc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		})
	},
}

func withArchive(cmd *cobra.Command, fn func(*archive.Archive) error) error {
	arc, err := archive.Open(archiveConfig(cmd))
	if err != nil {
		return err
	}
	defer arc.Close()
	return fn(arc)
}

func printEntries(entries []archive.Entry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No archived analyses.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-24s  %-20s  %-5s  %s\n", "ID", "Name", "Created", "Genes", "Terms")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(w, "%-36s  %-24s  %-20s  %-5d  %d\n",
			e.ID, clip(e.Name, 24), e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.GeneRows, e.TermRows)
	}
	fmt.Fprintf(w, "\n%d analyses\n", len(entries))
}

func printHits(hits []archive.TermHit, w io.Writer) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	fmt.Fprintf(w, "%-20s  %-4s  %-24s  %-40s  %s\n", "Analysis", "Kind", "Cluster", "Terms", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, h := range hits {
		fmt.Fprintf(w, "%-20s  %-4s  %-24s  %-40s  %.2f\n",
			clip(h.AnalysisName, 20), h.Kind, clip(h.Cluster, 24), clip(h.Terms, 40), h.Score)
	}
	fmt.Fprintf(w, "\n%d results\n", len(hits))
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	archiveCmd.PersistentFlags().String("archive-dir", "archive", "archive directory")

	archiveListCmd.Flags().Bool("json", false, "output as JSON")
	archiveGetCmd.Flags().Bool("json", false, "output as JSON")
	archiveGetCmd.Flags().String("out", "", "write the analysis to this file instead of printing it")
	archiveSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	archiveSearchCmd.Flags().Bool("json", false, "output as JSON")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)

	rootCmd.AddCommand(archiveCmd)
}
