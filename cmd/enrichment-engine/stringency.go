// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/enrichment-engine/pkg/types"
)

var stringencyCmd = &cobra.Command{
	Use:   "stringency",
	Short: "List the clustering stringency presets",
	Run: func(cmd *cobra.Command, args []string) {
		printStringencies(os.Stdout)
	},
}

func printStringencies(w io.Writer) {
	fmt.Fprintf(w, "%-8s  %-7s  %-12s  %-10s  %-7s  %s\n",
		"Level", "Overlap", "Initial seed", "Final seed", "Linkage", "Kappa")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, s := range types.Stringencies {
		p := types.ParamsFor(s)
		fmt.Fprintf(w, "%-8s  %-7d  %-12d  %-10d  %-7.2f  %d\n",
			s, p.Overlap, p.InitialSeed, p.FinalSeed, p.Linkage, p.Kappa)
	}
}

func init() {
	rootCmd.AddCommand(stringencyCmd)
}
