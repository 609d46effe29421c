// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/enrichment-engine/internal/analysis"
	"github.com/pdiddy/enrichment-engine/internal/david"
)

var chartCmd = &cobra.Command{
	Use:   "chart [ids...]",
	Short: "Print the functional annotation chart for a gene list",
	Long: `Chart submits a gene identifier list and prints the enriched annotation
terms individually, without clustering, filtered by EASE threshold and
minimum gene count.`,
	RunE: runChart,
}

func runChart(cmd *cobra.Command, args []string) error {
	idsFile, _ := cmd.Flags().GetString("ids-file")
	ids, err := readIDs(args, idsFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	ids, err = david.ValidateIDs(ids)
	if err != nil {
		return err
	}

	cfg := analysisConfig(cmd)
	idType := strings.TrimSpace(cfg.IDType)
	if idType == "" {
		idType = analysis.DefaultIDType
	}

	ctx := cmd.Context()
	client := david.NewClient(clientConfig(cmd))
	sess, err := client.Authenticate(ctx, cfg.Identity)
	if err != nil {
		return err
	}
	if _, err := client.AddList(ctx, sess, ids, idType); err != nil {
		return err
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	count, _ := cmd.Flags().GetInt("count")
	records, err := client.ChartReport(ctx, sess, threshold, count)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return analysis.WriteJSON(records, os.Stdout)
	}
	analysis.FormatChart(records, os.Stdout)
	return nil
}

func init() {
	chartCmd.Flags().String("ids-file", "", "file of identifiers, - for stdin")
	chartCmd.Flags().String("id-type", analysis.DefaultIDType, "identifier namespace of the list")
	chartCmd.Flags().String("email", "", "identity registered with DAVID")
	chartCmd.Flags().Float64("threshold", 0.1, "maximum EASE score")
	chartCmd.Flags().Int("count", 2, "minimum genes per term")
	chartCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(chartCmd)
}
