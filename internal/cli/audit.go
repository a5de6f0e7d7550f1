package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/engine"
)

func newAuditCmd(state *rootState) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "audit [FILE...]",
		Short: "Score data completeness and factor coverage",
		Long: `Ingest the given files, then report how complete the records are and how
many materials and transport modes have their own emission factor.`,
		Example: `  scopezero audit shipments.csv
  scopezero audit q1.csv q2.csv --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := state.outputFormat(output)
			if err != nil {
				return err
			}
			results, err := state.app.IngestFiles(cmd.Context(), args)
			for i, r := range results {
				printCommit(cmd, args[i], r)
			}
			if err != nil {
				return err
			}

			report := engine.Audit(state.app.Store.Snapshot(), state.app.Factors)
			w := cmd.OutOrStdout()
			switch format {
			case engine.OutputJSON, engine.OutputNDJSON:
				return writeJSON(w, report)
			case engine.OutputTable:
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "Records:\t%d\n", report.TotalRecords)
				fmt.Fprintf(tw, "Commits:\t%d\n", report.Commits)
				fmt.Fprintf(tw, "Completeness:\t%.1f%%\n", report.CompletenessScore)
				fmt.Fprintf(tw, "Factor coverage:\t%.1f%%\n", report.FactorCoverage)
				fmt.Fprintf(tw, "Data quality:\t%.1f%%\n", report.DataQualityScore)
				return tw.Flush()
			default:
				return fmt.Errorf("%w: %s", engine.ErrUnknownFormat, format)
			}
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
