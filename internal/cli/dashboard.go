package cli

import (
	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/tui"
)

func newDashboardCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [FILE...]",
		Short: "Open the interactive dashboard",
		Long: `Ingest the given files and open the terminal dashboard. Without files the demo
data is shown. When stdout is not a terminal the dashboard is printed as a table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := state.app.IngestFiles(cmd.Context(), args)
			for i, r := range results {
				printCommit(cmd, args[i], r)
			}
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), state.app.Store, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
