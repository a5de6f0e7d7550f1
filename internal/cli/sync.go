package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/ingest"
)

func newSyncCmd(state *rootState) *cobra.Command {
	var (
		output string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "sync [PARTNER...]",
		Short: "Connect logistics partners and import their shipments",
		Long: fmt.Sprintf(`Connect logistics partners (%s) and import their shipment feeds as one batch.

Partners that are already connected are skipped. With --list, or with no
partners given, the connection status is printed instead.`, strings.Join(ingest.KnownPartners, ", ")),
		Example: `  scopezero sync Maersk
  scopezero sync Maersk FedEx --output json
  scopezero sync --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "PARTNER\tSTATUS")
				for _, p := range state.app.Ingestor.Partners().Status() {
					fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.State)
				}
				return tw.Flush()
			}

			format, err := state.outputFormat(output)
			if err != nil {
				return err
			}
			res, err := state.app.Ingestor.SyncPartners(cmd.Context(), args...)
			if err != nil {
				return err
			}
			printCommit(cmd, "", res)
			return renderSnapshot(cmd.OutOrStdout(), format, res.Snapshot)
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().BoolVar(&list, "list", false, "show partner connection status")
	return cmd
}
