package cli

import (
	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/ingest"
)

func newAddCmd(state *rootState) *cobra.Command {
	var (
		entry  ingest.ManualEntry
		output string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a single shipment",
		Example: `  scopezero add --supplier "Vulcan Steel" --material Steel --weight 5000 --distance 120
  scopezero add --date 2024-05-01 --supplier Acme --material Plastic --weight 80 --mode "Air Cargo" --region Asia`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := state.outputFormat(output)
			if err != nil {
				return err
			}
			if entry.Date == "" {
				entry.Date = state.now().Format(engine.DateLayout)
			}

			res, err := state.app.Ingestor.AddManual(cmd.Context(), entry)
			if err != nil {
				return err
			}
			printCommit(cmd, "", res)
			return renderSnapshot(cmd.OutOrStdout(), format, res.Snapshot)
		},
	}

	f := cmd.Flags()
	f.StringVar(&entry.Date, "date", "", "shipment date YYYY-MM-DD (default today)")
	f.StringVar(&entry.Supplier, "supplier", "", "supplier name (required)")
	f.StringVar(&entry.Material, "material", "", "material (required)")
	f.Float64Var(&entry.Weight, "weight", 0, "weight in kg, > 0 (required)")
	f.Float64Var(&entry.Distance, "distance", 0, "distance in km")
	f.StringVar(&entry.TransportMode, "mode", "", "transport mode (default "+engine.DefaultTransportMode+")")
	f.StringVar(&entry.Region, "region", "", "region (default "+engine.DefaultRegion+")")
	addOutputFlag(cmd, &output)
	return cmd
}
