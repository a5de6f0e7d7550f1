package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/greenops"
)

func newFactorsCmd(state *rootState) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the emission factor table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := state.outputFormat(output)
			if err != nil {
				return err
			}
			t := state.app.Factors
			w := cmd.OutOrStdout()

			switch format {
			case engine.OutputJSON, engine.OutputNDJSON:
				return writeJSON(w, t.Factors())
			case engine.OutputTable:
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "Source: %s (%d), table version %s\n\n", t.Source, t.Year, t.Version)
				fmt.Fprintln(tw, "KIND\tNAME\tFACTOR\tUNIT")
				for _, f := range t.Factors() {
					fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", f.Kind, f.Name, f.Value, unit(f.Kind))
				}
				material, transport := t.Fallbacks()
				fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", greenops.KindMaterial, "(fallback)", material, unit(greenops.KindMaterial))
				fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", greenops.KindTransport, "(fallback)", transport, unit(greenops.KindTransport))
				return tw.Flush()
			default:
				return fmt.Errorf("%w: %s", engine.ErrUnknownFormat, format)
			}
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func unit(k greenops.FactorKind) string {
	if k == greenops.KindTransport {
		return "kg CO2e/kg·km"
	}
	return "kg CO2e/kg"
}
