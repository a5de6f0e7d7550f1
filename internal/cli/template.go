package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/ingest"
)

func newTemplateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a sample CSV with the expected columns",
		Example: `  scopezero template > shipments.csv
  scopezero template --file scope3_template.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), ingest.SampleCSV())
				return err
			}
			if err := os.WriteFile(out, []byte(ingest.SampleCSV()), 0o600); err != nil {
				return fmt.Errorf("writing template: %w", err)
			}
			cmd.PrintErrf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "file", "f", "", "write to this file instead of stdout")
	return cmd
}
