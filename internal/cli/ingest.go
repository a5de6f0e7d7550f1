package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/engine"
)

type ingestParams struct {
	output  string
	preview bool
}

func newIngestCmd(state *rootState) *cobra.Command {
	var params ingestParams

	cmd := &cobra.Command{
		Use:   "ingest FILE...",
		Short: "Ingest CSV or Excel shipment files and print the dashboard",
		Long: `Ingest one or more CSV (.csv, .txt) or Excel (.xlsx, .xlsm) files.

Columns are detected from header synonyms (e.g. "Vendor" for Supplier, "Mass" for
Weight). Each file is committed as one batch. Rows with neither weight nor
distance are dropped; a file with no usable rows is an error.

With --preview the files are normalized but nothing is committed, and the
normalized records are printed instead of the dashboard.`,
		Example: `  scopezero ingest shipments.csv
  scopezero ingest q1.xlsx q2.xlsx --output json
  scopezero ingest vendors.csv --preview`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := state.outputFormat(params.output)
			if err != nil {
				return err
			}
			if params.preview {
				return runPreview(cmd, state, format, args)
			}

			results, err := state.app.IngestFiles(cmd.Context(), args)
			for i, r := range results {
				printCommit(cmd, args[i], r)
			}
			if err != nil {
				return err
			}
			return renderSnapshot(cmd.OutOrStdout(), format, state.app.Store.Snapshot())
		},
	}

	addOutputFlag(cmd, &params.output)
	cmd.Flags().BoolVar(&params.preview, "preview", false, "normalize without committing and print the records")
	return cmd
}

func runPreview(cmd *cobra.Command, state *rootState, format engine.OutputFormat, paths []string) error {
	var records []engine.ActivityRecord
	for _, path := range paths {
		t, err := readTable(path)
		if err != nil {
			return err
		}
		b, err := state.app.Ingestor.Preview(cmd.Context(), t)
		if err != nil {
			return err
		}

		cmd.PrintErrf("%s: %d record(s), %d rejected, columns: %s\n", path, len(b.Records), b.Rejected, b.Mapping)
		records = append(records, b.Records...)
	}

	w := cmd.OutOrStdout()
	switch format {
	case engine.OutputJSON:
		return writeJSON(w, records)
	case engine.OutputNDJSON:
		return engine.RenderRecordsAsNDJSON(w, records)
	case engine.OutputTable:
		return engine.RenderRecordsAsTable(w, records)
	default:
		return fmt.Errorf("%w: %s", engine.ErrUnknownFormat, format)
	}
}
