package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/cli/pagination"
	"github.com/scopezero/scopezero/internal/engine"
)

type recordsParams struct {
	output string
	sort   string
	page   pagination.Params
}

// recordsPage is the JSON shape of the records command.
type recordsPage struct {
	Pagination pagination.Meta         `json:"pagination"`
	Records    []engine.ActivityRecord `json:"records"`
}

func newRecordsCmd(state *rootState) *cobra.Command {
	params := recordsParams{page: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "records FILE...",
		Short: "Ingest files and list the resulting activity records",
		Example: `  scopezero records shipments.csv --sort emissions:desc --limit 10
  scopezero records shipments.csv --page 2 --page-size 25 --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := state.outputFormat(params.output)
			if err != nil {
				return err
			}
			if err = params.page.Validate(); err != nil {
				return err
			}

			results, err := state.app.IngestFiles(cmd.Context(), args)
			for i, r := range results {
				printCommit(cmd, args[i], r)
			}
			if err != nil {
				return err
			}

			records := state.app.Store.Snapshot().Records
			if params.sort != "" {
				field, order, sortErr := pagination.ParseSort(params.sort)
				if sortErr != nil {
					return sortErr
				}
				records = pagination.SortRecords(records, field, order)
			}
			page := pagination.Apply(params.page, records)

			w := cmd.OutOrStdout()
			switch format {
			case engine.OutputJSON:
				return writeJSON(w, recordsPage{Pagination: pagination.NewMeta(params.page, len(records)), Records: page})
			case engine.OutputNDJSON:
				return engine.RenderRecordsAsNDJSON(w, page)
			case engine.OutputTable:
				return engine.RenderRecordsAsTable(w, page)
			default:
				return fmt.Errorf("%w: %s", engine.ErrUnknownFormat, format)
			}
		},
	}

	addOutputFlag(cmd, &params.output)
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort by field[:asc|desc], e.g. emissions:desc")
	cmd.Flags().IntVar(&params.page.Limit, "limit", pagination.DefaultLimit, "maximum records to show (0 = all)")
	cmd.Flags().IntVar(&params.page.Offset, "offset", 0, "records to skip")
	cmd.Flags().IntVar(&params.page.Page, "page", 0, "1-based page number (use with --page-size)")
	cmd.Flags().IntVar(&params.page.PageSize, "page-size", 0, "records per page")
	return cmd
}
