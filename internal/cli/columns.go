package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/ingest"
)

// columnInfo describes how one record field is detected.
type columnInfo struct {
	Field     string   `json:"field"`
	Canonical string   `json:"canonical"`
	Synonyms  []string `json:"synonyms"`
	Source    string   `json:"source"`
}

func newColumnsCmd(state *rootState) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show the header synonyms used to detect each column",
		Long: `Show the header synonyms used to detect each record field.

Headers match a synonym case-insensitively after trimming. A field with no
matching header is read from its canonical header instead. Lists can be
replaced per field under ingest.synonyms in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := state.outputFormat(output)
			if err != nil {
				return err
			}
			cols := columnInfos(state.app.Resolver)

			w := cmd.OutOrStdout()
			switch format {
			case engine.OutputJSON, engine.OutputNDJSON:
				return writeJSON(w, cols)
			case engine.OutputTable:
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "FIELD\tCANONICAL\tSOURCE\tSYNONYMS")
				for _, c := range cols {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Field, c.Canonical, c.Source, strings.Join(c.Synonyms, ", "))
				}
				return tw.Flush()
			default:
				return fmt.Errorf("%w: %s", engine.ErrUnknownFormat, format)
			}
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

func columnInfos(r *ingest.Resolver) []columnInfo {
	defaults := ingest.DefaultSynonyms()
	out := make([]columnInfo, 0, len(defaults))
	for _, f := range ingest.Fields() {
		syn := r.Synonyms(f)
		source := "config"
		if slices.Equal(syn, defaults[f.String()]) {
			source = "default"
		}
		out = append(out, columnInfo{Field: f.String(), Canonical: f.CanonicalHeader(), Synonyms: syn, Source: source})
	}
	return out
}
