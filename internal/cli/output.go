package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/ingest"
)

// addOutputFlag registers --output on cmd.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "", "output format: table, json or ndjson (default from config)")
}

// outputFormat resolves the --output flag against the configured default.
func (s *rootState) outputFormat(flag string) (engine.OutputFormat, error) {
	if flag == "" {
		flag = s.app.Config.Output.DefaultFormat
	}
	return engine.ParseOutputFormat(flag)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCommit reports a commit summary on stderr so stdout stays machine-readable.
func printCommit(cmd *cobra.Command, label string, r *ingest.CommitResult) {
	msg := r.Message()
	if label != "" {
		msg = label + ": " + msg
	}
	cmd.PrintErrln(msg)
	if len(r.RowErrors) > 0 {
		cmd.PrintErrf("  %d row(s) had problems:\n", len(r.RowErrors))
		for _, e := range r.RowErrors {
			cmd.PrintErrf("    %s\n", e.Error())
		}
	}
	if len(r.Skipped) > 0 {
		cmd.PrintErrf("  already connected: %v\n", r.Skipped)
	}
}

// renderSnapshot writes the current snapshot in format.
func renderSnapshot(w io.Writer, format engine.OutputFormat, s engine.Snapshot) error {
	if err := engine.Render(w, format, s); err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}
	return nil
}
