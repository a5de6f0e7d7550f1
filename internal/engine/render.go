package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/scopezero/scopezero/internal/greenops"
)

// OutputFormat selects a snapshot renderer.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// truncateMinLen is the length below which truncate adds no ellipsis.
const truncateMinLen = 3

// nameColWidth bounds name columns in the table output.
const nameColWidth = 32

// ParseOutputFormat validates a format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or ndjson)", ErrUnknownFormat, s)
	}
}

// Render writes s in the given format.
func Render(w io.Writer, format OutputFormat, s Snapshot) error {
	switch format {
	case OutputJSON:
		return RenderSnapshotAsJSON(w, s)
	case OutputNDJSON:
		return RenderRecordsAsNDJSON(w, s.Records)
	case OutputTable, "":
		return RenderSnapshotAsTable(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatKgRounded formats an integer kg figure with thousand separators.
func FormatKgRounded(kg float64) string {
	return greenops.FormatNumber(int64(math.Round(kg))) + " kg"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= truncateMinLen {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// RenderSnapshotAsTable writes a multi-section text report of the snapshot summaries.
func RenderSnapshotAsTable(w io.Writer, s Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	status := "live"
	if s.IsFresh {
		status = "demo data"
	}
	lines := []string{
		fmt.Sprintf("TOTAL EMISSIONS\t%s CO2e\t(%s)", FormatKgRounded(s.TotalEmissions), status),
		fmt.Sprintf("RECORDS\t%d\t", len(s.Records)),
		fmt.Sprintf("UPDATED\t%s\t", versionTime(s.Version)),
	}
	if desc := greenops.Describe(s.TotalEmissions); desc != "" {
		lines = append(lines, "\t"+desc+"\t")
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(tw, l); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	sections := []func(io.Writer, Snapshot) error{
		writeSuppliers, writeMaterials, writeTransport, writeCategories, writeTrend, writeRecommendations,
	}
	for _, section := range sections {
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}
		if err := section(tw, s); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func writeSuppliers(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "SUPPLIER\tREGION\tEMISSIONS\tSHARE\n--------\t------\t---------\t-----\n"); err != nil {
		return fmt.Errorf("writing suppliers: %w", err)
	}
	for _, sup := range s.Suppliers {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\n",
			truncate(sup.Name, nameColWidth), sup.Region, FormatKgRounded(sup.Emissions), sup.Contribution); err != nil {
			return fmt.Errorf("writing supplier row: %w", err)
		}
	}
	return nil
}

func writeMaterials(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "MATERIAL\tSHARE\n--------\t-----\n"); err != nil {
		return fmt.Errorf("writing materials: %w", err)
	}
	for _, m := range s.Materials {
		if _, err := fmt.Fprintf(w, "%s\t%.0f%%\n", truncate(m.Name, nameColWidth), m.Percentage); err != nil {
			return fmt.Errorf("writing material row: %w", err)
		}
	}
	return nil
}

func writeTransport(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "TRANSPORT\tEMISSIONS\n---------\t---------\n"); err != nil {
		return fmt.Errorf("writing transport: %w", err)
	}
	for _, t := range s.TransportModes {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", truncate(t.Mode, nameColWidth), FormatKgRounded(t.Value)); err != nil {
			return fmt.Errorf("writing transport row: %w", err)
		}
	}
	return nil
}

func writeCategories(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "CATEGORY\tVALUE\tSHARE\n--------\t-----\t-----\n"); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	for _, c := range s.Categories {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%.0f%%\n", c.Name, FormatKgRounded(c.Value), c.Percentage); err != nil {
			return fmt.Errorf("writing category row: %w", err)
		}
	}
	return nil
}

func writeTrend(w io.Writer, s Snapshot) error {
	if _, err := fmt.Fprintf(w, "MONTH\tEMISSIONS\n-----\t---------\n"); err != nil {
		return fmt.Errorf("writing trend: %w", err)
	}
	for _, p := range s.Trend {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", p.Month, FormatKgRounded(p.Emissions)); err != nil {
			return fmt.Errorf("writing trend row: %w", err)
		}
	}
	return nil
}

func writeRecommendations(w io.Writer, s Snapshot) error {
	if len(s.Recommendations) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations")
		return err
	}
	if _, err := fmt.Fprintf(w, "RECOMMENDATION\tREDUCTION\tCOST\tSAVINGS\n--------------\t---------\t----\t-------\n"); err != nil {
		return fmt.Errorf("writing recommendations: %w", err)
	}
	for _, r := range s.Recommendations {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Title, FormatKgRounded(r.Emissions), r.Cost, r.Savings); err != nil {
			return fmt.Errorf("writing recommendation row: %w", err)
		}
	}
	_, err := fmt.Fprintf(w, "Potential reduction:\t%s\t\t\n", FormatKgRounded(s.PotentialReduction))
	return err
}

// RenderRecordsAsTable writes one line per record.
func RenderRecordsAsTable(w io.Writer, records []ActivityRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "DATE\tSUPPLIER\tMATERIAL\tWEIGHT\tDISTANCE\tMODE\tREGION\tEMISSIONS\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%s\t%s\t%.1f\n",
			r.Date, truncate(r.Supplier, nameColWidth), truncate(r.Material, nameColWidth),
			r.Weight, r.Distance, r.TransportMode, r.Region, r.Emissions); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

// SnapshotMetadata describes a JSON snapshot document.
type SnapshotMetadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	RecordCount int       `json:"recordCount"`
}

// SnapshotJSONOutput is the top-level JSON output structure.
type SnapshotJSONOutput struct {
	Metadata SnapshotMetadata `json:"metadata"`
	Snapshot
}

// RenderSnapshotAsJSON writes the snapshot summaries as indented JSON without the record list.
func RenderSnapshotAsJSON(w io.Writer, s Snapshot) error {
	output := SnapshotJSONOutput{
		Metadata: SnapshotMetadata{GeneratedAt: time.Now(), RecordCount: len(s.Records)},
		Snapshot: s.Summary(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderRecordsAsNDJSON writes each record as a separate JSON line.
func RenderRecordsAsNDJSON(w io.Writer, records []ActivityRecord) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

func versionTime(v int64) string {
	if v <= 1 {
		return "never"
	}
	return time.UnixMilli(v).UTC().Format(time.RFC3339)
}
