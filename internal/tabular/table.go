// Package tabular turns delimited text and spreadsheets into header-keyed rows.
//
// The first row supplies the headers. Malformed rows are reported in
// Table.Errors but never fail the parse.
package tabular

import (
	"fmt"
	"strings"
)

// Row maps a header to its raw cell value.
type Row map[string]string

// RowError describes a row that was kept but is malformed.
type RowError struct {
	// Line is the 1-based source line or sheet row.
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Table is a parsed input: ordered headers and ordered rows.
type Table struct {
	Headers []string
	Rows    []Row
	Errors  []RowError
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// utf8BOM is stripped from the first header.
const utf8BOM = "\ufeff"

// FromRecords builds a Table from raw records whose first record is the header row.
// It applies the same header and row rules as the file parsers.
func FromRecords(records [][]string) *Table {
	b := newBuilder(true)
	for i, rec := range records {
		b.add(i+1, rec)
	}
	return b.table
}

// builder accumulates records into a Table.
type builder struct {
	table *Table
	// reportShort reports rows with fewer cells than headers. Spreadsheets drop
	// trailing empty cells, so short rows there are normal.
	reportShort bool
}

func newBuilder(reportShort bool) *builder {
	return &builder{table: &Table{}, reportShort: reportShort}
}

func (b *builder) add(line int, rec []string) {
	if b.table.Headers == nil {
		b.table.Headers = normalizeHeaders(rec)
		return
	}
	if blank(rec) {
		return
	}

	headers := b.table.Headers
	switch {
	case len(rec) > len(headers):
		b.table.Errors = append(b.table.Errors, RowError{
			Line:    line,
			Message: fmt.Sprintf("expected %d fields, found %d; extra fields ignored", len(headers), len(rec)),
		})
	case len(rec) < len(headers) && b.reportShort:
		b.table.Errors = append(b.table.Errors, RowError{
			Line:    line,
			Message: fmt.Sprintf("expected %d fields, found %d", len(headers), len(rec)),
		})
	}

	row := make(Row, len(headers))
	for i, h := range headers {
		if i < len(rec) {
			row[h] = rec[i]
		}
	}
	b.table.Rows = append(b.table.Rows, row)
}

// normalizeHeaders trims headers and renames duplicates to name_1, name_2, ...
// Suffixes already used by another header are skipped, so names stay unique.
func normalizeHeaders(rec []string) []string {
	out := make([]string, len(rec))
	taken := make(map[string]bool, len(rec))
	for i, h := range rec {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
		taken[out[i]] = true
	}

	used := make(map[string]bool, len(rec))
	suffix := make(map[string]int, len(rec))
	for i, h := range out {
		if used[h] {
			base := h
			for taken[h] || used[h] {
				suffix[base]++
				h = fmt.Sprintf("%s_%d", base, suffix[base])
			}
			out[i] = h
		}
		used[h] = true
	}
	return out
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
