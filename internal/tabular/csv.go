package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ParseCSV reads comma-delimited text with a header row.
//
// Quotes are handled leniently, blank lines are skipped, and rows whose field
// count differs from the header are kept with a RowError.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	b := newBuilder(true)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				b.table.Errors = append(b.table.Errors, RowError{Line: perr.Line, Message: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		b.add(line, rec)
	}
	return b.table, nil
}
