package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Parse errors.
const (
	ErrUnsupportedFormat = constError("unsupported file format")
	ErrNoSheet           = constError("workbook has no worksheets")
)

// Parse picks a parser from the file name's extension: .csv and .txt are read as
// CSV, .xlsx and .xlsm as Excel workbooks.
func Parse(name string, r io.Reader) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt":
		return ParseCSV(r)
	case ".xlsx", ".xlsm":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
