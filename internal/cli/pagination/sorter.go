package pagination

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/scopezero/scopezero/internal/engine"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// sortPartsMax is the maximum number of parts in a sort expression (field:order).
const sortPartsMax = 2

// Sort errors.
var (
	ErrEmptySortField   = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField = errors.New("invalid sort field")
)

// recordFields compares two records by one field.
//
//nolint:gochecknoglobals // Fixed field table.
var recordFields = map[string]func(a, b engine.ActivityRecord) int{
	"date":      func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Date, b.Date) },
	"supplier":  func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Supplier, b.Supplier) },
	"material":  func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Material, b.Material) },
	"mode":      func(a, b engine.ActivityRecord) int { return cmp.Compare(a.TransportMode, b.TransportMode) },
	"region":    func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Region, b.Region) },
	"weight":    func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Weight, b.Weight) },
	"distance":  func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Distance, b.Distance) },
	"emissions": func(a, b engine.ActivityRecord) int { return cmp.Compare(a.Emissions, b.Emissions) },
}

// SortFields lists the valid record sort fields.
func SortFields() []string {
	fields := make([]string, 0, len(recordFields))
	for f := range recordFields {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// ParseSort parses "field" or "field:order". The order defaults to desc.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(expr string) (field, order string, err error) {
	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("invalid sort format %q: use 'field' or 'field:order'", expr)
	}

	field = strings.ToLower(strings.TrimSpace(parts[0]))
	if field == "" {
		return "", "", ErrEmptySortField
	}
	if _, ok := recordFields[field]; !ok {
		return "", "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(SortFields(), ", "))
	}

	order = SortOrderDesc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// SortRecords returns a sorted copy of records. Ties keep input order. An
// unknown field returns the copy unsorted.
func SortRecords(records []engine.ActivityRecord, field, order string) []engine.ActivityRecord {
	sorted := slices.Clone(records)
	compare, ok := recordFields[field]
	if !ok {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b engine.ActivityRecord) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}
