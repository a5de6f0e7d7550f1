package pagination

import (
	"errors"
	"math"
)

// Defaults and limits.
const (
	DefaultLimit = 100
	MaxLimit     = 10000
	MaxPageSize  = 1000
)

// Validation errors.
var (
	ErrInvalidLimit         = errors.New("limit must be between 0 and 10000")
	ErrInvalidPageSize      = errors.New("page-size must be between 1 and 1000")
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
)

// Params holds the pagination flags. Offset mode (Limit, Offset) and page mode
// (Page, PageSize) are mutually exclusive; Page 0 means offset mode.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// NewParams returns offset-mode defaults.
func NewParams() Params {
	return Params{Limit: DefaultLimit}
}

// Validate checks bounds and that only one mode is in use.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0 || p.Limit > MaxLimit:
		return ErrInvalidLimit
	case p.Offset < 0:
		return ErrInvalidOffset
	case p.Page < 0:
		return ErrInvalidPage
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && (p.PageSize < 1 || p.PageSize > MaxPageSize):
		return ErrInvalidPageSize
	}
	return nil
}

// IsPageBased reports whether page mode is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// window returns the offset and limit to apply; limit 0 means no limit.
func (p Params) window() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the requested window of items. It never aliases beyond the
// window and returns an empty slice when the window starts past the end.
func Apply[T any](p Params, items []T) []T {
	offset, limit := p.window()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 {
		end = min(offset+limit, len(items))
	}
	return items[offset:end]
}

// Meta describes a page of results.
type Meta struct {
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewMeta computes page metadata for total items.
func NewMeta(p Params, total int) Meta {
	offset, size := p.window()
	if size == 0 {
		size = total
	}

	current := 1
	if size > 0 {
		current = offset/size + 1
	}
	pages := 0
	if size > 0 {
		pages = int(math.Ceil(float64(total) / float64(size)))
	}

	return Meta{
		CurrentPage: current,
		PageSize:    size,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: current > 1,
		HasNext:     current < pages,
	}
}
