package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/tabular"
)

// ManualEntry is a single shipment typed in by a user.
type ManualEntry struct {
	Date          string  `json:"date"          validate:"required,datetime=2006-01-02"`
	Supplier      string  `json:"supplier"      validate:"required"`
	Material      string  `json:"material"      validate:"required"`
	Weight        float64 `json:"weight"        validate:"gt=0"`
	Distance      float64 `json:"distance"      validate:"gte=0"`
	TransportMode string  `json:"transportMode"`
	Region        string  `json:"region"`
}

// normalize trims every string and fills the optional fields.
func (e ManualEntry) normalize() ManualEntry {
	e.Date = strings.TrimSpace(e.Date)
	e.Supplier = strings.TrimSpace(e.Supplier)
	e.Material = strings.TrimSpace(e.Material)
	e.TransportMode = strings.TrimSpace(e.TransportMode)
	e.Region = strings.TrimSpace(e.Region)
	if e.TransportMode == "" {
		e.TransportMode = engine.DefaultTransportMode
	}
	if e.Region == "" {
		e.Region = engine.DefaultRegion
	}
	return e
}

// table renders the entry as a one-row table with canonical headers.
func (e ManualEntry) table() *tabular.Table {
	return tabular.FromRecords([][]string{
		{"Date", "Supplier", "Material", "Weight", "Distance", "TransportMode", "Region"},
		{
			e.Date, e.Supplier, e.Material,
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			strconv.FormatFloat(e.Distance, 'f', -1, 64),
			e.TransportMode, e.Region,
		},
	})
}

// AddManual validates a manual entry and commits it as a single-row batch.
// Validation failures wrap ErrInvalidEntry.
func (i *Ingestor) AddManual(ctx context.Context, e ManualEntry) (*CommitResult, error) {
	e = e.normalize()
	if err := i.validate.StructCtx(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return i.IngestTable(ctx, e.table(), OriginManual)
}
