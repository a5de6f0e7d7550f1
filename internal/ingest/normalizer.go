package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/tabular"
)

// FactorTable supplies emission factors. Unknown names must resolve to a fallback.
type FactorTable interface {
	MaterialFactor(name string) float64
	TransportFactor(name string) float64
}

// Normalizer turns raw rows into activity records.
type Normalizer struct {
	factors FactorTable
}

// NewNormalizer returns a Normalizer computing emissions from factors.
func NewNormalizer(factors FactorTable) *Normalizer {
	return &Normalizer{factors: factors}
}

// numericPrefix matches the leading number of a cell such as "1200kg".
//
//nolint:gochecknoglobals // Compiled once.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseQuantity reads a non-negative quantity from a cell: the longest leading
// decimal number, so "1200kg" is 1200 and "1,200" is 1. Digit separators, hex
// and anything without a leading number give 0, as do negative values.
func ParseQuantity(s string) float64 {
	prefix := numericPrefix.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Emissions computes weight*materialFactor + weight*distance*transportFactor,
// rounded half-up to one decimal.
func (n *Normalizer) Emissions(material, mode string, weight, distance float64) float64 {
	raw := weight*n.factors.MaterialFactor(material) + weight*distance*n.factors.TransportFactor(mode)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	return decimal.NewFromFloat(raw).Round(1).InexactFloat64()
}

// Normalize builds the record for one row. index is the row's position in its
// batch and at the ingestion time; together they form the record ID. The second
// result is false when the row has neither weight nor distance and is dropped.
func (n *Normalizer) Normalize(row tabular.Row, m Mapping, index int, at time.Time) (engine.ActivityRecord, bool) {
	str := func(f Field, def string) string {
		if v, ok := m.Lookup(row, f); ok {
			return v
		}
		return def
	}
	num := func(f Field) float64 {
		v, _ := m.Lookup(row, f)
		return ParseQuantity(v)
	}

	weight := num(FieldWeight)
	distance := num(FieldDistance)
	if weight <= 0 && distance <= 0 {
		return engine.ActivityRecord{}, false
	}

	rec := engine.ActivityRecord{
		ID:            fmt.Sprintf("rec-%d-%d", index, at.UnixMilli()),
		Date:          str(FieldDate, at.UTC().Format(engine.DateLayout)),
		Supplier:      str(FieldSupplier, engine.DefaultSupplier),
		Material:      str(FieldMaterial, engine.DefaultMaterial),
		Weight:        weight,
		Distance:      distance,
		TransportMode: str(FieldTransportMode, engine.DefaultTransportMode),
		Region:        str(FieldRegion, engine.DefaultRegion),
	}
	rec.Emissions = n.Emissions(rec.Material, rec.TransportMode, weight, distance)
	return rec, true
}
