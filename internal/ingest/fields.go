// Package ingest maps loosely structured tabular input onto activity records and
// commits them to the store.
//
// A Resolver decides which column supplies each Field, a Normalizer turns one row
// into an engine.ActivityRecord, a Pipeline runs both over a whole table in
// chunks, and an Ingestor funnels uploads, manual entries and partner syncs
// through the Pipeline into a single store commit.
package ingest

import (
	"fmt"
	"strings"
)

// Field is one of the seven semantic columns of an activity record.
type Field int

// Fields in resolution order.
const (
	FieldDate Field = iota
	FieldSupplier
	FieldMaterial
	FieldWeight
	FieldDistance
	FieldTransportMode
	FieldRegion

	numFields
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	fieldNames = [numFields]string{
		"date", "supplier", "material", "weight", "distance", "transport_mode", "region",
	}
	canonicalHeaders = [numFields]string{
		"Date", "Supplier", "Material", "Weight", "Distance", "TransportMode", "Region",
	}
	defaultSynonyms = [numFields][]string{
		FieldDate:          {"date", "time", "timestamp", "period"},
		FieldSupplier:      {"supplier", "vendor", "entity", "company", "name"},
		FieldMaterial:      {"material", "material type", "type", "item"},
		FieldWeight:        {"weight", "weight (kg)", "kgs", "mass", "quantity"},
		FieldDistance:      {"distance", "distance (km)", "km", "length", "trip"},
		FieldTransportMode: {"transportmode", "transport mode", "mode", "method", "logistics"},
		FieldRegion:        {"region", "location", "country", "origin"},
	}
)

// Fields returns every field in resolution order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

func (f Field) valid() bool { return f >= 0 && f < numFields }

// String returns the field's configuration name, e.g. "transport_mode".
func (f Field) String() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// CanonicalHeader is the header looked up when the field was not resolved, e.g. "TransportMode".
func (f Field) CanonicalHeader() string {
	if !f.valid() {
		return ""
	}
	return canonicalHeaders[f]
}

// ParseField maps a configuration name to its Field. Case, spaces and hyphens are ignored.
func ParseField(name string) (Field, error) {
	key := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
	if key == "transportmode" || key == "mode" {
		return FieldTransportMode, nil
	}
	for i, n := range fieldNames {
		if n == key {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// DefaultSynonyms returns a copy of the built-in synonym lists keyed by field name.
func DefaultSynonyms() map[string][]string {
	out := make(map[string][]string, numFields)
	for i, list := range defaultSynonyms {
		out[fieldNames[i]] = append([]string(nil), list...)
	}
	return out
}
