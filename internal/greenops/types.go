// Package greenops holds the emission factor table and carbon presentation helpers.
//
// The factor table converts shipment activity (mass, mass x distance) into kg CO2e.
// Unknown materials and transport modes never fail a lookup: they resolve to
// conservative fallback factors, since upstream supplier data is routinely incomplete.
//
// The equivalency helpers turn a kg CO2e figure into relatable real-world
// comparisons ("miles driven", "smartphones charged") using EPA-published factors.
package greenops

import "fmt"

// FactorKind distinguishes material factors from transport factors.
type FactorKind string

const (
	// KindMaterial factors are kg CO2e per kg of material.
	KindMaterial FactorKind = "material"

	// KindTransport factors are kg CO2e per kg·km moved.
	KindTransport FactorKind = "transport"
)

// Factor is a single named entry of the factor table, used for listings.
type Factor struct {
	Kind   FactorKind `json:"kind"   yaml:"kind"`
	Name   string     `json:"name"   yaml:"name"`
	Value  float64    `json:"factor" yaml:"factor"`
	Source string     `json:"source" yaml:"source"`
	Year   int        `json:"year"   yaml:"year"`
}

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings converts CO2e to tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the kg CO2e figure the equivalencies were derived from.
	InputKg float64 `json:"input_kg"`

	// Results are ordered miles, smartphones, seedlings.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to driving ~61,719 miles or planting ~198 tree seedlings".
	DisplayText string `json:"display_text"`

	// IsEmpty is true when the input was below MinEquivalencyThresholdKg.
	IsEmpty bool `json:"is_empty"`
}
