package engine

// DefaultSnapshot returns the demonstration dataset shown before any data is
// ingested and restored by a reset. It has summaries but no records, so the
// first commit replaces every figure.
func DefaultSnapshot(version int64) Snapshot {
	return Snapshot{
		Records: []ActivityRecord{},
		Suppliers: []SupplierSummary{
			{Name: "Global Steel Co", Emissions: 5400, Contribution: 45, Region: "Asia", Color: ColorMaterials},
			{Name: "AluFab Ltd", Emissions: 2800, Contribution: 21, Region: "Europe", Color: ColorLogistics},
		},
		TransportModes: []TransportSummary{
			{Mode: "Heavy Duty Truck", Value: 3500, Color: "#ff9800"},
			{Mode: "Cargo Ship", Value: 2500, Color: "#2196f3"},
		},
		Materials: []MaterialSummary{
			{Name: "Steel", Percentage: 50, Color: "#4a7fb8"},
			{Name: "Aluminum", Percentage: 30, Color: "#5c8dc4"},
		},
		Categories: []CategorySummary{
			{Name: CategoryMaterials, Value: 7200, Percentage: 65, Color: ColorMaterials},
			{Name: CategoryLogistics, Value: 2500, Percentage: 25, Color: ColorLogistics},
			{Name: CategoryOthers, Value: 1000, Percentage: 10, Color: ColorOthers},
		},
		Recommendations: []Recommendation{},
		Trend: []TrendPoint{
			{Month: "Jan", Emissions: 1100},
			{Month: "Feb", Emissions: 1050},
		},
		TotalEmissions:     10700,
		PotentialReduction: 1500,
		IsFresh:            true,
		Version:            version,
	}
}
