package greenops

// Built-in material factors, kg CO2e per kg (Ecoinvent 3.8, 2024).
const (
	FactorSteel           = 1.85
	FactorAluminum        = 12.5
	FactorPlastic         = 6.0
	FactorCotton          = 8.2
	FactorIndustrialParts = 2.4
	FactorPackaging       = 0.8
	FactorWood            = 0.5
	FactorGlass           = 1.2
	FactorCopper          = 3.7
)

// Built-in transport factors, kg CO2e per kg·km.
const (
	FactorHeavyDutyTruck = 0.1
	FactorCargoShip      = 0.015
	FactorOceanVessel    = 0.012
	FactorRailFreight    = 0.03
	FactorAirCargo       = 0.6
	FactorExpressAir     = 0.8
	FactorIntermodalRail = 0.025
)

// Fallback factors for names missing from the table.
const (
	// FallbackMaterialFactor is a neutral multiplier for unrecognized materials.
	FallbackMaterialFactor = 1.0

	// FallbackTransportFactor applies to unrecognized transport modes.
	FallbackTransportFactor = 0.05
)

// Provenance of the built-in table.
const (
	DefaultFactorSource = "Ecoinvent 3.8"
	DefaultFactorYear   = 2024
	DefaultTableVersion = "1.0.0"
	SupportedTableMajor = 1
)

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches FormatLarge to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches FormatLarge to "~X.X billion".
	BillionThreshold = 1_000_000_000

	// TonneThresholdKg switches FormatKg to tonnes.
	TonneThresholdKg = 10_000
)
