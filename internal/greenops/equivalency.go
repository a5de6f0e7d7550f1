package greenops

import (
	"fmt"
	"math"
	"strings"
)

// Calculate expresses a kg CO2e figure as EPA equivalencies.
//
// Figures below MinEquivalencyThresholdKg return an empty output with no error,
// since the comparisons become meaninglessly small. Negative input returns
// ErrNegativeValue; non-finite input or results return ErrCalculationOverflow.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	seedlings := kg / EPATreeSeedlingFactor
	if math.IsInf(phones, 0) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}

	results := []EquivalencyResult{
		{Type: EquivalencyMilesDriven, Value: miles, FormattedValue: formatEquivalencyValue(miles), Label: "miles driven"},
		{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: formatEquivalencyValue(phones), Label: "smartphones charged"},
		{Type: EquivalencyTreeSeedlings, Value: seedlings, FormattedValue: formatEquivalencyValue(seedlings), Label: "tree seedlings grown for 10 years"},
	}

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving %s miles or planting %s tree seedlings",
			approx(results[0].FormattedValue), approx(results[2].FormattedValue)),
	}, nil
}

// Describe returns the display text for kg, or "" when no equivalency applies.
func Describe(kg float64) string {
	out, err := Calculate(kg)
	if err != nil || out.IsEmpty {
		return ""
	}
	return out.DisplayText
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}

// approx prefixes "~" unless FormatLarge already did.
func approx(s string) string {
	if strings.HasPrefix(s, "~") {
		return s
	}
	return "~" + s
}
