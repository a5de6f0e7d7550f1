package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatKg formats a kg CO2e figure for display.
//
// Below TonneThresholdKg it prints kilograms with one decimal ("11,850.0 kg CO2e");
// at or above it switches to tonnes ("12.5 t CO2e").
func FormatKg(kg float64) string {
	if math.Abs(kg) >= TonneThresholdKg {
		return printer.Sprintf("%.1f t CO2e", kg/1000)
	}
	return printer.Sprintf("%.1f kg CO2e", kg)
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold use comma-separated format, values at or
// above it "~X.X million", and values at or above BillionThreshold "~X.X billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
