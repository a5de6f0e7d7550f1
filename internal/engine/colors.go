package engine

import (
	"fmt"
	"hash/fnv"
)

// Fixed category colors.
const (
	ColorMaterials = "#4a7fb8"
	ColorLogistics = "#5cb860"
	ColorOthers    = "#f4b740"
)

// hueBand is a range of hues with fixed saturation and lightness.
type hueBand struct {
	start, width uint32
	sat, light   int
}

//nolint:gochecknoglobals // Fixed palettes.
var (
	supplierBand  = hueBand{start: 0, width: 360, sat: 70, light: 50}
	materialBand  = hueBand{start: 200, width: 60, sat: 60, light: 50}
	transportBand = hueBand{start: 100, width: 60, sat: 50, light: 45}
)

// color maps key to a stable hsl() color inside the band.
func (b hueBand) color(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	hue := b.start + h.Sum32()%b.width
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, b.sat, b.light)
}

// SupplierColor returns the display color for a supplier name.
func SupplierColor(name string) string { return supplierBand.color(name) }

// MaterialColor returns the display color for a material name.
func MaterialColor(name string) string { return materialBand.color(name) }

// TransportColor returns the display color for a transport mode.
func TransportColor(mode string) string { return transportBand.color(mode) }
