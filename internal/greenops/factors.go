package greenops

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Table maps canonical material and transport mode names to emission factors.
//
// Keys match exactly and case-sensitively. A Table is read-only once built and is
// safe for concurrent use.
type Table struct {
	materials         map[string]float64
	transport         map[string]float64
	fallbackMaterial  float64
	fallbackTransport float64

	// Source and Year describe where the factors come from.
	Source string
	Year   int
	// Version is the semantic version of the factor file schema.
	Version string
}

// tableFile is the on-disk YAML layout of a factor table.
type tableFile struct {
	Version   string             `yaml:"version"`
	Source    string             `yaml:"source"`
	Year      int                `yaml:"year"`
	Materials map[string]float64 `yaml:"materials"`
	Transport map[string]float64 `yaml:"transport"`
	Fallback  *struct {
		Material  *float64 `yaml:"material"`
		Transport *float64 `yaml:"transport"`
	} `yaml:"fallback,omitempty"`
}

// DefaultTable returns the built-in factor table.
func DefaultTable() *Table {
	return &Table{
		materials: map[string]float64{
			"Steel":            FactorSteel,
			"Aluminum":         FactorAluminum,
			"Plastic":          FactorPlastic,
			"Cotton":           FactorCotton,
			"Industrial Parts": FactorIndustrialParts,
			"Packaging":        FactorPackaging,
			"Wood":             FactorWood,
			"Glass":            FactorGlass,
			"Copper":           FactorCopper,
		},
		transport: map[string]float64{
			"Heavy Duty Truck": FactorHeavyDutyTruck,
			"Cargo Ship":       FactorCargoShip,
			"Ocean Vessel":     FactorOceanVessel,
			"Rail Freight":     FactorRailFreight,
			"Air Cargo":        FactorAirCargo,
			"Express Air":      FactorExpressAir,
			"Intermodal Rail":  FactorIntermodalRail,
		},
		fallbackMaterial:  FallbackMaterialFactor,
		fallbackTransport: FallbackTransportFactor,
		Source:            DefaultFactorSource,
		Year:              DefaultFactorYear,
		Version:           DefaultTableVersion,
	}
}

// LoadTable reads a YAML factor file. See ParseTable for the accepted layout.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor file %s: %w", path, err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("factor file %s: %w", path, err)
	}
	return t, nil
}

// ParseTable builds a Table from YAML:
//
//	version: 1.0.0
//	source: Ecoinvent 3.8
//	year: 2024
//	materials: {Steel: 1.85}
//	transport: {Heavy Duty Truck: 0.1}
//	fallback: {material: 1.0, transport: 0.05}
//
// The version must be a semantic version with major SupportedTableMajor.
// Missing fallback values keep the built-in fallbacks.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing factor YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = DefaultTableVersion
	}
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, f.Version)
	}
	if v.Major() != SupportedTableMajor {
		return nil, fmt.Errorf("%w: %s (want %d.x)", ErrUnsupportedVersion, v, SupportedTableMajor)
	}

	t := &Table{
		materials:         make(map[string]float64, len(f.Materials)),
		transport:         make(map[string]float64, len(f.Transport)),
		fallbackMaterial:  FallbackMaterialFactor,
		fallbackTransport: FallbackTransportFactor,
		Source:            f.Source,
		Year:              f.Year,
		Version:           v.String(),
	}

	for name, value := range f.Materials {
		if !validFactor(value) {
			return nil, fmt.Errorf("%w: material %q = %v", ErrInvalidFactor, name, value)
		}
		t.materials[name] = value
	}
	for name, value := range f.Transport {
		if !validFactor(value) {
			return nil, fmt.Errorf("%w: transport %q = %v", ErrInvalidFactor, name, value)
		}
		t.transport[name] = value
	}

	if f.Fallback != nil {
		if f.Fallback.Material != nil {
			if !validFactor(*f.Fallback.Material) {
				return nil, fmt.Errorf("%w: fallback material", ErrInvalidFactor)
			}
			t.fallbackMaterial = *f.Fallback.Material
		}
		if f.Fallback.Transport != nil {
			if !validFactor(*f.Fallback.Transport) {
				return nil, fmt.Errorf("%w: fallback transport", ErrInvalidFactor)
			}
			t.fallbackTransport = *f.Fallback.Transport
		}
	}

	return t, nil
}

func validFactor(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MaterialFactor returns kg CO2e per kg for the material, or the material fallback.
func (t *Table) MaterialFactor(name string) float64 {
	if f, ok := t.materials[name]; ok {
		return f
	}
	return t.fallbackMaterial
}

// TransportFactor returns kg CO2e per kg·km for the transport mode, or the transport fallback.
func (t *Table) TransportFactor(name string) float64 {
	if f, ok := t.transport[name]; ok {
		return f
	}
	return t.fallbackTransport
}

// HasMaterial reports whether the material has its own factor.
func (t *Table) HasMaterial(name string) bool {
	_, ok := t.materials[name]
	return ok
}

// HasTransport reports whether the transport mode has its own factor.
func (t *Table) HasTransport(name string) bool {
	_, ok := t.transport[name]
	return ok
}

// Fallbacks returns the material and transport fallback factors.
func (t *Table) Fallbacks() (material, transport float64) {
	return t.fallbackMaterial, t.fallbackTransport
}

// Factors lists every entry, materials first, each group sorted by name.
func (t *Table) Factors() []Factor {
	out := make([]Factor, 0, len(t.materials)+len(t.transport))
	out = append(out, t.list(KindMaterial, t.materials)...)
	out = append(out, t.list(KindTransport, t.transport)...)
	return out
}

func (t *Table) list(kind FactorKind, m map[string]float64) []Factor {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Factor, 0, len(names))
	for _, name := range names {
		out = append(out, Factor{Kind: kind, Name: name, Value: m[name], Source: t.Source, Year: t.Year})
	}
	return out
}
