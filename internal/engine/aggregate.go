package engine

import (
	"math"
	"sort"
)

// Category names.
const (
	CategoryMaterials = "Materials"
	CategoryLogistics = "Logistics"
	CategoryOthers    = "Others"
)

// othersShare is the fixed share of the grand total assigned to the Others category.
const othersShare = 0.1

// percentMultiplier converts a ratio to a percentage.
const percentMultiplier = 100

// bucket accumulates emissions for one key, remembering first-appearance order.
type bucket struct {
	key    string
	total  float64
	region string
}

// tally is an insertion-ordered map of buckets.
type tally struct {
	index   map[string]int
	buckets []bucket
}

func newTally() *tally {
	return &tally{index: make(map[string]int)}
}

func (t *tally) add(key string, v float64, region string) {
	if i, ok := t.index[key]; ok {
		t.buckets[i].total += v
		return
	}
	t.index[key] = len(t.buckets)
	t.buckets = append(t.buckets, bucket{key: key, total: v, region: region})
}

func (t *tally) sum() float64 {
	var s float64
	for _, b := range t.buckets {
		s += b.total
	}
	return s
}

func (t *tally) totals() map[string]float64 {
	m := make(map[string]float64, len(t.buckets))
	for _, b := range t.buckets {
		m[b.key] = b.total
	}
	return m
}

// percentOf returns v as a rounded integer percentage of total, or 0 when total is 0.
func percentOf(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(v / total * percentMultiplier)
}

// Aggregate recomputes every summary over the complete record set.
//
// Suppliers, materials and transport modes are sorted descending by their displayed
// value; ties keep first-appearance order. A supplier's region is taken from its
// first record. Records whose date cannot be parsed are counted in the UnknownMonth
// trend bucket, which follows December.
func Aggregate(records []ActivityRecord) Aggregation {
	suppliers := newTally()
	materials := newTally()
	transport := newTally()
	months := make(map[string]float64, len(monthOrder))

	var total float64
	for _, r := range records {
		total += r.Emissions
		suppliers.add(r.Supplier, r.Emissions, r.Region)
		materials.add(r.Material, r.Emissions, "")
		transport.add(r.TransportMode, r.Emissions, "")
		months[MonthOf(r.Date)] += r.Emissions
	}

	agg := Aggregation{
		TotalEmissions:  math.Round(total),
		Suppliers:       make([]SupplierSummary, 0, len(suppliers.buckets)),
		Materials:       make([]MaterialSummary, 0, len(materials.buckets)),
		TransportModes:  make([]TransportSummary, 0, len(transport.buckets)),
		Trend:           make([]TrendPoint, 0, len(months)),
		MaterialTotals:  materials.totals(),
		TransportTotals: transport.totals(),
	}

	for _, b := range suppliers.buckets {
		agg.Suppliers = append(agg.Suppliers, SupplierSummary{
			Name:         b.key,
			Emissions:    math.Round(b.total),
			Contribution: percentOf(b.total, total),
			Region:       b.region,
			Color:        SupplierColor(b.key),
		})
	}
	sort.SliceStable(agg.Suppliers, func(i, j int) bool {
		return agg.Suppliers[i].Emissions > agg.Suppliers[j].Emissions
	})

	for _, b := range materials.buckets {
		agg.Materials = append(agg.Materials, MaterialSummary{
			Name:       b.key,
			Percentage: percentOf(b.total, total),
			Color:      MaterialColor(b.key),
		})
	}
	sort.SliceStable(agg.Materials, func(i, j int) bool {
		return agg.Materials[i].Percentage > agg.Materials[j].Percentage
	})

	for _, b := range transport.buckets {
		agg.TransportModes = append(agg.TransportModes, TransportSummary{
			Mode:  b.key,
			Value: math.Round(b.total),
			Color: TransportColor(b.key),
		})
	}
	sort.SliceStable(agg.TransportModes, func(i, j int) bool {
		return agg.TransportModes[i].Value > agg.TransportModes[j].Value
	})

	matVal := materials.sum()
	logVal := transport.sum()
	agg.Categories = []CategorySummary{
		{Name: CategoryMaterials, Value: math.Round(matVal), Percentage: percentOf(matVal, total), Color: ColorMaterials},
		{Name: CategoryLogistics, Value: math.Round(logVal), Percentage: percentOf(logVal, total), Color: ColorLogistics},
		{Name: CategoryOthers, Value: math.Round(total * othersShare), Percentage: othersShare * percentMultiplier, Color: ColorOthers},
	}

	for _, m := range monthOrder {
		if v := math.Round(months[m]); v > 0 {
			agg.Trend = append(agg.Trend, TrendPoint{Month: m, Emissions: v})
		}
	}

	return agg
}
