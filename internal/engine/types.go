// Package engine derives the emissions model from normalized activity records.
//
// Aggregate recomputes every summary from the full record set in one pass, and
// Recommend applies the mitigation rule table to the aggregated totals. Both are
// pure functions; the current Snapshot is owned by the store package.
package engine

// Default field values for activity records.
const (
	DefaultSupplier      = "Unknown"
	DefaultMaterial      = "Other"
	DefaultTransportMode = "Heavy Duty Truck"
	DefaultRegion        = "Global"
)

// DateLayout is the ISO calendar date format used for record dates.
const DateLayout = "2006-01-02"

// ActivityRecord is one normalized supplier shipment.
//
// Records are values: once created by the normalizer they are never modified.
// A record only exists when Weight > 0 or Distance > 0.
type ActivityRecord struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Supplier      string  `json:"supplier"`
	Material      string  `json:"material"`
	Weight        float64 `json:"weight"`
	Distance      float64 `json:"distance"`
	TransportMode string  `json:"transportMode"`
	Region        string  `json:"region"`
	// Emissions is kg CO2e rounded to one decimal.
	Emissions float64 `json:"emissions"`
}

// SupplierSummary is a supplier's share of total emissions.
type SupplierSummary struct {
	Name         string  `json:"name"`
	Emissions    float64 `json:"emissions"`
	Contribution float64 `json:"contribution"`
	Region       string  `json:"region"`
	Color        string  `json:"color"`
}

// MaterialSummary is a material's share of total emissions.
type MaterialSummary struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// TransportSummary is the total emissions of one transport mode.
type TransportSummary struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// CategorySummary is one of the three fixed emission categories.
type CategorySummary struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// TrendPoint is the total emissions for one calendar month.
type TrendPoint struct {
	Month     string  `json:"month"`
	Emissions float64 `json:"emissions"`
}

// Recommendation is a mitigation suggestion produced by a rule.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Emissions is the estimated reduction in kg CO2e.
	Emissions float64 `json:"emissions"`
	Cost      string  `json:"cost"`
	Savings   string  `json:"savings"`
	Image     string  `json:"image"`
}

// Aggregation is the derived view of a record set.
type Aggregation struct {
	TotalEmissions float64            `json:"totalEmissions"`
	Suppliers      []SupplierSummary  `json:"suppliers"`
	Materials      []MaterialSummary  `json:"materials"`
	TransportModes []TransportSummary `json:"transportModes"`
	Categories     []CategorySummary  `json:"categories"`
	Trend          []TrendPoint       `json:"trend"`

	// MaterialTotals and TransportTotals are the unrounded per-key sums the
	// recommendation rules read.
	MaterialTotals  map[string]float64 `json:"-"`
	TransportTotals map[string]float64 `json:"-"`
}

// Snapshot is the complete published state: records plus everything derived from them.
//
// A Snapshot is never modified after it is published; a commit builds a new one.
type Snapshot struct {
	Records            []ActivityRecord   `json:"records,omitempty"`
	Suppliers          []SupplierSummary  `json:"suppliers"`
	TransportModes     []TransportSummary `json:"transportModes"`
	Materials          []MaterialSummary  `json:"materials"`
	Categories         []CategorySummary  `json:"categories"`
	Recommendations    []Recommendation   `json:"recommendations"`
	Trend              []TrendPoint       `json:"trend"`
	TotalEmissions     float64            `json:"totalEmissions"`
	PotentialReduction float64            `json:"potentialReduction"`
	// IsFresh stays true until the first successful commit.
	IsFresh bool `json:"isFresh"`
	// Version is the unix millisecond timestamp of the last commit or reset.
	Version int64 `json:"dataVersion"`
	// Commits counts successful commits since the last reset.
	Commits int `json:"commits"`
}

// Build assembles a snapshot from records and their aggregation.
func Build(records []ActivityRecord, agg Aggregation, version int64) Snapshot {
	recs := Recommend(agg.MaterialTotals, agg.TransportTotals)
	return Snapshot{
		Records:            records,
		Suppliers:          agg.Suppliers,
		TransportModes:     agg.TransportModes,
		Materials:          agg.Materials,
		Categories:         agg.Categories,
		Recommendations:    recs,
		Trend:              agg.Trend,
		TotalEmissions:     agg.TotalEmissions,
		PotentialReduction: PotentialReduction(recs),
		Version:            version,
	}
}

// Summary returns a copy of s without the record list, for dashboard surfaces.
func (s Snapshot) Summary() Snapshot {
	s.Records = nil
	return s
}
