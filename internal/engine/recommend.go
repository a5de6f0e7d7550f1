package engine

import "math"

// Rule inputs.
const (
	ModeAirCargo   = "Air Cargo"
	ModeExpressAir = "Express Air"
	MaterialSteel  = "Steel"
)

// rule is one independent threshold check over aggregated totals.
type rule struct {
	// basis returns the kg CO2e the rule looks at; the rule fires when it is > 0.
	basis func(materials, transport map[string]float64) float64
	// share is the fraction of basis the mitigation is estimated to remove.
	share float64
	tmpl  Recommendation
}

//nolint:gochecknoglobals // Fixed rule table; order is the output order.
var rules = []rule{
	{
		basis: func(_, transport map[string]float64) float64 {
			return transport[ModeAirCargo] + transport[ModeExpressAir]
		},
		share: 0.4,
		tmpl: Recommendation{
			Title: "Ocean Freight Transformation",
			Description: "Detected high-intensity air shipments. " +
				"Transitioning to Sea could reduce logistics impact by 85%.",
			Cost:    "$12,000",
			Savings: "$95,000",
			Image:   "ship",
		},
	},
	{
		basis: func(materials, _ map[string]float64) float64 {
			return materials[MaterialSteel]
		},
		share: 0.25,
		tmpl: Recommendation{
			Title:       "Green Steel Circularity",
			Description: "Integrate recycled steel components to lower primary extraction footprint.",
			Cost:        "$18,000",
			Savings:     "$7,000",
			Image:       "recycle",
		},
	},
}

// Recommend evaluates the mitigation rules against per-material and per-transport
// totals. Rules fire independently; the result keeps rule order (transport first).
// Nil maps are treated as empty.
func Recommend(materials, transport map[string]float64) []Recommendation {
	out := make([]Recommendation, 0, len(rules))
	for _, r := range rules {
		basis := r.basis(materials, transport)
		if basis <= 0 {
			continue
		}
		rec := r.tmpl
		rec.Emissions = math.Round(basis * r.share)
		out = append(out, rec)
	}
	return out
}

// PotentialReduction sums the estimated reductions of recs.
func PotentialReduction(recs []Recommendation) float64 {
	var sum float64
	for _, r := range recs {
		sum += r.Emissions
	}
	return sum
}
