package engine

import "github.com/shopspring/decimal"

// FactorLookup reports whether a name has its own emission factor.
type FactorLookup interface {
	HasMaterial(name string) bool
	HasTransport(name string) bool
}

// AuditReport summarizes how trustworthy the current snapshot is.
type AuditReport struct {
	TotalRecords int `json:"totalRecords"`
	Commits      int `json:"commits"`
	// CompletenessScore is the percentage of records with positive emissions.
	CompletenessScore float64 `json:"completenessScore"`
	// FactorCoverage is the percentage of distinct materials and transport modes
	// that have their own factor rather than a fallback.
	FactorCoverage float64 `json:"factorCoverage"`
	// DataQualityScore is the mean of CompletenessScore and FactorCoverage.
	DataQualityScore float64 `json:"dataQualityScore"`
	LastUpdated      int64   `json:"lastUpdated"`
}

// Audit scores the records in s against the factor table.
//
// With no records completeness is 0 and coverage is 100. Scores are rounded to
// one decimal.
func Audit(s Snapshot, factors FactorLookup) AuditReport {
	report := AuditReport{
		TotalRecords:   len(s.Records),
		Commits:        s.Commits,
		FactorCoverage: percentMultiplier,
		LastUpdated:    s.Version,
	}

	var withEmissions int
	materials := make(map[string]struct{})
	modes := make(map[string]struct{})
	for _, r := range s.Records {
		if r.Emissions > 0 {
			withEmissions++
		}
		materials[r.Material] = struct{}{}
		modes[r.TransportMode] = struct{}{}
	}

	if n := len(s.Records); n > 0 {
		report.CompletenessScore = round1(float64(withEmissions) / float64(n) * percentMultiplier)
	}

	if distinct := len(materials) + len(modes); distinct > 0 {
		var covered int
		for m := range materials {
			if factors.HasMaterial(m) {
				covered++
			}
		}
		for m := range modes {
			if factors.HasTransport(m) {
				covered++
			}
		}
		report.FactorCoverage = round1(float64(covered) / float64(distinct) * percentMultiplier)
	}

	report.DataQualityScore = round1((report.CompletenessScore + report.FactorCoverage) / 2)
	return report
}

// round1 rounds half away from zero to one decimal.
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
