// Package benchmark carries the literature reference values used when no
// measured baseline rows are available. The comparator treats these as an
// opaque baseline row.
package benchmark

import "armbench/domain/metric"

// Constants holds reference metrics for one design variant.
type Constants struct {
	MeanStressMPa   float64 `json:"mean_stress_mpa"`
	WeightKg        float64 `json:"weight_kg"`
	PowerEfficiency float64 `json:"power_efficiency"`
	AssemblyTimeHrs float64 `json:"assembly_time_hrs"`
}

// DefaultTraditional returns typical published metrics for comparable
// traditional geared arms.
func DefaultTraditional() Constants {
	return Constants{
		MeanStressMPa:   150,  // MPa, typical stress in geared designs
		WeightKg:        3.2,  // kg, average weight of comparable geared arms
		PowerEfficiency: 0.65, // 65% drivetrain efficiency
		AssemblyTimeHrs: 4.5,  // hours, standard assembly time
	}
}

// DefaultGearless returns the gearless design-sheet values used to fill
// metrics that have no measured column (weight and assembly time come from
// manufacturing records, efficiency from bench tests).
func DefaultGearless() Constants {
	return Constants{
		MeanStressMPa:   120,
		WeightKg:        2.1,
		PowerEfficiency: 0.82,
		AssemblyTimeHrs: 2.8,
	}
}

// Metrics flattens the constants into a comparator-ready metric map.
func (c Constants) Metrics() map[string]float64 {
	return map[string]float64{
		"mean_stress":      c.MeanStressMPa,
		"weight":           c.WeightKg,
		"power_efficiency": c.PowerEfficiency,
		"assembly_time":    c.AssemblyTimeHrs,
	}
}

// ComparisonSpecs returns the ordered comparison specs for the benchmark
// metrics. Stress, weight and assembly time improve downward; drivetrain
// efficiency improves upward.
func ComparisonSpecs() []metric.ComparisonSpec {
	return []metric.ComparisonSpec{
		{Name: "mean_stress", Polarity: metric.LowerIsBetter},
		{Name: "weight", Polarity: metric.LowerIsBetter},
		{Name: "power_efficiency", Polarity: metric.HigherIsBetter},
		{Name: "assembly_time", Polarity: metric.LowerIsBetter},
	}
}
