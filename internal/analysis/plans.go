package analysis

import (
	"armbench/domain/benchmark"
	"armbench/domain/metric"
)

// gearlessDesignWeightKg is the gearless arm's design-sheet weight used by
// the performance comparison; weight is a specification value, not a test
// measurement.
const gearlessDesignWeightKg = 2.4

// PerformancePlan is the performance-metrics batch: payload and joint
// breakdowns plus the traditional-vs-gearless comparison over the key
// efficiency metrics.
func PerformancePlan(bench benchmark.Constants) Plan {
	loadBuckets := DefaultLoadBuckets()
	meanReducers := []Reducer{ReduceMean, ReduceCount}

	return Plan{
		Name:    "performance",
		Metrics: metric.StandardDefinitions(),
		Groups: []GroupPlan{
			{
				Name:   "payload",
				Bucket: &loadBuckets,
				Request: Request{
					GroupBy: []string{"design_type", "load_category"},
					Reduce: map[string][]Reducer{
						"power_consumption": meanReducers,
						"positioning_error": meanReducers,
						"temperature":       meanReducers,
						"noise_level":       meanReducers,
						"response_time":     meanReducers,
					},
				},
			},
			{
				Name: "joint",
				Request: Request{
					GroupBy: []string{"design_type", "joint_type"},
					Reduce: map[string][]Reducer{
						"power_consumption": meanReducers,
						"positioning_error": meanReducers,
						"temperature":       meanReducers,
						"response_time":     meanReducers,
					},
				},
			},
		},
		Compare: &ComparePlan{
			VariantColumn:  "design_type",
			BaselineLabel:  "traditional",
			CandidateLabel: "gearless",
			Specs: []metric.ComparisonSpec{
				{Name: "weight_kg", Polarity: metric.LowerIsBetter},
				// watts per kg of payload, so lower wins
				{Name: "power_efficiency", Polarity: metric.LowerIsBetter},
				{Name: "positioning_error", Polarity: metric.LowerIsBetter},
				{Name: "temperature", Polarity: metric.LowerIsBetter},
				{Name: "noise_level", Polarity: metric.LowerIsBetter},
				{Name: "response_time", Polarity: metric.LowerIsBetter},
			},
			Ratios: []RatioSpec{
				{Name: "power_efficiency", Numerator: "power_consumption", Denominator: "load"},
			},
			BaselineExtras: map[string]float64{
				"weight_kg": bench.WeightKg,
			},
			CandidateExtras: map[string]float64{
				"weight_kg": gearlessDesignWeightKg,
			},
		},
	}
}

// StructuralPlan is the structural-analysis batch: stress factors, joint
// load distribution and the comparison against traditional-design literature
// constants. The structural dataset holds gearless measurements only, so the
// baseline row comes entirely from the benchmark constants.
func StructuralPlan(bench benchmark.Constants, gearless benchmark.Constants) Plan {
	return Plan{
		Name:    "structural",
		Metrics: metric.StandardDefinitions(),
		Groups: []GroupPlan{
			{
				Name: "stress_factors",
				Request: Request{
					Reduce: map[string][]Reducer{
						"stress":                 {ReduceMean, ReduceMax, ReduceStd},
						"deflection":             {ReduceMean, ReduceMax},
						"safety_factor":          {ReduceMin, ReduceMean},
						"stress_to_weight_ratio": {ReduceMean},
					},
				},
			},
			{
				Name: "joint_loads",
				Request: Request{
					GroupBy: []string{"joint_id"},
					Reduce: map[string][]Reducer{
						"load":       {ReduceMean, ReduceMax, ReduceStd},
						"deflection": {ReduceMean, ReduceMax, ReduceStd},
						"stress":     {ReduceMean, ReduceMax, ReduceStd},
					},
				},
			},
		},
		Compare: &ComparePlan{
			CandidateLabel: "gearless",
			Specs:          benchmark.ComparisonSpecs(),
			Means: map[string]string{
				"mean_stress": "stress",
				"weight":      "weight",
			},
			BaselineExtras: bench.Metrics(),
			CandidateExtras: map[string]float64{
				"weight":           gearless.WeightKg,
				"power_efficiency": gearless.PowerEfficiency,
				"assembly_time":    gearless.AssemblyTimeHrs,
			},
		},
	}
}
