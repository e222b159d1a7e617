// Package metric declares derived engineering metrics as data: each
// definition names its input columns, a ratio formula, a divide-by-zero
// policy and a polarity. The per-script formulas of the original analysis
// collapse into this one catalog.
package metric

// Polarity states whether a metric is better when lower or higher. It is
// consumed only by the comparator when signing improvement percentages.
type Polarity string

const (
	LowerIsBetter  Polarity = "lower_is_better"
	HigherIsBetter Polarity = "higher_is_better"
)

// GuardPolicy decides what a ratio metric yields when its guard column is
// non-positive. Distinct metrics deliberately disagree: an efficiency ratio
// degrades to zero, a safety factor is undefined.
type GuardPolicy string

const (
	GuardToZero      GuardPolicy = "zero"
	GuardToUndefined GuardPolicy = "undefined"
)

// Definition is a declarative derived metric: Numerator / Denominator,
// computed only when Guard > 0.
type Definition struct {
	Name        string      `json:"name"`
	Numerator   string      `json:"numerator"`
	Denominator string      `json:"denominator"`
	Guard       string      `json:"guard"`
	OnGuardFail GuardPolicy `json:"on_guard_fail"`
	Polarity    Polarity    `json:"polarity"`
}

// Inputs returns the columns the definition requires
func (d Definition) Inputs() []string {
	inputs := []string{d.Numerator, d.Denominator}
	if d.Guard != d.Numerator && d.Guard != d.Denominator {
		inputs = append(inputs, d.Guard)
	}
	return inputs
}

// ComparisonSpec names a metric to compare and its polarity. Order of a spec
// slice is the order of comparison output.
type ComparisonSpec struct {
	Name     string   `json:"name"`
	Polarity Polarity `json:"polarity"`
}

// Standard catalog of derived metrics for arm test data.
var (
	// Efficiency is load moved per watt consumed. A non-positive load means
	// the arm did no useful work, so the ratio degrades to zero.
	Efficiency = Definition{
		Name:        "efficiency",
		Numerator:   "load",
		Denominator: "power_consumption",
		Guard:       "load",
		OnGuardFail: GuardToZero,
		Polarity:    HigherIsBetter,
	}

	// StressToWeightRatio measures structural loading per unit mass.
	StressToWeightRatio = Definition{
		Name:        "stress_to_weight_ratio",
		Numerator:   "stress",
		Denominator: "weight",
		Guard:       "weight",
		OnGuardFail: GuardToZero,
		Polarity:    LowerIsBetter,
	}

	// SafetyFactor is yield strength over observed stress. With no positive
	// stress the factor is physically meaningless, so it stays undefined
	// rather than pretending to be zero.
	SafetyFactor = Definition{
		Name:        "safety_factor",
		Numerator:   "yield_strength",
		Denominator: "stress",
		Guard:       "stress",
		OnGuardFail: GuardToUndefined,
		Polarity:    HigherIsBetter,
	}
)

// StandardDefinitions returns the default derived-metric catalog in a stable
// order
func StandardDefinitions() []Definition {
	return []Definition{Efficiency, StressToWeightRatio, SafetyFactor}
}
