package analysis

import (
	"armbench/domain/metric"
	"armbench/internal/errors"
)

// ComparisonEntry holds one metric's baseline value, candidate value and
// signed percentage improvement. The sign convention is uniform: positive
// means the candidate wins under the metric's declared polarity.
type ComparisonEntry struct {
	Metric         string  `json:"metric"`
	Baseline       float64 `json:"baseline"`
	Candidate      float64 `json:"candidate"`
	ImprovementPct float64 `json:"improvement_pct"`
}

// Comparison is an insertion-ordered set of comparison entries
type Comparison struct {
	Entries []ComparisonEntry `json:"entries"`
}

// Entry looks up an entry by metric name
func (c *Comparison) Entry(name string) (ComparisonEntry, bool) {
	for _, e := range c.Entries {
		if e.Metric == name {
			return e, true
		}
	}
	return ComparisonEntry{}, false
}

// Comparator computes signed percentage improvements between a baseline and
// a candidate metric row.
type Comparator struct{}

// NewComparator creates a comparator
func NewComparator() *Comparator {
	return &Comparator{}
}

// Compare walks the specs in order and, for each metric present in both
// rows, computes
//
//	(baseline - candidate) / baseline * 100   for lower-is-better
//	(candidate - baseline) / baseline * 100   for higher-is-better
//
// Metrics absent on either side are skipped. A baseline that is zero or
// negative is a DivisionByZeroMetric error: a percentage improvement over a
// non-positive base is meaningless, and unlike the deriver's guards this is
// a data-quality problem that must surface.
func (c *Comparator) Compare(baseline, candidate map[string]float64, specs []metric.ComparisonSpec) (*Comparison, error) {
	result := &Comparison{}
	for _, spec := range specs {
		base, baseOK := baseline[spec.Name]
		cand, candOK := candidate[spec.Name]
		if !baseOK || !candOK {
			continue
		}

		if base <= 0 {
			return nil, errors.DivisionByZeroMetric(spec.Name, base)
		}

		var improvement float64
		if spec.Polarity == metric.LowerIsBetter {
			improvement = (base - cand) / base * 100
		} else {
			improvement = (cand - base) / base * 100
		}

		result.Entries = append(result.Entries, ComparisonEntry{
			Metric:         spec.Name,
			Baseline:       base,
			Candidate:      cand,
			ImprovementPct: improvement,
		})
	}
	return result, nil
}
