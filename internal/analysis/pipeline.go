package analysis

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"armbench/domain/core"
	"armbench/domain/metric"
	"armbench/domain/table"
	"armbench/internal"
	"armbench/internal/errors"
)

// GroupPlan is one grouped-aggregation pass: an optional bucketing pre-step
// followed by an aggregation request.
type GroupPlan struct {
	Name    string      `json:"name"`
	Bucket  *BucketSpec `json:"bucket,omitempty"`
	Request Request     `json:"request"`
}

// RatioSpec is a comparison metric computed as a ratio of group means
// (e.g. mean power over mean load) rather than the mean of a per-row ratio.
type RatioSpec struct {
	Name        string `json:"name"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
}

// ComparePlan describes how to build the baseline and candidate metric rows
// for the comparator. A metric value comes from the first source that can
// supply it: an explicit column-mean mapping, a column mean matching the
// metric name, a ratio of means, then the extras (benchmark constants).
// An empty VariantColumn compares the whole table (as candidate) against a
// baseline assembled purely from extras.
type ComparePlan struct {
	VariantColumn   string                  `json:"variant_column"`
	BaselineLabel   string                  `json:"baseline_label"`
	CandidateLabel  string                  `json:"candidate_label"`
	Specs           []metric.ComparisonSpec `json:"specs"`
	Means           map[string]string       `json:"means,omitempty"`
	Ratios          []RatioSpec             `json:"ratios,omitempty"`
	BaselineExtras  map[string]float64      `json:"baseline_extras,omitempty"`
	CandidateExtras map[string]float64      `json:"candidate_extras,omitempty"`
}

// Plan is a full declarative batch: derived metrics, grouped aggregations
// and the final cross-variant comparison. The per-script variation of the
// original analysis is expressed here as data, not code.
type Plan struct {
	Name             string              `json:"name"`
	Metrics          []metric.Definition `json:"metrics"`
	Normalize        bool                `json:"normalize"`
	NormalizeColumns []string            `json:"normalize_columns,omitempty"`
	Groups           []GroupPlan         `json:"groups"`
	Compare          *ComparePlan        `json:"compare,omitempty"`
}

// GroupResult pairs a group plan's name with its aggregate rows
type GroupResult struct {
	Name    string     `json:"name"`
	GroupBy []string   `json:"group_by"`
	Rows    []GroupRow `json:"rows"`
}

// Result is one completed batch run
type Result struct {
	RunID      core.RunID    `json:"run_id"`
	Plan       string        `json:"plan"`
	Table      *table.Table  `json:"-"`
	Groups     []GroupResult `json:"groups"`
	Comparison *Comparison   `json:"comparison,omitempty"`
}

// Group returns a group result by plan name
func (r *Result) Group(name string) (GroupResult, bool) {
	for _, g := range r.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupResult{}, false
}

// Pipeline runs a Plan over a record table: Clean, Derive, optional
// Normalize, then per group plan Bucket and Aggregate, then Compare. The
// batch aborts on the first surfaced error with the failing stage wrapped
// in; partial results are discarded, never returned.
type Pipeline struct {
	cleaner         *Cleaner
	normalizer      *Normalizer
	deriver         *Deriver
	aggregator      *Aggregator
	comparator      *Comparator
	logger          *internal.Logger
	maxGroupWorkers int64
}

// NewPipeline creates a pipeline. maxGroupWorkers bounds concurrent
// per-group reduction; 1 keeps aggregation fully sequential.
func NewPipeline(maxGroupWorkers int64) *Pipeline {
	return &Pipeline{
		cleaner:         NewCleaner(),
		normalizer:      NewNormalizer(),
		deriver:         NewDeriver(),
		aggregator:      NewAggregator(),
		comparator:      NewComparator(),
		logger:          internal.DefaultLogger,
		maxGroupWorkers: maxGroupWorkers,
	}
}

// Run executes the plan over the table
func (p *Pipeline) Run(ctx context.Context, t *table.Table, plan Plan) (*Result, error) {
	p.logger.Info("pipeline %q: starting on %d rows", plan.Name, t.RowCount())

	cleaned, err := p.cleaner.Clean(t)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline %q: clean stage", plan.Name)
	}

	derived, err := p.deriver.Derive(cleaned, plan.Metrics)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline %q: derive stage", plan.Name)
	}

	if plan.Normalize {
		derived, err = p.normalizer.Normalize(derived, plan.NormalizeColumns)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline %q: normalize stage", plan.Name)
		}
	}

	result := &Result{
		RunID: core.NewRunID(),
		Plan:  plan.Name,
		Table: derived,
	}

	for _, gp := range plan.Groups {
		grouped := derived
		if gp.Bucket != nil {
			grouped, err = ApplyBucket(grouped, *gp.Bucket)
			if err != nil {
				return nil, errors.Wrapf(err, "pipeline %q: bucket stage for %q", plan.Name, gp.Name)
			}
		}
		rows, err := p.aggregator.AggregateConcurrent(ctx, grouped, gp.Request, p.maxGroupWorkers)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline %q: aggregate stage for %q", plan.Name, gp.Name)
		}
		result.Groups = append(result.Groups, GroupResult{
			Name:    gp.Name,
			GroupBy: gp.Request.GroupBy,
			Rows:    rows,
		})
	}

	if plan.Compare != nil {
		comparison, err := p.compare(derived, *plan.Compare)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline %q: compare stage", plan.Name)
		}
		result.Comparison = comparison
	}

	p.logger.Info("pipeline %q: completed, run %s", plan.Name, result.RunID)
	return result, nil
}

// compare assembles the baseline and candidate metric rows and hands them to
// the comparator
func (p *Pipeline) compare(t *table.Table, cp ComparePlan) (*Comparison, error) {
	baseline, err := p.variantMetrics(t, cp, cp.BaselineLabel, cp.BaselineExtras)
	if err != nil {
		return nil, err
	}
	candidate, err := p.variantMetrics(t, cp, cp.CandidateLabel, cp.CandidateExtras)
	if err != nil {
		return nil, err
	}
	return p.comparator.Compare(baseline, candidate, cp.Specs)
}

// variantMetrics builds one side's metric row. With a variant column the
// table is restricted to rows carrying the label; with none, an empty label
// yields a row assembled from extras alone and a non-empty plan candidate
// uses the whole table.
func (p *Pipeline) variantMetrics(t *table.Table, cp ComparePlan, label string, extras map[string]float64) (map[string]float64, error) {
	var rows []table.Row
	switch {
	case cp.VariantColumn != "":
		if !t.HasColumn(cp.VariantColumn) {
			return nil, errors.MissingColumn("compare", cp.VariantColumn)
		}
		for _, row := range t.Rows {
			if row[cp.VariantColumn].Render() == label {
				rows = append(rows, row)
			}
		}
	case label != "":
		rows = t.Rows
	}

	metrics := make(map[string]float64, len(cp.Specs))
	for _, spec := range cp.Specs {
		if col, ok := cp.Means[spec.Name]; ok && t.HasColumn(col) {
			if m, ok := meanOf(rows, col); ok {
				metrics[spec.Name] = m
				continue
			}
		}
		if t.HasColumn(spec.Name) {
			if m, ok := meanOf(rows, spec.Name); ok {
				metrics[spec.Name] = m
				continue
			}
		}
		if ratio, ok := findRatio(cp.Ratios, spec.Name); ok {
			num, numOK := meanOf(rows, ratio.Numerator)
			den, denOK := meanOf(rows, ratio.Denominator)
			if numOK && denOK && den != 0 {
				metrics[spec.Name] = num / den
				continue
			}
		}
		if v, ok := extras[spec.Name]; ok {
			metrics[spec.Name] = v
		}
	}
	return metrics, nil
}

func findRatio(ratios []RatioSpec, name string) (RatioSpec, bool) {
	for _, r := range ratios {
		if r.Name == name {
			return r, true
		}
	}
	return RatioSpec{}, false
}

// meanOf averages a column over a row subset, reporting false when no
// numeric values exist
func meanOf(rows []table.Row, col string) (float64, bool) {
	values := columnValues(rows, col)
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}
