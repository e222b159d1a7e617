package analysis

import (
	"math"

	"armbench/domain/table"
	"armbench/internal/errors"
)

// BucketSpec discretizes a continuous column into labeled intervals so it
// can serve as a grouping dimension. Buckets are half-open [lo, hi) except
// the final bucket, which closes on its upper edge; together they cover the
// declared range with no gaps and no overlap.
type BucketSpec struct {
	Column string    `json:"column"` // continuous source column
	Target string    `json:"target"` // categorical column to create
	Edges  []float64 `json:"edges"`  // ascending, len(Labels)+1
	Labels []string  `json:"labels"`
}

// DefaultLoadBuckets partitions payload into quarters of the 3 kg maximum
func DefaultLoadBuckets() BucketSpec {
	return BucketSpec{
		Column: "load",
		Target: "load_category",
		Edges:  []float64{0, 0.75, 1.5, 2.25, 3.0},
		Labels: []string{"0-25%", "25-50%", "50-75%", "75-100%"},
	}
}

// Validate checks edge/label arity and edge monotonicity
func (s BucketSpec) Validate() error {
	if len(s.Edges) < 2 || len(s.Labels) != len(s.Edges)-1 {
		return errors.InvalidInput("bucket spec needs ascending edges and one label per interval")
	}
	for i := 1; i < len(s.Edges); i++ {
		if s.Edges[i] <= s.Edges[i-1] {
			return errors.InvalidInput("bucket edges must be strictly ascending")
		}
	}
	return nil
}

// assign maps a value to its bucket label. A value outside every interval is
// an InvalidPartition error; silent drops would corrupt aggregate counts.
func (s BucketSpec) assign(v float64) (string, error) {
	if math.IsNaN(v) {
		return "", errors.InvalidPartition(s.Column, v)
	}
	last := len(s.Edges) - 1
	for i := 0; i < last; i++ {
		if v >= s.Edges[i] && (v < s.Edges[i+1] || (i == last-1 && v == s.Edges[i+1])) {
			return s.Labels[i], nil
		}
	}
	return "", errors.InvalidPartition(s.Column, v)
}

// ApplyBucket returns a new table extended with the spec's categorical
// target column. Every row must land in exactly one bucket.
func ApplyBucket(t *table.Table, spec BucketSpec) (*table.Table, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if !t.HasColumn(spec.Column) {
		return nil, errors.MissingColumn("bucket", spec.Column)
	}

	values := make([]table.Value, len(t.Rows))
	for i, row := range t.Rows {
		v, ok := row[spec.Column]
		if !ok || !v.IsNumeric() {
			return nil, errors.InvalidPartition(spec.Column, math.NaN())
		}
		label, err := spec.assign(v.Float())
		if err != nil {
			return nil, err
		}
		values[i] = table.String(label)
	}

	return t.WithColumn(table.Column{Name: spec.Target, Role: table.RoleCategorical}, values), nil
}
