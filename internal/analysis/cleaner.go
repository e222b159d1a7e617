// Package analysis implements the batch pipeline that turns raw arm test
// records into grouped engineering metrics and a cross-variant comparison:
// clean, derive, bucket, aggregate, compare. Every stage takes a table and
// returns a new one; inputs are never mutated.
package analysis

import (
	"strings"

	"github.com/montanaflynn/stats"

	"armbench/domain/table"
	"armbench/internal"
	"armbench/internal/errors"
)

// declaredCategoricals are the columns the cleaner casts to the categorical
// role when present. Unknown labels inside them are retained, not rejected.
var declaredCategoricals = []string{"design_type", "joint_id", "joint_type", "load_category"}

// Cleaner removes incomplete rows and statistical outliers and canonicalizes
// the schema.
//
// Outlier rejection is sequential and cumulative: continuous columns are
// processed in declared order, and each column's mean and sample standard
// deviation are computed over the rows that survived the previous columns.
// A row rejected early is therefore invisible to later bounds. This matches
// the original analysis scripts and is intentional.
type Cleaner struct {
	SigmaFactor float64
	logger      *internal.Logger
}

// NewCleaner creates a cleaner with the standard 3-sigma rejection bound
func NewCleaner() *Cleaner {
	return &Cleaner{SigmaFactor: 3, logger: internal.DefaultLogger}
}

// Clean returns a new table with incomplete rows dropped, outliers rejected
// per continuous column, column names canonicalized to lowercase_underscore
// and declared categorical columns cast to the categorical role.
func (c *Cleaner) Clean(t *table.Table) (*table.Table, error) {
	if t.RowCount() == 0 {
		return nil, errors.EmptyTable("clean")
	}

	cleaned := dropIncompleteRows(t)
	c.logger.Debug("clean: dropped %d incomplete rows", t.RowCount()-cleaned.RowCount())

	for _, col := range cleaned.ContinuousColumns() {
		var err error
		cleaned, err = c.rejectOutliers(cleaned, col.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "clean: outlier pass on column %q", col.Name)
		}
	}

	cleaned = cleaned.Renamed(CanonicalName)
	for _, name := range declaredCategoricals {
		if cleaned.HasColumn(name) {
			cleaned = cleaned.WithRole(name, table.RoleCategorical)
		}
	}

	c.logger.Info("clean: %d of %d rows retained", cleaned.RowCount(), t.RowCount())
	return cleaned, nil
}

// rejectOutliers keeps the rows whose value in the column lies inside the
// inclusive interval [mean-k*sigma, mean+k*sigma]. A zero-variance column
// collapses the bounds to [mean, mean], so only rows equal to the mean
// survive. Columns with fewer than two values skip the pass, since a sample
// deviation is undefined there.
func (c *Cleaner) rejectOutliers(t *table.Table, column string) (*table.Table, error) {
	values := t.NumericValues(column)
	if len(values) < 2 {
		return t, nil
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return nil, errors.Wrap(err, "mean")
	}
	sigma, err := stats.StandardDeviationSample(values)
	if err != nil {
		return nil, errors.Wrap(err, "standard deviation")
	}

	lower := mean - c.SigmaFactor*sigma
	upper := mean + c.SigmaFactor*sigma

	kept := make([]table.Row, 0, t.RowCount())
	for _, row := range t.Rows {
		v, ok := row[column]
		if ok && v.IsNumeric() && withinBounds(v.Float(), lower, upper) {
			kept = append(kept, row)
		}
	}

	if removed := t.RowCount() - len(kept); removed > 0 {
		c.logger.Debug("clean: column %q removed %d outliers outside [%g, %g]", column, removed, lower, upper)
	}
	return t.WithRows(kept), nil
}

// withinBounds checks the inclusive sigma interval. Values exactly on either
// bound are retained.
func withinBounds(v, lower, upper float64) bool {
	return v >= lower && v <= upper
}

// dropIncompleteRows removes every row with a missing value in any column
func dropIncompleteRows(t *table.Table) *table.Table {
	kept := make([]table.Row, 0, t.RowCount())
	for _, row := range t.Rows {
		if rowComplete(t, row) {
			kept = append(kept, row)
		}
	}
	return t.WithRows(kept)
}

func rowComplete(t *table.Table, row table.Row) bool {
	for _, col := range t.Columns {
		v, ok := row[col.Name]
		if !ok || v.IsMissing() {
			return false
		}
	}
	return true
}

// CanonicalName rewrites a column name to lowercase with underscores
func CanonicalName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
