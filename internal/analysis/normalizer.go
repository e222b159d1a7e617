package analysis

import (
	"github.com/montanaflynn/stats"

	"armbench/domain/table"
	"armbench/internal/errors"
)

// Normalizer rescales continuous columns to the [0,1] range with min-max
// normalization. It is independent of the Cleaner and never touches
// categorical columns.
type Normalizer struct{}

// NewNormalizer creates a normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize returns a new table with the target columns rescaled via
// (x - min) / (max - min). A nil column list means every continuous column.
// A constant column (max == min) maps entirely to 0 rather than staying
// unchanged or turning into NaN. Requested columns that are absent are
// skipped, mirroring the deriver's tolerance for heterogeneous tables.
func (n *Normalizer) Normalize(t *table.Table, columns []string) (*table.Table, error) {
	if t.RowCount() == 0 {
		return nil, errors.EmptyTable("normalize")
	}

	if columns == nil {
		for _, col := range t.ContinuousColumns() {
			columns = append(columns, col.Name)
		}
	}

	rows := copyRows(t.Rows)
	for _, name := range columns {
		col, ok := t.Column(name)
		if !ok || col.Role != table.RoleContinuous {
			continue
		}

		values := t.NumericValues(name)
		if len(values) == 0 {
			continue
		}

		min, err := stats.Min(values)
		if err != nil {
			return nil, errors.Wrapf(err, "normalize: column %q", name)
		}
		max, err := stats.Max(values)
		if err != nil {
			return nil, errors.Wrapf(err, "normalize: column %q", name)
		}

		span := max - min
		for _, row := range rows {
			v, ok := row[name]
			if !ok || !v.IsNumeric() {
				continue
			}
			if span > 0 {
				row[name] = table.Numeric((v.Float() - min) / span)
			} else {
				row[name] = table.Numeric(0)
			}
		}
	}

	return t.WithRows(rows), nil
}

// copyRows deep-copies row maps so rescaling never writes into the caller's
// table
func copyRows(rows []table.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		r := make(table.Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		out[i] = r
	}
	return out
}
