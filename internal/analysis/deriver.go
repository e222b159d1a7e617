package analysis

import (
	"armbench/domain/metric"
	"armbench/domain/table"
	"armbench/internal"
	"armbench/internal/errors"
)

// Deriver appends derived per-row metrics (efficiency, ratios, safety
// factors) computed from existing columns with guarded division.
type Deriver struct {
	logger *internal.Logger
}

// NewDeriver creates a deriver
func NewDeriver() *Deriver {
	return &Deriver{logger: internal.DefaultLogger}
}

// Derive returns a new table extended with one continuous column per
// definition whose required input columns are all present. Definitions with
// absent inputs are skipped silently, so heterogeneous tables pass through
// the same deriver.
//
// The guard fires when the definition's guard column is not positive or the
// denominator is zero; the result is then either 0 or a missing cell,
// depending on the definition's policy.
func (d *Deriver) Derive(t *table.Table, defs []metric.Definition) (*table.Table, error) {
	if t.RowCount() == 0 {
		return nil, errors.EmptyTable("derive")
	}

	out := t
	for _, def := range defs {
		if !out.HasColumns(def.Inputs()...) {
			d.logger.Debug("derive: skipping %q, inputs %v not all present", def.Name, def.Inputs())
			continue
		}

		values := make([]table.Value, len(out.Rows))
		for i, row := range out.Rows {
			values[i] = deriveCell(row, def)
		}
		out = out.WithColumn(table.Column{Name: def.Name, Role: table.RoleContinuous}, values)
		d.logger.Debug("derive: added %q", def.Name)
	}

	return out, nil
}

// deriveCell computes one guarded ratio cell
func deriveCell(row table.Row, def metric.Definition) table.Value {
	num, numOK := numericCell(row, def.Numerator)
	den, denOK := numericCell(row, def.Denominator)
	guard, guardOK := numericCell(row, def.Guard)

	ok := numOK && denOK && guardOK && guard > 0 && den != 0
	if !ok {
		if def.OnGuardFail == metric.GuardToZero {
			return table.Numeric(0)
		}
		return table.Missing()
	}
	return table.Numeric(num / den)
}

func numericCell(row table.Row, column string) (float64, bool) {
	v, ok := row[column]
	if !ok || !v.IsNumeric() {
		return 0, false
	}
	return v.Float(), true
}
