// Package table holds the in-memory record table shared by every analysis
// stage. A table is an ordered sequence of rows over a declared column set;
// stages never mutate their input, they return a fresh table.
package table

// Role declares the semantic type of a column
type Role string

const (
	RoleContinuous  Role = "continuous"
	RoleCategorical Role = "categorical"
	RoleIdentifier  Role = "identifier"
)

// Column is a named field with a declared semantic role
type Column struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Row maps column names to typed values
type Row map[string]Value

// Table is an ordered set of rows sharing one column set
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New creates an empty table with the given column declarations
func New(columns []Column) *Table {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds a row. Missing cells are filled with missing values so the
// shared-column-set invariant holds.
func (t *Table) Append(row Row) {
	r := make(Row, len(t.Columns))
	for _, col := range t.Columns {
		if v, ok := row[col.Name]; ok {
			r[col.Name] = v
		} else {
			r[col.Name] = Missing()
		}
	}
	t.Rows = append(t.Rows, r)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column looks up a column declaration by name
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether the column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// HasColumns reports whether every named column exists
func (t *Table) HasColumns(names ...string) bool {
	for _, name := range names {
		if !t.HasColumn(name) {
			return false
		}
	}
	return true
}

// ColumnNames returns the declared column names in order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// ContinuousColumns returns the continuous numeric columns in declared order
func (t *Table) ContinuousColumns() []Column {
	var cols []Column
	for _, col := range t.Columns {
		if col.Role == RoleContinuous {
			cols = append(cols, col)
		}
	}
	return cols
}

// NumericValues extracts the numeric values of a column, skipping cells that
// are missing or non-numeric
func (t *Table) NumericValues(name string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := row[name]; ok && v.IsNumeric() {
			values = append(values, v.Float())
		}
	}
	return values
}

// WithRows returns a new table sharing the column declarations but holding
// the given rows. Rows are referenced, not copied; callers treat rows as
// immutable once placed in a table.
func (t *Table) WithRows(rows []Row) *Table {
	nt := New(t.Columns)
	nt.Rows = rows
	return nt
}

// WithColumn returns a new table extended by one column whose values align
// with the existing rows. values must have one entry per row.
func (t *Table) WithColumn(col Column, values []Value) *Table {
	cols := make([]Column, 0, len(t.Columns)+1)
	cols = append(cols, t.Columns...)
	cols = append(cols, col)
	nt := New(cols)
	nt.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		r := make(Row, len(nt.Columns))
		for k, v := range row {
			r[k] = v
		}
		r[col.Name] = values[i]
		nt.Rows[i] = r
	}
	return nt
}

// Renamed returns a new table with column names rewritten by the mapper.
// Row keys follow the columns.
func (t *Table) Renamed(mapper func(string) string) *Table {
	cols := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		cols[i] = Column{Name: mapper(col.Name), Role: col.Role}
	}
	nt := New(cols)
	nt.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		r := make(Row, len(cols))
		for j, col := range t.Columns {
			r[cols[j].Name] = row[col.Name]
		}
		nt.Rows[i] = r
	}
	return nt
}

// WithRole returns a new table where the named column carries the given role.
// Unknown names are ignored.
func (t *Table) WithRole(name string, role Role) *Table {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	for i := range cols {
		if cols[i].Name == name {
			cols[i].Role = role
		}
	}
	nt := New(cols)
	nt.Rows = t.Rows
	return nt
}
