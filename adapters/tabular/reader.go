// Package tabular is the external loader/persister collaborator: it reads
// CSV and XLSX test datasets into record tables with deterministic value
// coercion, and exports aggregate tables back out. File handling stays out
// of the analysis core.
package tabular

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"armbench/domain/table"
	"armbench/internal"
	"armbench/internal/errors"
)

// numericThreshold is the share of non-empty cells that must parse as
// numbers before a column is treated as continuous.
const numericThreshold = 0.8

// knownCategoricals are column names always read as categorical even when
// their labels happen to look numeric.
var knownCategoricals = map[string]bool{
	"design_type":   true,
	"joint_type":    true,
	"joint_id":      true,
	"load_category": true,
}

// Reader loads a CSV or XLSX file into a record table
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewReader creates a reader; the file type follows the extension
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// ReadTable reads the file into a typed record table. The first row is the
// header; column roles are inferred from the declared categorical names and
// the share of numeric cells.
func (r *Reader) ReadTable() (*table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.IOError("data file not found: "+r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSV()
	default:
		rows, err = r.readXLSX()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.InvalidInput("data file needs a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	t := table.New(inferColumns(headers, rows[1:]))
	for _, raw := range rows[1:] {
		row := make(table.Row, len(headers))
		for j, col := range t.Columns {
			cell := ""
			if j < len(raw) {
				cell = strings.TrimSpace(raw[j])
			}
			row[col.Name] = coerceCell(cell, col.Role)
		}
		t.Append(row)
	}

	r.logger.Info("tabular: read %d rows, %d columns from %s", t.RowCount(), len(t.Columns), r.filePath)
	return t, nil
}

func (r *Reader) readCSV() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("opening CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("reading CSV file", err)
	}
	return rows, nil
}

func (r *Reader) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("opening XLSX file", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IOError("reading sheet "+sheet, err)
	}
	return rows, nil
}

// inferColumns assigns a role per header: declared categoricals first,
// identifier-looking names next, then the numeric-cell ratio decides between
// continuous and categorical.
func inferColumns(headers []string, raw [][]string) []table.Column {
	cols := make([]table.Column, len(headers))
	for j, name := range headers {
		canonical := strings.ReplaceAll(strings.ToLower(name), " ", "_")
		switch {
		case knownCategoricals[canonical]:
			cols[j] = table.Column{Name: name, Role: table.RoleCategorical}
		case canonical == "test_id" || canonical == "record_id":
			cols[j] = table.Column{Name: name, Role: table.RoleIdentifier}
		case numericRatio(raw, j) >= numericThreshold:
			cols[j] = table.Column{Name: name, Role: table.RoleContinuous}
		default:
			cols[j] = table.Column{Name: name, Role: table.RoleCategorical}
		}
	}
	return cols
}

// numericRatio is the share of non-empty cells in a column that parse as
// finite numbers
func numericRatio(raw [][]string, col int) float64 {
	nonEmpty, numeric := 0, 0
	for _, row := range raw {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, ok := parseNumeric(cell); ok {
			numeric++
		}
	}
	if nonEmpty == 0 {
		return 0
	}
	return float64(numeric) / float64(nonEmpty)
}

// coerceCell converts one raw cell into a typed value for its column role.
// Empty cells are missing; continuous cells that fail to parse are missing
// rather than silently zero.
func coerceCell(cell string, role table.Role) table.Value {
	if cell == "" {
		return table.Missing()
	}
	if role == table.RoleContinuous {
		if v, ok := parseNumeric(cell); ok {
			return table.Numeric(v)
		}
		return table.Missing()
	}
	return table.String(cell)
}

// parseNumeric parses a finite float, tolerating thousands separators
func parseNumeric(cell string) (float64, bool) {
	clean := strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
