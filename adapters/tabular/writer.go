package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"armbench/domain/table"
	"armbench/internal"
	"armbench/internal/analysis"
	"armbench/internal/errors"
)

// Writer persists cleaned tables and aggregate results to disk
type Writer struct {
	logger *internal.Logger
}

// NewWriter creates a writer
func NewWriter() *Writer {
	return &Writer{logger: internal.DefaultLogger}
}

// WriteTableCSV exports a record table to CSV, rendering cells the same way
// they display: numerics compactly, missing cells as empty strings.
func (w *Writer) WriteTableCSV(path string, t *table.Table) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.IOError("creating CSV file "+path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	defer cw.Flush()

	header := t.ColumnNames()
	if err := cw.Write(header); err != nil {
		return errors.IOError("writing CSV header", err)
	}
	record := make([]string, len(header))
	for _, row := range t.Rows {
		for j, name := range header {
			record[j] = row[name].Render()
		}
		if err := cw.Write(record); err != nil {
			return errors.IOError("writing CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.IOError("flushing CSV file", err)
	}

	w.logger.Info("tabular: wrote %d rows to %s", t.RowCount(), path)
	return nil
}

// WriteGroupsCSV exports one group result to CSV: the group-key columns in
// GroupBy order, the member count, then the statistic columns sorted by name.
func (w *Writer) WriteGroupsCSV(path string, group analysis.GroupResult) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.IOError("creating CSV file "+path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	header, records := groupRecords(group)
	if err := cw.Write(header); err != nil {
		return errors.IOError("writing CSV header", err)
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return errors.IOError("writing CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.IOError("flushing CSV file", err)
	}

	w.logger.Info("tabular: wrote %d group rows to %s", len(group.Rows), path)
	return nil
}

// WriteGroupsXLSX exports a set of group results to one workbook, one sheet
// per group result named after it.
func (w *Writer) WriteGroupsXLSX(path string, groups []analysis.GroupResult) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, group := range groups {
		sheet := group.Name
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return errors.IOError("creating sheet "+sheet, err)
			}
		}

		header, records := groupRecords(group)
		if err := writeSheetRow(f, sheet, 1, header); err != nil {
			return err
		}
		for r, record := range records {
			if err := writeSheetRow(f, sheet, r+2, record); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError("saving workbook "+path, err)
	}
	w.logger.Info("tabular: wrote %d sheets to %s", len(groups), path)
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, record []string) error {
	for c, value := range record {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return errors.IOError("computing cell coordinates", err)
		}
		if v, err := strconv.ParseFloat(value, 64); err == nil && row > 1 {
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.IOError("writing cell "+cell, err)
			}
			continue
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return errors.IOError("writing cell "+cell, err)
		}
	}
	return nil
}

// groupRecords flattens group rows into a header plus string records with a
// deterministic column order: keys, count, then stats sorted by name.
func groupRecords(group analysis.GroupResult) ([]string, [][]string) {
	statCols := statColumns(group.Rows)

	header := make([]string, 0, len(group.GroupBy)+1+len(statCols))
	header = append(header, group.GroupBy...)
	header = append(header, "count")
	header = append(header, statCols...)

	records := make([][]string, len(group.Rows))
	for i, row := range group.Rows {
		record := make([]string, 0, len(header))
		for _, k := range group.GroupBy {
			record = append(record, row.Key[k])
		}
		record = append(record, strconv.Itoa(row.Count))
		for _, s := range statCols {
			if v, ok := row.Stats[s]; ok {
				record = append(record, strconv.FormatFloat(v, 'f', 4, 64))
			} else {
				record = append(record, "")
			}
		}
		records[i] = record
	}
	return header, records
}

// statColumns collects the union of statistic names across rows, sorted
func statColumns(rows []analysis.GroupRow) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for s := range row.Stats {
			seen[s] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for s := range seen {
		cols = append(cols, s)
	}
	sort.Strings(cols)
	return cols
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOError("creating output directory "+dir, err)
	}
	return nil
}
