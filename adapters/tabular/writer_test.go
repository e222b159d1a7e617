package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"armbench/domain/table"
	"armbench/internal/analysis"
)

func TestWriter_TableRoundTrip(t *testing.T) {
	tbl := table.New([]table.Column{
		{Name: "design_type", Role: table.RoleCategorical},
		{Name: "load", Role: table.RoleContinuous},
	})
	tbl.Append(table.Row{"design_type": table.String("gearless"), "load": table.Numeric(1.5)})
	tbl.Append(table.Row{"design_type": table.String("traditional"), "load": table.Numeric(2.25)})

	path := filepath.Join(t.TempDir(), "out", "data.csv")
	if err := NewWriter().WriteTableCSV(path, tbl); err != nil {
		t.Fatalf("WriteTableCSV failed: %v", err)
	}

	back, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if back.RowCount() != 2 {
		t.Fatalf("Expected 2 rows back, got %d", back.RowCount())
	}
	if v := back.Rows[1]["load"]; v.Float() != 2.25 {
		t.Errorf("Expected load 2.25 back, got %#v", v)
	}
	if v := back.Rows[0]["design_type"].Render(); v != "gearless" {
		t.Errorf("Expected design label back, got %q", v)
	}
}

func TestWriter_GroupsCSVLayout(t *testing.T) {
	group := analysis.GroupResult{
		Name:    "payload",
		GroupBy: []string{"design_type", "load_category"},
		Rows: []analysis.GroupRow{
			{
				Key:   map[string]string{"design_type": "gearless", "load_category": "0-25%"},
				Stats: map[string]float64{"power_consumption_mean": 20.5, "power_consumption_count": 12},
				Count: 12,
			},
			{
				Key:   map[string]string{"design_type": "traditional", "load_category": "0-25%"},
				Stats: map[string]float64{"power_consumption_mean": 27.25},
				Count: 9,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "payload.csv")
	if err := NewWriter().WriteGroupsCSV(path, group); err != nil {
		t.Fatalf("WriteGroupsCSV failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	wantHeader := []string{"design_type", "load_category", "count", "power_consumption_count", "power_consumption_mean"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Fatalf("Header = %v, want %v", records[0], wantHeader)
	}
	if records[1][0] != "gearless" || records[1][2] != "12" {
		t.Errorf("First group row = %v", records[1])
	}
	if records[2][3] != "" {
		t.Errorf("Stat absent in a row must render empty, got %q", records[2][3])
	}
	if records[2][4] != "27.2500" {
		t.Errorf("Expected 4-decimal stat, got %q", records[2][4])
	}
}

func TestWriter_GroupsXLSXRoundTrip(t *testing.T) {
	groups := []analysis.GroupResult{
		{
			Name:    "joint",
			GroupBy: []string{"joint_type"},
			Rows: []analysis.GroupRow{
				{Key: map[string]string{"joint_type": "base"}, Stats: map[string]float64{"load_mean": 1.5}, Count: 3},
			},
		},
		{
			Name:    "stress_factors",
			GroupBy: nil,
			Rows: []analysis.GroupRow{
				{Key: map[string]string{}, Stats: map[string]float64{"stress_mean": 120.5}, Count: 10},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "groups.xlsx")
	if err := NewWriter().WriteGroupsXLSX(path, groups); err != nil {
		t.Fatalf("WriteGroupsXLSX failed: %v", err)
	}

	back, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("Reading workbook back failed: %v", err)
	}
	// the reader opens the first sheet, which carries the joint breakdown
	if !back.HasColumns("joint_type", "count", "load_mean") {
		t.Fatalf("Unexpected columns %v", back.ColumnNames())
	}
	if back.RowCount() != 1 {
		t.Fatalf("Expected 1 group row, got %d", back.RowCount())
	}
	if v := back.Rows[0]["load_mean"]; !v.IsNumeric() || v.Float() != 1.5 {
		t.Errorf("Expected load_mean 1.5, got %#v", v)
	}
}
