package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"armbench/domain/table"
	"armbench/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReader_ReadsTypedCSV(t *testing.T) {
	path := writeTempCSV(t,
		"test_id,design_type,load,power_consumption\n"+
			"T0001,gearless,1.5,24.3\n"+
			"T0002,traditional,2.0,\n"+
			"T0003,gearless,bad,31.0\n")

	tbl, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if tbl.RowCount() != 3 {
		t.Fatalf("Expected 3 rows, got %d", tbl.RowCount())
	}

	cases := map[string]table.Role{
		"test_id":           table.RoleIdentifier,
		"design_type":       table.RoleCategorical,
		"load":              table.RoleContinuous,
		"power_consumption": table.RoleContinuous,
	}
	for name, want := range cases {
		col, ok := tbl.Column(name)
		if !ok {
			t.Fatalf("Missing column %q", name)
		}
		if col.Role != want {
			t.Errorf("Column %q: expected role %s, got %s", name, want, col.Role)
		}
	}

	if v := tbl.Rows[0]["load"]; !v.IsNumeric() || v.Float() != 1.5 {
		t.Errorf("Expected load 1.5, got %#v", v)
	}
	if !tbl.Rows[1]["power_consumption"].IsMissing() {
		t.Error("Empty cell should read as missing")
	}
	if !tbl.Rows[2]["load"].IsMissing() {
		t.Error("Unparseable numeric cell should read as missing, not zero")
	}
	if v := tbl.Rows[1]["design_type"].Render(); v != "traditional" {
		t.Errorf("Expected design label, got %q", v)
	}
}

func TestReader_InfersCategoricalFromText(t *testing.T) {
	path := writeTempCSV(t,
		"material,thickness\n"+
			"aluminium,2.0\n"+
			"carbon,1.5\n"+
			"aluminium,2.2\n")

	tbl, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if col, _ := tbl.Column("material"); col.Role != table.RoleCategorical {
		t.Errorf("Text column should infer categorical, got %s", col.Role)
	}
	if col, _ := tbl.Column("thickness"); col.Role != table.RoleContinuous {
		t.Errorf("Numeric column should infer continuous, got %s", col.Role)
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.csv")).ReadTable()
	if errors.GetCode(err) != errors.CodeIOError {
		t.Fatalf("Expected code %s, got %v", errors.CodeIOError, err)
	}
}

func TestReader_HeaderOnlyFile(t *testing.T) {
	path := writeTempCSV(t, "load,stress\n")
	_, err := NewReader(path).ReadTable()
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Fatalf("Expected code %s, got %v", errors.CodeInvalidInput, err)
	}
}

func TestParseNumeric(t *testing.T) {
	if v, ok := parseNumeric("1,234.5"); !ok || v != 1234.5 {
		t.Errorf("Expected 1234.5, got %g (%v)", v, ok)
	}
	if _, ok := parseNumeric("NaN"); ok {
		t.Error("NaN must not parse as a valid measurement")
	}
	if _, ok := parseNumeric("gearless"); ok {
		t.Error("Text must not parse")
	}
}
