package analysis

import (
	"context"
	"math"
	"reflect"
	"testing"

	"armbench/domain/table"
	"armbench/internal/errors"
)

func designTable() *table.Table {
	t := table.New([]table.Column{
		{Name: "design_type", Role: table.RoleCategorical},
		{Name: "power_consumption", Role: table.RoleContinuous},
	})
	rows := []struct {
		design string
		power  float64
	}{
		{"gearless", 18},
		{"traditional", 25},
		{"gearless", 22},
		{"traditional", 31},
		{"gearless", 20},
	}
	for _, r := range rows {
		t.Append(table.Row{
			"design_type":       table.String(r.design),
			"power_consumption": table.Numeric(r.power),
		})
	}
	return t
}

func TestAggregator_GroupsInFirstSeenOrder(t *testing.T) {
	req := Request{
		GroupBy: []string{"design_type"},
		Reduce: map[string][]Reducer{
			"power_consumption": {ReduceMean, ReduceMax, ReduceMin, ReduceStd, ReduceCount},
		},
	}

	rows, err := NewAggregator().Aggregate(designTable(), req)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected one row per present design, got %d", len(rows))
	}
	if rows[0].Key["design_type"] != "gearless" || rows[1].Key["design_type"] != "traditional" {
		t.Errorf("Expected first-seen group order, got %v then %v", rows[0].Key, rows[1].Key)
	}

	gearless := rows[0]
	if gearless.Count != 3 {
		t.Errorf("Expected 3 gearless rows, got %d", gearless.Count)
	}
	if m := gearless.Stats["power_consumption_mean"]; math.Abs(m-20) > 1e-12 {
		t.Errorf("Expected mean 20, got %g", m)
	}
	if v := gearless.Stats["power_consumption_max"]; v != 22 {
		t.Errorf("Expected max 22, got %g", v)
	}
	if v := gearless.Stats["power_consumption_min"]; v != 18 {
		t.Errorf("Expected min 18, got %g", v)
	}
	if v := gearless.Stats["power_consumption_std"]; math.Abs(v-2) > 1e-12 {
		t.Errorf("Expected sample std 2, got %g", v)
	}
	if v := gearless.Stats["power_consumption_count"]; v != 3 {
		t.Errorf("Expected count stat 3, got %g", v)
	}

	if rows[0].Count+rows[1].Count != 5 {
		t.Errorf("Group counts must partition the table, got %d", rows[0].Count+rows[1].Count)
	}
}

func TestAggregator_WholeTableWithoutGroupBy(t *testing.T) {
	req := Request{Reduce: map[string][]Reducer{"power_consumption": {ReduceMean}}}

	rows, err := NewAggregator().Aggregate(designTable(), req)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected a single whole-table group, got %d", len(rows))
	}
	if rows[0].Count != 5 {
		t.Errorf("Expected all 5 rows in the group, got %d", rows[0].Count)
	}
	if m := rows[0].Stats["power_consumption_mean"]; math.Abs(m-23.2) > 1e-12 {
		t.Errorf("Expected mean 23.2, got %g", m)
	}
}

func TestAggregator_MissingColumnsFailLoudly(t *testing.T) {
	tbl := designTable()

	_, err := NewAggregator().Aggregate(tbl, Request{
		GroupBy: []string{"joint_type"},
		Reduce:  map[string][]Reducer{"power_consumption": {ReduceMean}},
	})
	if errors.GetCode(err) != errors.CodeMissingColumn {
		t.Errorf("Expected code %s for missing group column, got %v", errors.CodeMissingColumn, err)
	}

	_, err = NewAggregator().Aggregate(tbl, Request{
		Reduce: map[string][]Reducer{"torque": {ReduceMean}},
	})
	if errors.GetCode(err) != errors.CodeMissingColumn {
		t.Errorf("Expected code %s for missing reduce column, got %v", errors.CodeMissingColumn, err)
	}
}

func TestAggregator_EmptyTableFailsLoudly(t *testing.T) {
	tbl := table.New([]table.Column{{Name: "x", Role: table.RoleContinuous}})
	_, err := NewAggregator().Aggregate(tbl, Request{Reduce: map[string][]Reducer{"x": {ReduceMean}}})
	if errors.GetCode(err) != errors.CodeEmptyTable {
		t.Fatalf("Expected code %s, got %v", errors.CodeEmptyTable, err)
	}
}

func TestAggregator_ConcurrentMatchesSerial(t *testing.T) {
	req := Request{
		GroupBy: []string{"design_type"},
		Reduce: map[string][]Reducer{
			"power_consumption": {ReduceMean, ReduceMax, ReduceMin, ReduceStd},
		},
	}
	tbl := designTable()

	serial, err := NewAggregator().Aggregate(tbl, req)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	concurrent, err := NewAggregator().AggregateConcurrent(context.Background(), tbl, req, 4)
	if err != nil {
		t.Fatalf("AggregateConcurrent failed: %v", err)
	}
	if !reflect.DeepEqual(serial, concurrent) {
		t.Errorf("Concurrent result diverged:\nserial:     %+v\nconcurrent: %+v", serial, concurrent)
	}
}

func TestGroupRow_KeyLabel(t *testing.T) {
	row := GroupRow{Key: map[string]string{"design_type": "gearless", "load_category": "0-25%"}}
	if got := row.KeyLabel([]string{"design_type", "load_category"}); got != "gearless/0-25%" {
		t.Errorf("KeyLabel = %q", got)
	}
}
