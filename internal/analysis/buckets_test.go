package analysis

import (
	"testing"

	"armbench/domain/table"
	"armbench/internal/errors"
)

func TestBucketSpec_HalfOpenIntervals(t *testing.T) {
	spec := DefaultLoadBuckets()

	cases := []struct {
		v    float64
		want string
	}{
		{0, "0-25%"},
		{0.74, "0-25%"},
		{0.75, "25-50%"}, // lower edges are inclusive, upper exclusive
		{1.5, "50-75%"},
		{2.25, "75-100%"},
		{3.0, "75-100%"}, // the final bucket closes on its upper edge
	}
	for _, c := range cases {
		got, err := spec.assign(c.v)
		if err != nil {
			t.Errorf("assign(%g) failed: %v", c.v, err)
			continue
		}
		if got != c.want {
			t.Errorf("assign(%g) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestBucketSpec_OutOfRangeIsInvalidPartition(t *testing.T) {
	spec := DefaultLoadBuckets()
	for _, v := range []float64{-0.1, 3.01, 100} {
		_, err := spec.assign(v)
		if errors.GetCode(err) != errors.CodeInvalidPartition {
			t.Errorf("assign(%g): expected code %s, got %v", v, errors.CodeInvalidPartition, err)
		}
	}
}

func TestBucketSpec_Validate(t *testing.T) {
	bad := []BucketSpec{
		{Column: "load", Target: "c", Edges: []float64{0, 1}, Labels: []string{"a", "b"}},
		{Column: "load", Target: "c", Edges: []float64{0, 1, 1}, Labels: []string{"a", "b"}},
		{Column: "load", Target: "c", Edges: []float64{2, 1}, Labels: []string{"a"}},
	}
	for i, spec := range bad {
		if err := spec.Validate(); err == nil {
			t.Errorf("Case %d: expected validation error", i)
		}
	}
	if err := DefaultLoadBuckets().Validate(); err != nil {
		t.Errorf("Default spec should validate, got %v", err)
	}
}

func TestApplyBucket_AddsCategoricalColumn(t *testing.T) {
	tbl := numericColumn("load", 0.1, 1.6, 3.0)

	out, err := ApplyBucket(tbl, DefaultLoadBuckets())
	if err != nil {
		t.Fatalf("ApplyBucket failed: %v", err)
	}
	col, ok := out.Column("load_category")
	if !ok || col.Role != table.RoleCategorical {
		t.Fatalf("Expected categorical load_category column, got %+v", col)
	}

	want := []string{"0-25%", "50-75%", "75-100%"}
	for i, w := range want {
		if got := out.Rows[i]["load_category"].Render(); got != w {
			t.Errorf("Row %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestApplyBucket_MissingSourceColumn(t *testing.T) {
	_, err := ApplyBucket(numericColumn("stress", 1), DefaultLoadBuckets())
	if errors.GetCode(err) != errors.CodeMissingColumn {
		t.Fatalf("Expected code %s, got %v", errors.CodeMissingColumn, err)
	}
}
