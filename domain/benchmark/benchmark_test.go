package benchmark

import (
	"testing"

	"armbench/domain/metric"
)

func TestConstants_Metrics(t *testing.T) {
	m := DefaultTraditional().Metrics()
	want := map[string]float64{
		"mean_stress":      150,
		"weight":           3.2,
		"power_efficiency": 0.65,
		"assembly_time":    4.5,
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("Metric %q = %g, want %g", k, m[k], v)
		}
	}
}

func TestComparisonSpecs_OrderAndPolarity(t *testing.T) {
	specs := ComparisonSpecs()
	wantOrder := []string{"mean_stress", "weight", "power_efficiency", "assembly_time"}
	if len(specs) != len(wantOrder) {
		t.Fatalf("Expected %d specs, got %d", len(wantOrder), len(specs))
	}
	for i, name := range wantOrder {
		if specs[i].Name != name {
			t.Errorf("Spec %d = %q, want %q", i, specs[i].Name, name)
		}
	}
	for _, s := range specs {
		want := metric.LowerIsBetter
		if s.Name == "power_efficiency" {
			want = metric.HigherIsBetter
		}
		if s.Polarity != want {
			t.Errorf("Spec %q polarity = %s, want %s", s.Name, s.Polarity, want)
		}
	}
}
