package metric

import (
	"reflect"
	"testing"
)

func TestDefinition_InputsDeduplicateGuard(t *testing.T) {
	// the guard column usually is the numerator or denominator
	if got := Efficiency.Inputs(); !reflect.DeepEqual(got, []string{"load", "power_consumption"}) {
		t.Errorf("Efficiency inputs = %v", got)
	}

	independent := Definition{Numerator: "a", Denominator: "b", Guard: "c"}
	if got := independent.Inputs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Independent guard inputs = %v", got)
	}
}

func TestStandardDefinitions_Policies(t *testing.T) {
	defs := StandardDefinitions()
	if len(defs) != 3 {
		t.Fatalf("Expected 3 standard metrics, got %d", len(defs))
	}

	byName := map[string]Definition{}
	for _, d := range defs {
		byName[d.Name] = d
	}
	if byName["efficiency"].OnGuardFail != GuardToZero {
		t.Error("Efficiency should degrade to zero on guard failure")
	}
	if byName["safety_factor"].OnGuardFail != GuardToUndefined {
		t.Error("Safety factor should stay undefined on guard failure")
	}
	if byName["stress_to_weight_ratio"].Polarity != LowerIsBetter {
		t.Error("Stress to weight should improve downward")
	}
}
