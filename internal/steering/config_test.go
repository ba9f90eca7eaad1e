package steering

import "testing"

func TestNormalizedFillsUnsetFields(t *testing.T) {
	def := DefaultConfig()
	got := Config{TangentOffset: -1, RadialCorrection: -1}.Normalized()
	if got != def {
		t.Fatalf("zero config normalized to %+v, want defaults %+v", got, def)
	}
}

func TestNormalizedKeepsZeroOrbitTuning(t *testing.T) {
	got := Config{}.Normalized()
	if got.TangentOffset != 0 || got.RadialCorrection != 0 {
		t.Fatalf("explicit zero orbit tuning replaced: tangent=%v radial=%v", got.TangentOffset, got.RadialCorrection)
	}
	// The remaining fields still default.
	if got.PrimaryWeight != DefaultConfig().PrimaryWeight || got.RepickDelay != DefaultConfig().RepickDelay {
		t.Fatalf("defaults not applied: %+v", got)
	}
}
