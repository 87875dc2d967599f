package core

import (
	"math"
	"testing"
)

func TestDBConversions(t *testing.T) {
	tests := []struct {
		db     float64
		linear float64
	}{
		{0, 1},
		{20, 10},
		{-40, 0.01},
		{-6.020599913279624, 0.5},
	}

	for _, tt := range tests {
		if got := DBToLinear(tt.db); math.Abs(got-tt.linear) > 1e-12 {
			t.Fatalf("DBToLinear(%v) = %v, want %v", tt.db, got, tt.linear)
		}

		if got := LinearToDB(tt.linear); math.Abs(got-tt.db) > 1e-12 {
			t.Fatalf("LinearToDB(%v) = %v, want %v", tt.linear, got, tt.db)
		}
	}
}

func TestLinearToDB_EdgeCases(t *testing.T) {
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %v, want -Inf", got)
	}

	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %v, want NaN", got)
	}
}

func TestDBPowerToLinear(t *testing.T) {
	if got := DBPowerToLinear(10); math.Abs(got-10) > 1e-12 {
		t.Fatalf("DBPowerToLinear(10) = %v, want 10", got)
	}

	if got := DBPowerToLinear(-3); math.Abs(got-0.5011872336272722) > 1e-12 {
		t.Fatalf("DBPowerToLinear(-3) = %v", got)
	}
}

func TestRippleFactor(t *testing.T) {
	// 3.0103 dB is the half-power point: eps = 1.
	if got := RippleFactor(10 * math.Log10(2)); math.Abs(got-1) > 1e-12 {
		t.Fatalf("RippleFactor(3.01) = %v, want 1", got)
	}

	if got := RippleFactor(1); math.Abs(got-0.5088471399095875) > 1e-12 {
		t.Fatalf("RippleFactor(1) = %v", got)
	}

	if got := RippleFactor(0); got != 0 {
		t.Fatalf("RippleFactor(0) = %v, want 0", got)
	}
}
