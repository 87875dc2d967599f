package biquad

import "testing"

// twoSectionCoeffs returns two biquad sections for a 4th-order-like cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	coeffs := twoSectionCoeffs()

	c := NewChain(coeffs)
	if len(c.sections) != 2 {
		t.Fatalf("sections: got %d, want 2", len(c.sections))
	}

	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}

	if c.gain != 1 {
		t.Fatalf("default gain: got %v, want 1", c.gain)
	}
}

func TestNewChain_WithGain(t *testing.T) {
	coeffs := twoSectionCoeffs()

	c := NewChain(coeffs, WithGain(0.5))
	if c.gain != 0.5 {
		t.Fatalf("gain: got %v, want 0.5", c.gain)
	}
}

func TestChain_ProcessSample_MatchesSeriesSections(t *testing.T) {
	tests := []struct {
		name     string
		sections []Coefficients
		gain     float64
	}{
		{"single", twoSectionCoeffs()[:1], 1},
		{"two", twoSectionCoeffs(), 1},
		{"gain", twoSectionCoeffs(), 2},
		{"odd order", []Coefficients{
			{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
			{B0: 0.3, B1: 0.3, A1: -0.4},
		}, 0.7},
		{"three", append(twoSectionCoeffs(), Coefficients{B0: 0.3, B1: 0.3, B2: 0.3, A1: -0.1, A2: 0.02}), 1},
	}

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, 0, 0}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(tt.sections, WithGain(tt.gain))

			refs := make([]*Section, len(tt.sections))
			for i, c := range tt.sections {
				refs[i] = NewSection(c)
			}

			for n, x := range input {
				want := x * tt.gain
				for _, s := range refs {
					want = s.ProcessSample(want)
				}

				if got := chain.ProcessSample(x); !almostEqual(got, want, eps) {
					t.Fatalf("sample %d: chain=%.15f, series=%.15f", n, got, want)
				}
			}
		})
	}
}

func TestChain_Reset(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	chain.ProcessSample(1)
	chain.ProcessSample(0.5)

	chain.Reset()

	for i := range chain.sections {
		st := chain.sections[i].State()
		if st != [2]float64{0, 0} {
			t.Errorf("section %d state not zero after reset: %v", i, st)
		}
	}
}

func TestChain_State_SaveRestore(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	chain.ProcessSample(1)
	chain.ProcessSample(0.5)
	saved := chain.State()

	y3 := chain.ProcessSample(-0.3)
	y4 := chain.ProcessSample(0.7)

	chain.SetState(saved)
	y3b := chain.ProcessSample(-0.3)
	y4b := chain.ProcessSample(0.7)

	if !almostEqual(y3, y3b, eps) {
		t.Errorf("sample 3: got %v after restore, want %v", y3b, y3)
	}

	if !almostEqual(y4, y4b, eps) {
		t.Errorf("sample 4: got %v after restore, want %v", y4b, y4)
	}
}

func TestNewChain_CopiesCoefficients(t *testing.T) {
	coeffs := twoSectionCoeffs()

	chain := NewChain(coeffs)
	coeffs[0].B0 = 100

	for i, c := range twoSectionCoeffs() {
		if chain.sections[i].Coefficients != c {
			t.Errorf("section %d coefficients mismatch", i)
		}
	}
}

func TestChain_Order_CountsFirstOrderSections(t *testing.T) {
	chain := NewChain([]Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.3, B1: 0.3, A1: -0.4},
	})

	if chain.Order() != 3 {
		t.Fatalf("Order: got %d, want 3", chain.Order())
	}
}

func TestChain_IsStable(t *testing.T) {
	if !NewChain(twoSectionCoeffs()).IsStable() {
		t.Fatal("expected stable chain")
	}

	unstable := append(twoSectionCoeffs(), Coefficients{B0: 1, A1: -1.5, A2: 1.1})
	if NewChain(unstable).IsStable() {
		t.Fatal("expected unstable chain")
	}
}
