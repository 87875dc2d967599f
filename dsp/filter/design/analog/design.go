package analog

import "github.com/cwbudde/algo-filterdesign/dsp/filter/lti"

// Design is a complete analog lowpass design. Order and Cutoff report the
// selection made for the Spec.
type Design struct {
	Family Family
	Order  int
	Cutoff float64
	TF     lti.TransferFunction
}

// DesignButterworth selects the minimum Butterworth order for s and returns
// the corresponding analog prototype.
func DesignButterworth(s Spec) (Design, error) {
	sel, err := ButterworthOrder(s)
	if err != nil {
		return Design{}, err
	}

	h, err := ButterworthPrototype(sel.Order, sel.Cutoff)
	if err != nil {
		return Design{}, err
	}

	return Design{Family: Butterworth, Order: sel.Order, Cutoff: sel.Cutoff, TF: h}, nil
}

// DesignChebyshev1 selects the minimum Chebyshev type I order for s and
// returns the corresponding analog prototype.
func DesignChebyshev1(s Spec) (Design, error) {
	sel, err := Chebyshev1Order(s)
	if err != nil {
		return Design{}, err
	}

	h, err := Chebyshev1Prototype(sel.Order, s.Rp, sel.Cutoff)
	if err != nil {
		return Design{}, err
	}

	return Design{Family: Chebyshev1, Order: sel.Order, Cutoff: sel.Cutoff, TF: h}, nil
}

// DesignFamily dispatches to DesignButterworth or DesignChebyshev1.
func DesignFamily(f Family, s Spec) (Design, error) {
	switch f {
	case Butterworth:
		return DesignButterworth(s)
	case Chebyshev1:
		return DesignChebyshev1(s)
	default:
		return Design{}, ErrInvalidSpecification
	}
}
