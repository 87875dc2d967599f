package response_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/response"
)

func ExampleContinuous() {
	// H(s) = 1/(s+1)
	h, err := lti.NewTransferFunction([]float64{1}, []float64{1, 1}, lti.Continuous)
	if err != nil {
		fmt.Println(err)
		return
	}

	r, err := response.Continuous(h, 2, response.WithSampleCount(3))
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, w := range r.Frequencies {
		fmt.Printf("w=%.1f |H|=%.4f %+.2f dB phase=%+.1f deg\n",
			w, r.Magnitude[i], r.MagnitudeDB[i], r.Phase[i]*180/math.Pi)
	}
	// Output:
	// w=0.0 |H|=1.0000 +0.00 dB phase=+0.0 deg
	// w=1.0 |H|=0.7071 -3.01 dB phase=-45.0 deg
	// w=2.0 |H|=0.4472 -6.99 dB phase=-63.4 deg
}
