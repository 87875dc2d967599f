// Command iirdesign designs Butterworth and Chebyshev type I lowpass filters
// from passband/stopband specifications, converts them to discrete time by
// impulse invariance and optionally quantizes the coefficients.
//
// Usage:
//
//	iirdesign design [flags]
//	iirdesign quantize [flags] coefficient ...
//
// Examples:
//
//	iirdesign design --family butterworth --wp 0.2 --ws 0.3 --rp 1 --as 15 --pi-units
//	iirdesign design --config lowpass.yaml --sos --bits 16
//	iirdesign quantize --bits 8 0.5 -0.25 0.125
//	iirdesign quantize --q15 0.5 -1 0.25
//	iirdesign quantize -- -0.75 0.5
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
