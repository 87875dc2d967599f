// Package response evaluates frequency responses of transfer functions for
// analysis and plotting: magnitude (linear and dB relative to the peak),
// phase, and, for discrete systems, group delay.
//
// [Continuous] samples H(jw) on [0, maxFrequency]; [Discrete] samples
// H(e^jw) on [0, pi) using an FFT of the zero-padded coefficient vectors
// when the grid allows it. [DiscreteSOS] evaluates a cascade of biquad
// sections on the same grid. All functions are pure and deterministic.
package response
