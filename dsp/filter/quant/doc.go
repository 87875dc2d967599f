// Package quant rounds filter coefficients to signed fixed-point values.
//
// A [Format] splits a word of N bits into one sign bit, L integer bits and
// B fractional bits (N = 1 + L + B). [Allocate] picks the smallest L that
// holds the largest coefficient magnitude and gives the remaining bits to
// the fraction; [Quantize] then rounds every coefficient to a multiple of
// 2^-B. Fixed formats such as [Q15] are applied with [QuantizeFormat].
//
// Values that do not fit the format are reported as errors and never
// clipped.
package quant
