// Package sos converts between discrete transfer functions and cascades of
// second-order sections.
//
// [FromTransferFunction] factors H(z) into biquad sections: conjugate pole
// pairs and pairs of real poles form the section denominators, each matched
// with the nearest remaining zeros, and the sections are ordered by
// increasing pole magnitude with the overall gain folded into the first
// section. [FromRows] and [Rows] exchange sections as [b0 b1 b2 a0 a1 a2]
// rows for export.
package sos
