// Package core holds the decibel conversions shared by the filter design
// and analysis packages.
package core
