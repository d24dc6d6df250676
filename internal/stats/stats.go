// Package stats aggregates per-embedding scores into summary statistics.
package stats

import (
	"gonum.org/v1/gonum/stat"
)

// Summary is the aggregate of a set of per-embedding scores.
type Summary struct {
	Mean float64
	Std  float64
	N    int
}

// Summarize returns the mean and sample standard deviation (divisor n-1) of xs.
// A single sample has a standard deviation of 0. ok is false when xs is empty.
func Summarize(xs []float64) (s Summary, ok bool) {
	switch len(xs) {
	case 0:
		return Summary{}, false
	case 1:
		return Summary{Mean: xs[0], N: 1}, true
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Summary{Mean: mean, Std: std, N: len(xs)}, true
}
