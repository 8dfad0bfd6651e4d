package tree

import (
	"gonum.org/v1/gonum/floats"
)

// FitnessFunc scores the homogeneity of a set of responses and produces the
// prediction a leaf covering that set should emit.
//
// Evaluate returns 0.0 for a perfectly homogeneous set (the theoretical
// maximum) and increasingly negative values for more heterogeneous sets.
// Both methods are pure functions of their arguments.
//
// The weights argument is accepted for interface compatibility; the current
// gain implementation does not use it.
type FitnessFunc interface {
	Evaluate(responses, weights []float64) float64
	OutputLeafValue(responses, weights []float64) float64
}

// MSEGain scores a response set by its negated variance, so that splitting
// toward homogeneous children drives the score toward the 0.0 maximum.
type MSEGain struct{}

// Evaluate returns the negated variance of responses. A singleton or
// constant set scores exactly 0.0.
func (MSEGain) Evaluate(responses, _ []float64) float64 {
	n := float64(len(responses))
	sum := floats.Sum(responses)
	mean := sum / n

	var sumSq float64
	for _, r := range responses {
		d := r - mean
		sumSq += d * d
	}
	return -sumSq / n
}

// OutputLeafValue returns the mean response, the value that minimises the
// squared error over the set.
func (MSEGain) OutputLeafValue(responses, _ []float64) float64 {
	return floats.Sum(responses) / float64(len(responses))
}
