package tree

import (
	"sort"
)

// SplitInfo is the opaque, strategy-specific encoding of a chosen split: a
// threshold for numeric splits, a category count for categorical ones. It is
// produced by SplitIfBetter and consumed by NumChildren and
// CalculateDirection; nothing outside the owning strategy interprets it.
type SplitInfo []float64

// NumericSplit searches every midpoint between consecutive sorted distinct
// values of one dimension for the binary threshold with the best gain.
type NumericSplit struct{}

// SplitIfBetter looks for a binary threshold on values whose gain beats
// bestGain by more than minimumGainSplit, with at least minimumLeafSize
// samples on each side. It returns the gain of the best such split and its
// encoded threshold; ok is false when no candidate qualifies.
func (NumericSplit) SplitIfBetter(
	bestGain float64,
	values, responses, weights []float64,
	minimumLeafSize int,
	minimumGainSplit float64,
	fitness FitnessFunc,
) (gain float64, info SplitInfo, ok bool) {
	count := len(values)

	// No threshold can give both sides the minimum leaf size.
	if count < minimumLeafSize*2 {
		return 0, nil, false
	}

	// Sort sample positions by value, carrying responses along.
	order := make([]int, count)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	sortedValues := make([]float64, count)
	sortedResponses := make([]float64, count)
	for i, idx := range order {
		sortedValues[i] = values[idx]
		sortedResponses[i] = responses[idx]
	}

	bestFound := bestGain + minimumGainSplit
	improved := false
	var threshold float64

	for i := minimumLeafSize - 1; i < count-minimumLeafSize; i++ {
		// Only boundaries between distinct values are valid thresholds.
		if sortedValues[i] == sortedValues[i+1] {
			continue
		}

		left := sortedResponses[:i+1]
		right := sortedResponses[i+1:]
		leftFrac := float64(len(left)) / float64(count)
		rightFrac := float64(len(right)) / float64(count)
		g := leftFrac*fitness.Evaluate(left, weights) +
			rightFrac*fitness.Evaluate(right, weights)

		if g > bestFound {
			bestFound = g
			improved = true
			threshold = (sortedValues[i] + sortedValues[i+1]) / 2.0
			// A perfectly pure split cannot be beaten.
			if bestFound >= 0.0 {
				break
			}
		}
	}

	if !improved {
		return 0, nil, false
	}
	return bestFound, SplitInfo{threshold}, true
}

// NumChildren returns the branch count of a numeric split, always 2.
func (NumericSplit) NumChildren(SplitInfo) int { return 2 }

// CalculateDirection routes a value to branch 0 when it falls at or below
// the threshold (closed interval on the left), branch 1 otherwise.
func (NumericSplit) CalculateDirection(value float64, info SplitInfo) int {
	if value <= info[0] {
		return 0
	}
	return 1
}

// CategoricalSplit evaluates the multi-way partition that gives every
// category its own branch.
type CategoricalSplit struct{}

// SplitIfBetter evaluates the all-categories-separate partition of values.
// It returns the partition's gain and encoded branch count when the gain
// beats bestGain by more than minimumGainSplit and every category keeps at
// least minimumLeafSize samples; ok is false otherwise.
func (CategoricalSplit) SplitIfBetter(
	bestGain float64,
	values []float64,
	numCategories int,
	responses, weights []float64,
	minimumLeafSize int,
	minimumGainSplit float64,
	fitness FitnessFunc,
) (gain float64, info SplitInfo, ok bool) {
	count := len(values)
	if count < minimumLeafSize*2 {
		return 0, nil, false
	}

	// Bucket responses by category, preserving input order.
	buckets := make([][]float64, numCategories)
	for i, v := range values {
		c := int(v)
		buckets[c] = append(buckets[c], responses[i])
	}

	// Every branch must respect the minimum leaf size.
	for _, b := range buckets {
		if len(b) < minimumLeafSize {
			return 0, nil, false
		}
	}

	var overall float64
	for _, b := range buckets {
		frac := float64(len(b)) / float64(count)
		overall += frac * fitness.Evaluate(b, weights)
	}

	if overall <= bestGain+minimumGainSplit {
		return 0, nil, false
	}
	return overall, SplitInfo{float64(numCategories)}, true
}

// NumChildren returns the branch count of a categorical split, one per
// category.
func (CategoricalSplit) NumChildren(info SplitInfo) int { return int(info[0]) }

// CalculateDirection routes a sample to the branch of its category code.
func (CategoricalSplit) CalculateDirection(value float64, _ SplitInfo) int {
	return int(value)
}
