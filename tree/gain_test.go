package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMSEGainHomogeneousSetScoresMaximum(t *testing.T) {
	g := MSEGain{}

	assert.Equal(t, 0.0, g.Evaluate([]float64{7.0}, nil),
		"a singleton has zero variance")
	assert.Equal(t, 0.0, g.Evaluate([]float64{3, 3, 3, 3}, nil),
		"a constant set has zero variance")
}

func TestMSEGainHeterogeneousSetScoresNegative(t *testing.T) {
	g := MSEGain{}

	score := g.Evaluate([]float64{0, 10}, nil)
	assert.Less(t, score, 0.0)
	// Variance of {0, 10} is 25.
	assert.InDelta(t, -25.0, score, 1e-12)

	// More spread, more negative.
	wider := g.Evaluate([]float64{0, 20}, nil)
	assert.Less(t, wider, score)
}

func TestMSEGainOutputLeafValue(t *testing.T) {
	g := MSEGain{}

	assert.InDelta(t, 2.0, g.OutputLeafValue([]float64{1, 2, 3}, nil), 1e-12)
	assert.InDelta(t, 7.0, g.OutputLeafValue([]float64{7}, nil), 1e-12)
}
