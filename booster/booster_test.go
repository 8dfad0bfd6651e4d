package booster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gboost/dataset"
	gberrors "github.com/YuminosukeSato/gboost/pkg/errors"
)

// linearDataset builds a one-dimensional dataset with y = 3x over a grid.
func linearDataset(n int) *dataset.Dataset {
	features := mat.NewDense(1, n, nil)
	responses := make([]float64, n)
	for j := 0; j < n; j++ {
		x := float64(j) / 10.0
		features.Set(0, j, x)
		responses[j] = 3 * x
	}
	return dataset.New(features, responses, dataset.NewInfo(1))
}

func TestBoosterFitReducesLoss(t *testing.T) {
	ds := linearDataset(100)

	b := NewBooster(Params{
		NumIterations:   30,
		LearningRate:    0.3,
		MinimumLeafSize: 5,
		MaximumDepth:    4,
	})
	require.NoError(t, b.Fit(ds))

	curve := b.LossCurve()
	require.Len(t, curve, 30)
	assert.Less(t, curve[len(curve)-1], curve[0],
		"training loss must decrease over iterations")
	assert.Less(t, curve[len(curve)-1], 1.0)
	assert.Equal(t, 30, b.NumTrees())

	// The caller's dataset is untouched.
	assert.Equal(t, 0.0, ds.Features.At(0, 0))
	assert.Equal(t, 3*9.9, ds.Responses[99])

	pred, err := b.Predict([]float64{5.0})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, pred, 1.5)
}

func TestBoosterCategoricalSignal(t *testing.T) {
	// The response depends only on the category, so the ensemble converges
	// geometrically onto the exact values.
	n := 99
	features := mat.NewDense(1, n, nil)
	responses := make([]float64, n)
	for j := 0; j < n; j++ {
		c := float64(j % 3)
		features.Set(0, j, c)
		responses[j] = 10 * c
	}
	info := dataset.NewInfo(1)
	require.NoError(t, info.SetCategorical(0, 3))
	ds := dataset.New(features, responses, info)

	b := NewBooster(Params{
		NumIterations:   20,
		LearningRate:    0.5,
		MinimumLeafSize: 5,
		MaximumDepth:    3,
	})
	require.NoError(t, b.Fit(ds))

	for c := 0; c < 3; c++ {
		pred, err := b.Predict([]float64{float64(c)})
		require.NoError(t, err)
		assert.InDelta(t, float64(10*c), pred, 0.01)
	}
}

func TestBoosterPredictAllMatchesPredict(t *testing.T) {
	ds := linearDataset(50)

	b := NewBooster(Params{
		NumIterations:   10,
		LearningRate:    0.3,
		MinimumLeafSize: 5,
		MaximumDepth:    3,
	})
	require.NoError(t, b.Fit(ds))

	all, err := b.PredictAll(ds)
	require.NoError(t, err)
	require.Len(t, all, 50)

	var point []float64
	for j := 0; j < 50; j++ {
		point = ds.Sample(j, point)
		single, err := b.Predict(point)
		require.NoError(t, err)
		assert.Equal(t, single, all[j])
	}
}

func TestBoosterFeatureImportance(t *testing.T) {
	// Dimension 0 carries all the signal, dimension 1 is constant.
	n := 60
	features := mat.NewDense(2, n, nil)
	responses := make([]float64, n)
	for j := 0; j < n; j++ {
		x := float64(j)
		features.Set(0, j, x)
		features.Set(1, j, 1.0)
		responses[j] = 2 * x
	}
	ds := dataset.New(features, responses, dataset.NewInfo(2))

	b := NewBooster(Params{
		NumIterations:   5,
		LearningRate:    0.3,
		MinimumLeafSize: 5,
		MaximumDepth:    3,
	})
	require.NoError(t, b.Fit(ds))

	importance := b.FeatureImportance()
	stat, present := importance[0]
	require.True(t, present)
	assert.GreaterOrEqual(t, stat.Frequency, 1)

	_, present = importance[1]
	assert.False(t, present, "a constant dimension is never chosen")
}

func TestBoosterPredictBeforeFit(t *testing.T) {
	b := NewBooster(Params{})
	_, err := b.Predict([]float64{1})
	var notFitted *gberrors.NotFittedError
	assert.True(t, gberrors.As(err, &notFitted))
}

func TestBoosterRejectsInvalidDataset(t *testing.T) {
	features := mat.NewDense(2, 3, nil)
	ds := dataset.New(features, []float64{1, 2, 3}, dataset.NewInfo(3))

	b := NewBooster(Params{NumIterations: 1})
	err := b.Fit(ds)
	var dimErr *gberrors.DimensionError
	assert.True(t, gberrors.As(err, &dimErr))
}

func TestNewBoosterDefaults(t *testing.T) {
	b := NewBooster(Params{})
	assert.Equal(t, 100, b.params.NumIterations)
	assert.Equal(t, 0.1, b.params.LearningRate)
	assert.Equal(t, 10, b.params.MinimumLeafSize)
	assert.Equal(t, 5, b.params.MaximumDepth)
}
