package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	gberrors "github.com/YuminosukeSato/gboost/pkg/errors"
)

func TestValidateAcceptsConsistentDataset(t *testing.T) {
	features := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		0, 1, 0,
	})
	info := NewInfo(2)
	require.NoError(t, info.SetCategorical(1, 2))

	ds := New(features, []float64{10, 20, 30}, info)
	assert.NoError(t, ds.Validate())
}

func TestValidateRejectsMetadataMismatch(t *testing.T) {
	features := mat.NewDense(2, 3, nil)
	ds := New(features, []float64{1, 2, 3}, NewInfo(3))

	err := ds.Validate()
	var dimErr *gberrors.DimensionError
	assert.True(t, gberrors.As(err, &dimErr))
}

func TestValidateRejectsResponseLengthMismatch(t *testing.T) {
	features := mat.NewDense(1, 3, nil)
	ds := New(features, []float64{1, 2}, NewInfo(1))

	err := ds.Validate()
	var dimErr *gberrors.DimensionError
	assert.True(t, gberrors.As(err, &dimErr))
}

func TestValidateRejectsOutOfDomainCategory(t *testing.T) {
	cases := map[string][]float64{
		"negative code":   {-1, 0, 1},
		"too large code":  {0, 1, 2},
		"fractional code": {0, 0.5, 1},
	}
	for name, values := range cases {
		features := mat.NewDense(1, 3, values)
		info := NewInfo(1)
		require.NoError(t, info.SetCategorical(0, 2))

		ds := New(features, []float64{1, 2, 3}, info)
		err := ds.Validate()
		var valueErr *gberrors.ValueError
		assert.True(t, gberrors.As(err, &valueErr), "%s must be rejected", name)
	}
}

func TestPartitionRangeIsStable(t *testing.T) {
	features := mat.NewDense(1, 6, []float64{5, 1, 6, 2, 7, 3})
	responses := []float64{50, 10, 60, 20, 70, 30}
	ds := New(features, responses, NewInfo(1))

	// Alternate branch assignments; branch 0 samples must come first in
	// their original relative order, then branch 1 samples in theirs.
	counts := ds.PartitionRange(0, 6, 2, []int{1, 0, 1, 0, 1, 0})

	assert.Equal(t, []int{3, 3}, counts)
	assert.Equal(t, []float64{10, 20, 30, 50, 60, 70}, ds.Responses)
	for j, want := range []float64{1, 2, 3, 5, 6, 7} {
		assert.Equal(t, want, ds.Features.At(0, j))
	}
}

func TestPartitionRangeSubrangeLeavesRestUntouched(t *testing.T) {
	features := mat.NewDense(1, 5, []float64{9, 4, 3, 2, 8})
	responses := []float64{90, 40, 30, 20, 80}
	ds := New(features, responses, NewInfo(1))

	ds.PartitionRange(1, 3, 2, []int{1, 1, 0})

	assert.Equal(t, []float64{90, 20, 40, 30, 80}, ds.Responses)
	assert.Equal(t, 9.0, ds.Features.At(0, 0))
	assert.Equal(t, 8.0, ds.Features.At(0, 4))
}

func TestPartitionRangeCarriesWeights(t *testing.T) {
	features := mat.NewDense(1, 4, []float64{1, 2, 3, 4})
	ds := New(features, []float64{1, 2, 3, 4}, NewInfo(1))
	ds.Weights = []float64{0.1, 0.2, 0.3, 0.4}

	ds.PartitionRange(0, 4, 2, []int{1, 0, 1, 0})

	assert.Equal(t, []float64{0.2, 0.4, 0.1, 0.3}, ds.Weights)
	assert.Equal(t, []float64{2, 4, 1, 3}, ds.Responses)
}

func TestCloneIsIndependent(t *testing.T) {
	features := mat.NewDense(1, 3, []float64{1, 2, 3})
	ds := New(features, []float64{10, 20, 30}, NewInfo(1))

	clone := ds.Clone([]float64{-1, -2, -3})
	clone.Features.Set(0, 0, 99)
	clone.Responses[0] = 99

	assert.Equal(t, 1.0, ds.Features.At(0, 0))
	assert.Equal(t, 10.0, ds.Responses[0])
	assert.Equal(t, []float64{99, -2, -3}, clone.Responses)
}

func TestSampleCopiesColumn(t *testing.T) {
	features := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	ds := New(features, []float64{0, 0, 0}, NewInfo(2))

	assert.Equal(t, []float64{2, 5}, ds.Sample(1, nil))

	// A provided buffer is reused.
	buf := make([]float64, 2)
	got := ds.Sample(2, buf)
	assert.Equal(t, []float64{3, 6}, got)
	assert.Equal(t, &buf[0], &got[0])
}

func TestLoadNpyRoundTrip(t *testing.T) {
	dir := t.TempDir()

	featuresPath := filepath.Join(dir, "features.npy")
	responsesPath := filepath.Join(dir, "responses.npy")

	features := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	writeNpy(t, featuresPath, features)
	writeNpyVector(t, responsesPath, []float64{10, 20, 30})

	ds, err := Load(featuresPath, responsesPath, NewInfo(2))
	require.NoError(t, err)

	assert.Equal(t, 2, ds.NumDimensions())
	assert.Equal(t, 3, ds.NumSamples())
	assert.Equal(t, 5.0, ds.Features.At(1, 1))
	assert.Equal(t, []float64{10, 20, 30}, ds.Responses)
}

func writeNpy(t *testing.T, path string, m *mat.Dense) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npyio.Write(f, m))
}

func writeNpyVector(t *testing.T, path string, v []float64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npyio.Write(f, v))
}
