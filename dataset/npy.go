package dataset

import (
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gboost/pkg/errors"
)

// LoadMatrix reads a 2-D float64 .npy file into a dense matrix, preserving
// the stored shape.
func LoadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse npy header of %s", path)
	}
	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, errors.NewValueError("dataset.LoadMatrix", "npy file is not a 2-D array")
	}

	raw := make([]float64, shape[0]*shape[1])
	if err := r.Read(&raw); err != nil {
		return nil, errors.Wrapf(err, "failed to read npy payload of %s", path)
	}
	return mat.NewDense(shape[0], shape[1], raw), nil
}

// LoadVector reads a 1-D float64 .npy file. Column vectors of shape (n, 1)
// are accepted as well.
func LoadVector(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse npy header of %s", path)
	}
	shape := r.Header.Descr.Shape

	n := 1
	for _, s := range shape {
		n *= s
	}
	switch {
	case len(shape) == 1:
	case len(shape) == 2 && (shape[0] == 1 || shape[1] == 1):
	default:
		return nil, errors.NewValueError("dataset.LoadVector", "npy file is not a vector")
	}

	raw := make([]float64, n)
	if err := r.Read(&raw); err != nil {
		return nil, errors.Wrapf(err, "failed to read npy payload of %s", path)
	}
	return raw, nil
}

// Load reads a feature matrix (stored dims × samples) and a response vector
// from .npy files and assembles a validated Dataset over the given metadata.
func Load(featuresPath, responsesPath string, info *Info) (*Dataset, error) {
	features, err := LoadMatrix(featuresPath)
	if err != nil {
		return nil, err
	}
	responses, err := LoadVector(responsesPath)
	if err != nil {
		return nil, err
	}

	ds := New(features, responses, info)
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}
