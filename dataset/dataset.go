// Package dataset defines the in-memory view a tree grower operates on: a
// dims × samples feature matrix (samples are columns), a per-sample response
// vector, an optional weight vector, and per-dimension type metadata.
//
// The feature matrix and response vector are shared, mutable state: training
// reorders sample columns in place and never copies them. Nothing else may
// read or write them while a growth call is running.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gboost/pkg/errors"
)

// Datatype tags a dimension as numeric or categorical.
type Datatype int

const (
	// Numeric dimensions are split by a binary threshold.
	Numeric Datatype = iota
	// Categorical dimensions hold integral category codes in
	// [0, NumMappings) and are split one branch per category.
	Categorical
)

// String returns the string representation of the datatype.
func (d Datatype) String() string {
	if d == Categorical {
		return "categorical"
	}
	return "numeric"
}

// Info holds per-dimension metadata: the type tag and, for categorical
// dimensions, the number of categories.
type Info struct {
	types    []Datatype
	mappings []int
}

// NewInfo creates metadata for dims dimensions, all numeric.
func NewInfo(dims int) *Info {
	return &Info{
		types:    make([]Datatype, dims),
		mappings: make([]int, dims),
	}
}

// SetCategorical marks dimension d as categorical with the given number of
// categories.
func (in *Info) SetCategorical(d, categories int) error {
	if d < 0 || d >= len(in.types) {
		return errors.NewDimensionError("Info.SetCategorical", len(in.types), d, 0)
	}
	if categories < 1 {
		return errors.NewValidationError("categories", "must be >= 1", categories)
	}
	in.types[d] = Categorical
	in.mappings[d] = categories
	return nil
}

// Type returns the type tag of dimension d.
func (in *Info) Type(d int) Datatype { return in.types[d] }

// NumMappings returns the category count of dimension d. It is zero for
// numeric dimensions.
func (in *Info) NumMappings(d int) int { return in.mappings[d] }

// Dimensionality returns the number of dimensions described.
func (in *Info) Dimensionality() int { return len(in.types) }

// Dataset couples the feature matrix with its responses, weights and
// metadata. Features is dims × samples; sample j lives in column j of
// Features, at Responses[j] and (when present) Weights[j].
type Dataset struct {
	Features  *mat.Dense
	Responses []float64
	// Weights is accepted for interface compatibility with weighted gain
	// functions; the MSE gain currently ignores it. May be nil.
	Weights []float64
	Info    *Info
}

// New assembles a Dataset over existing storage. No copy is made.
func New(features *mat.Dense, responses []float64, info *Info) *Dataset {
	return &Dataset{Features: features, Responses: responses, Info: info}
}

// NumDimensions returns the number of feature dimensions (matrix rows).
func (ds *Dataset) NumDimensions() int {
	r, _ := ds.Features.Dims()
	return r
}

// NumSamples returns the number of samples (matrix columns).
func (ds *Dataset) NumSamples() int {
	_, c := ds.Features.Dims()
	return c
}

// Validate checks the data contract: matrix rows must agree with the
// metadata dimensionality, responses (and weights, when present) must cover
// every sample column, and every categorical value must be an integral code
// inside its declared domain. Growth entry points call this before touching
// any buffer.
func (ds *Dataset) Validate() error {
	if ds.Features == nil {
		return errors.NewValueError("Dataset.Validate", "nil feature matrix")
	}
	if ds.Info == nil {
		return errors.NewValueError("Dataset.Validate", "nil dataset metadata")
	}
	rows, cols := ds.Features.Dims()
	if rows != ds.Info.Dimensionality() {
		return errors.NewDimensionError("Dataset.Validate", ds.Info.Dimensionality(), rows, 0)
	}
	if len(ds.Responses) != cols {
		return errors.NewDimensionError("Dataset.Validate", cols, len(ds.Responses), 1)
	}
	if ds.Weights != nil && len(ds.Weights) != cols {
		return errors.NewDimensionError("Dataset.Validate", cols, len(ds.Weights), 1)
	}

	for d := 0; d < rows; d++ {
		if ds.Info.Type(d) != Categorical {
			continue
		}
		numCategories := float64(ds.Info.NumMappings(d))
		for j := 0; j < cols; j++ {
			v := ds.Features.At(d, j)
			if v != math.Trunc(v) || v < 0 || v >= numCategories {
				return errors.NewValueError("Dataset.Validate",
					"categorical value out of declared domain")
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the dataset, optionally substituting the
// response vector. Boosting trains each tree on its own copy because growth
// permutes the columns in place.
func (ds *Dataset) Clone(responses []float64) *Dataset {
	features := mat.DenseCopyOf(ds.Features)
	if responses == nil {
		responses = append([]float64(nil), ds.Responses...)
	}
	var weights []float64
	if ds.Weights != nil {
		weights = append([]float64(nil), ds.Weights...)
	}
	return &Dataset{Features: features, Responses: responses, Weights: weights, Info: ds.Info}
}

// Sample copies column j of the feature matrix into dst (allocating when dst
// is nil or too short) and returns it.
func (ds *Dataset) Sample(j int, dst []float64) []float64 {
	rows, _ := ds.Features.Dims()
	if cap(dst) < rows {
		dst = make([]float64, rows)
	}
	dst = dst[:rows]
	mat.Col(dst, j, ds.Features)
	return dst
}

// DimensionRange copies values of dimension d for sample columns
// [begin, begin+count) into a fresh slice.
func (ds *Dataset) DimensionRange(d, begin, count int) []float64 {
	out := make([]float64, count)
	for j := 0; j < count; j++ {
		out[j] = ds.Features.At(d, begin+j)
	}
	return out
}

// ResponseRange returns the responses of sample columns [begin, begin+count)
// as a subslice of the shared vector.
func (ds *Dataset) ResponseRange(begin, count int) []float64 {
	return ds.Responses[begin : begin+count]
}

// WeightRange returns the weights of sample columns [begin, begin+count), or
// nil when the dataset carries no weights.
func (ds *Dataset) WeightRange(begin, count int) []float64 {
	if ds.Weights == nil {
		return nil
	}
	return ds.Weights[begin : begin+count]
}

// PartitionRange reorders sample columns [begin, begin+count) so that the
// samples assigned to branch 0 come first, then branch 1, and so on, with
// relative input order preserved inside each branch. assignments[j] is the
// branch of column begin+j. It returns the per-branch sample counts.
//
// The reorder is a counting sort through a scratch buffer rather than a
// swap scan, which makes the stability guarantee explicit.
func (ds *Dataset) PartitionRange(begin, count, numBranches int, assignments []int) []int {
	counts := make([]int, numBranches)
	for _, b := range assignments {
		counts[b]++
	}

	// offsets[b] is the next free slot of branch b inside the scratch range.
	offsets := make([]int, numBranches)
	running := 0
	for b := 0; b < numBranches; b++ {
		offsets[b] = running
		running += counts[b]
	}

	rows, _ := ds.Features.Dims()
	scratch := mat.NewDense(rows, count, nil)
	scratchResp := make([]float64, count)
	var scratchW []float64
	if ds.Weights != nil {
		scratchW = make([]float64, count)
	}

	col := make([]float64, rows)
	for j := 0; j < count; j++ {
		p := offsets[assignments[j]]
		offsets[assignments[j]]++

		mat.Col(col, begin+j, ds.Features)
		scratch.SetCol(p, col)
		scratchResp[p] = ds.Responses[begin+j]
		if scratchW != nil {
			scratchW[p] = ds.Weights[begin+j]
		}
	}

	for j := 0; j < count; j++ {
		mat.Col(col, j, scratch)
		ds.Features.SetCol(begin+j, col)
		ds.Responses[begin+j] = scratchResp[j]
		if scratchW != nil {
			ds.Weights[begin+j] = scratchW[j]
		}
	}
	return counts
}
