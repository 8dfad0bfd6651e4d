// Package booster implements a squared-error gradient-boosting ensemble
// over the weak-learner trees in package tree. Each iteration fits a fresh
// tree to the current residuals and adds its shrunken predictions to the
// ensemble.
package booster

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gboost/dataset"
	"github.com/YuminosukeSato/gboost/metrics"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/pkg/log"
	"github.com/YuminosukeSato/gboost/tree"
)

// Params contains the boosting hyperparameters.
type Params struct {
	// Basic parameters.
	NumIterations int     `json:"num_iterations"`
	LearningRate  float64 `json:"learning_rate"`

	// Per-tree growth parameters.
	MinimumLeafSize  int     `json:"minimum_leaf_size"`
	MinimumGainSplit float64 `json:"minimum_gain_split"`
	MaximumDepth     int     `json:"maximum_depth"`

	// Pruning. When Prune is set, every grown tree is pruned with
	// PruneThreshold before joining the ensemble.
	Prune          bool    `json:"prune"`
	PruneThreshold float64 `json:"prune_threshold"`

	// Other.
	Verbosity int `json:"verbosity"`
}

// Booster is a gradient-boosting regressor of decision trees.
type Booster struct {
	params Params

	trees     []*tree.Node
	initScore float64
	featImp   *tree.FeatureImportance
	lossCurve []float64
	fitted    bool
}

// NewBooster creates a booster, filling in default values for unset
// parameters.
func NewBooster(params Params) *Booster {
	if params.NumIterations == 0 {
		params.NumIterations = 100
	}
	if params.LearningRate == 0 {
		params.LearningRate = 0.1
	}
	if params.MinimumLeafSize == 0 {
		params.MinimumLeafSize = 10
	}
	if params.MaximumDepth == 0 {
		params.MaximumDepth = 5
	}

	return &Booster{
		params:  params,
		featImp: tree.NewFeatureImportance(),
	}
}

// Fit trains the ensemble on the dataset. The caller's dataset is never
// mutated: each iteration grows its tree on a private copy carrying the
// residuals as responses, since growth partitions its input in place.
func (b *Booster) Fit(ds *dataset.Dataset) error {
	if err := ds.Validate(); err != nil {
		return errors.Wrap(err, "booster: invalid dataset")
	}
	n := ds.NumSamples()
	if n == 0 {
		return errors.NewValueError("Booster.Fit", "empty dataset")
	}

	cfg := tree.Config{
		MinimumLeafSize:  b.params.MinimumLeafSize,
		MinimumGainSplit: b.params.MinimumGainSplit,
		MaximumDepth:     b.params.MaximumDepth,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.GetLoggerWithName("booster")

	b.trees = nil
	b.lossCurve = nil
	b.featImp = tree.NewFeatureImportance()
	b.initScore = floats.Sum(ds.Responses) / float64(n)

	cumPred := make([]float64, n)
	for i := range cumPred {
		cumPred[i] = b.initScore
	}

	residuals := make([]float64, n)
	var point []float64

	for iter := 0; iter < b.params.NumIterations; iter++ {
		for i := 0; i < n; i++ {
			residuals[i] = ds.Responses[i] - cumPred[i]
		}

		work := ds.Clone(append([]float64(nil), residuals...))
		node, err := tree.Grow(work, cfg, b.featImp)
		if err != nil {
			return errors.Wrapf(err, "tree building failed at iteration %d", iter)
		}
		if b.params.Prune {
			// The root always stays, even when it reports removal.
			node.Prune(b.params.PruneThreshold)
		}
		b.trees = append(b.trees, node)

		for j := 0; j < n; j++ {
			point = ds.Sample(j, point)
			pred, err := node.Predict(point)
			if err != nil {
				return errors.Wrapf(err, "prediction failed at iteration %d", iter)
			}
			cumPred[j] += b.params.LearningRate * pred
		}

		loss, err := metrics.MSESlice(ds.Responses, cumPred)
		if err != nil {
			return err
		}
		b.lossCurve = append(b.lossCurve, loss)

		if b.params.Verbosity > 0 && iter%10 == 0 {
			logger.Info("training progress",
				log.OperationKey, "fit",
				log.IterationKey, iter,
				log.LossKey, loss)
		}
	}

	if len(b.lossCurve) > 1 && b.lossCurve[len(b.lossCurve)-1] >= b.lossCurve[0] {
		errors.Warn(errors.NewConvergenceWarning("Booster", b.params.NumIterations,
			"training loss did not improve"))
	}

	b.fitted = true
	return nil
}

// Predict returns the ensemble prediction for a single feature vector.
func (b *Booster) Predict(point []float64) (float64, error) {
	if !b.fitted {
		return 0, errors.NewNotFittedError("Booster", "Predict")
	}

	pred := b.initScore
	for _, node := range b.trees {
		p, err := node.Predict(point)
		if err != nil {
			return 0, err
		}
		pred += b.params.LearningRate * p
	}
	return pred, nil
}

// PredictAll returns ensemble predictions for every sample of the dataset.
func (b *Booster) PredictAll(ds *dataset.Dataset) ([]float64, error) {
	if !b.fitted {
		return nil, errors.NewNotFittedError("Booster", "PredictAll")
	}

	n := ds.NumSamples()
	out := make([]float64, n)
	var point []float64
	for j := 0; j < n; j++ {
		point = ds.Sample(j, point)
		pred, err := b.Predict(point)
		if err != nil {
			return nil, err
		}
		out[j] = pred
	}
	return out, nil
}

// FeatureImportance returns a read-only snapshot of the per-dimension split
// frequency and cumulative gain accumulated across all iterations.
func (b *Booster) FeatureImportance() map[int]tree.ImportanceStat {
	return b.featImp.Snapshot()
}

// LossCurve returns the training loss recorded after each iteration.
func (b *Booster) LossCurve() []float64 {
	return append([]float64(nil), b.lossCurve...)
}

// NumTrees returns the number of trees in the fitted ensemble.
func (b *Booster) NumTrees() int { return len(b.trees) }
