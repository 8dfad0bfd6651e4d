// Package tree implements the gain-greedy decision tree used as the
// per-iteration weak learner of a gradient-boosting ensemble: recursive
// growth over an in-place partitioned dataset, heterogeneous numeric and
// categorical split strategies, prediction, post-hoc pruning, and feature
// importance accumulation.
package tree

import (
	"github.com/YuminosukeSato/gboost/dataset"
	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/YuminosukeSato/gboost/pkg/log"
)

// Config carries the growth hyperparameters.
type Config struct {
	// MinimumLeafSize is the smallest number of samples an accepted split
	// may leave in any branch. Must be >= 1.
	MinimumLeafSize int `json:"minimum_leaf_size"`
	// MinimumGainSplit is the gain improvement floor a split must exceed.
	// Must be >= 0.
	MinimumGainSplit float64 `json:"minimum_gain_split"`
	// MaximumDepth is the remaining depth budget; 1 forces a leaf. Must be
	// >= 1.
	MaximumDepth int `json:"maximum_depth"`
}

// NewConfig returns a Config with the default hyperparameters.
func NewConfig() Config {
	return Config{
		MinimumLeafSize:  10,
		MinimumGainSplit: 1e-7,
		MaximumDepth:     10,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.MinimumLeafSize < 1 {
		return errors.NewValidationError("minimum_leaf_size", "must be >= 1", c.MinimumLeafSize)
	}
	if c.MinimumGainSplit < 0 {
		return errors.NewValidationError("minimum_gain_split", "must be >= 0", c.MinimumGainSplit)
	}
	if c.MaximumDepth < 1 {
		return errors.NewValidationError("maximum_depth", "must be >= 1", c.MaximumDepth)
	}
	return nil
}

// nodeKind discriminates the node payload explicitly instead of inferring it
// from the child list.
type nodeKind uint8

const (
	kindUnset nodeKind = iota
	kindLeaf
	kindInternal
)

// Node is the recursive unit of the tree. A node exclusively owns its
// ordered children; the tree is a strict out-tree with no sharing. A node is
// populated by exactly one Train call and holds either a leaf prediction or
// an internal split descriptor, plus its own split-quality score.
type Node struct {
	children []*Node
	kind     nodeKind

	// Leaf payload.
	prediction float64

	// Internal payload.
	splitDimension int
	dimensionType  dataset.Datatype
	splitInfo      SplitInfo

	// For leaves, the quality of not splitting; for internal nodes, the
	// count-weighted aggregate of the children's losses.
	nodeGain float64
}

// NewNode creates an empty, untrained node.
func NewNode() *Node { return &Node{} }

// Grow trains a fresh tree over the whole dataset with the default gain
// function and dimension selector. featImp may be nil to skip importance
// tracking. The dataset's columns and responses are reordered in place.
func Grow(ds *dataset.Dataset, cfg Config, featImp *FeatureImportance) (*Node, error) {
	node := NewNode()
	selector := NewAllDimensionSelect(ds.NumDimensions())
	if _, err := node.Train(ds, 0, ds.NumSamples(), cfg, selector, MSEGain{}, featImp); err != nil {
		return nil, err
	}
	return node, nil
}

// Train grows the subtree rooted at n over sample columns
// [begin, begin+count), reordering the dataset in place, and returns the
// node's loss (the negation of its gain). Any previously attached children
// are discarded, so a node can be retrained.
//
// Configuration and data-contract errors are detected here, before any
// partitioning occurs. A failure inside a recursive child call aborts the
// whole growth; the node must not be used for prediction afterwards.
func (n *Node) Train(
	ds *dataset.Dataset,
	begin, count int,
	cfg Config,
	selector DimensionSelector,
	fitness FitnessFunc,
	featImp *FeatureImportance,
) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := ds.Validate(); err != nil {
		return 0, err
	}
	if count < 1 {
		return 0, errors.NewValueError("Node.Train", "empty sample range")
	}
	if begin < 0 || begin+count > ds.NumSamples() {
		return 0, errors.NewValueError("Node.Train", "sample range out of bounds")
	}

	logger := log.GetLoggerWithName("tree")
	logger.Debug("growing tree",
		log.OperationKey, "train",
		log.SamplesKey, count,
		log.DimensionsKey, ds.NumDimensions(),
		log.DepthKey, cfg.MaximumDepth)

	return n.train(ds, begin, count, cfg, cfg.MaximumDepth, selector, fitness, featImp)
}

// train is the recursive grower. Inputs are assumed validated.
func (n *Node) train(
	ds *dataset.Dataset,
	begin, count int,
	cfg Config,
	depth int,
	selector DimensionSelector,
	fitness FitnessFunc,
	featImp *FeatureImportance,
) (float64, error) {
	// Defensive reset; supports retraining a node in place.
	n.children = nil
	n.kind = kindUnset
	n.splitInfo = nil

	responses := ds.ResponseRange(begin, count)
	weights := ds.WeightRange(begin, count)

	// The baseline "do not split" quality.
	bestGain := fitness.Evaluate(responses, weights)
	dims := ds.Info.Dimensionality()
	bestDim := dims // one past the last dimension: "no split chosen"
	var bestInfo SplitInfo
	var bestType dataset.Datatype

	if depth != 1 {
		end := selector.End()
		for d := selector.Begin(); d != end; d = selector.Next() {
			values := ds.DimensionRange(d, begin, count)

			var dimGain float64
			var info SplitInfo
			var ok bool
			if ds.Info.Type(d) == dataset.Categorical {
				dimGain, info, ok = CategoricalSplit{}.SplitIfBetter(bestGain,
					values, ds.Info.NumMappings(d), responses, weights,
					cfg.MinimumLeafSize, cfg.MinimumGainSplit, fitness)
			} else {
				dimGain, info, ok = NumericSplit{}.SplitIfBetter(bestGain,
					values, responses, weights,
					cfg.MinimumLeafSize, cfg.MinimumGainSplit, fitness)
			}

			// No improvement on this dimension; try the next one.
			if !ok {
				continue
			}

			bestDim = d
			bestGain = dimGain
			bestInfo = info
			bestType = ds.Info.Type(d)

			// A perfectly pure split cannot be improved upon.
			if bestGain >= 0.0 {
				break
			}
		}
	}

	if bestDim != dims {
		if featImp != nil {
			featImp.IncreaseFrequency(bestDim, 1)
			featImp.IncreaseCover(bestDim, bestGain)
		}

		n.kind = kindInternal
		n.splitDimension = bestDim
		n.dimensionType = bestType
		n.splitInfo = bestInfo

		var numChildren int
		if bestType == dataset.Categorical {
			numChildren = CategoricalSplit{}.NumChildren(bestInfo)
		} else {
			numChildren = NumericSplit{}.NumChildren(bestInfo)
		}

		assignments := make([]int, count)
		for j := 0; j < count; j++ {
			v := ds.Features.At(bestDim, begin+j)
			if bestType == dataset.Categorical {
				assignments[j] = CategoricalSplit{}.CalculateDirection(v, bestInfo)
			} else {
				assignments[j] = NumericSplit{}.CalculateDirection(v, bestInfo)
			}
		}

		childCounts := ds.PartitionRange(begin, count, numChildren, assignments)

		// Aggregate loss: the branch-count-weighted sum of child losses.
		bestGain = 0.0
		childBegin := begin
		for i := 0; i < numChildren; i++ {
			child := NewNode()
			childLoss, err := child.train(ds, childBegin, childCounts[i],
				cfg, depth-1, selector, fitness, featImp)
			if err != nil {
				return 0, err
			}
			bestGain += float64(childCounts[i]) / float64(count) * (-childLoss)
			n.children = append(n.children, child)
			childBegin += childCounts[i]
		}
	} else {
		n.kind = kindLeaf
		n.prediction = fitness.OutputLeafValue(responses, weights)
	}

	n.nodeGain = bestGain
	return -bestGain, nil
}

// Predict routes a single feature vector down the tree and returns the
// reached leaf's cached prediction. The vector must have the dimensionality
// used at training time. Calling Predict on an untrained node, or routing
// into a branch removed by pruning, is reported as an error.
func (n *Node) Predict(point []float64) (float64, error) {
	switch n.kind {
	case kindLeaf:
		return n.prediction, nil
	case kindInternal:
		if n.splitDimension >= len(point) {
			return 0, errors.NewDimensionError("Node.Predict", n.splitDimension+1, len(point), 0)
		}
		dir := n.calculateDirection(point[n.splitDimension])
		if dir < 0 || dir >= len(n.children) {
			return 0, errors.NewValueError("Node.Predict", "no branch for the given feature value")
		}
		return n.children[dir].Predict(point)
	default:
		return 0, errors.NewNotFittedError("Node", "Predict")
	}
}

// calculateDirection dispatches to the stored split strategy.
func (n *Node) calculateDirection(value float64) int {
	if n.dimensionType == dataset.Categorical {
		return CategoricalSplit{}.CalculateDirection(value, n.splitInfo)
	}
	return NumericSplit{}.CalculateDirection(value, n.splitInfo)
}

// Prune walks the subtree bottom-up and detaches every descendant whose
// stored gain falls below threshold, preserving the order of survivors. It
// returns true when this node itself should be removed by its parent.
//
// The self-removal signal uses the node's own pre-pruning gain, the
// count-weighted aggregate computed over the original children, even when
// some of those children were just excised.
func (n *Node) Prune(threshold float64) bool {
	survivors := make([]*Node, 0, len(n.children))
	for _, child := range n.children {
		if child.Prune(threshold) {
			continue
		}
		survivors = append(survivors, child)
	}
	n.children = survivors

	return n.nodeGain < threshold
}

// IsLeaf reports whether the node holds a leaf prediction.
func (n *Node) IsLeaf() bool { return n.kind == kindLeaf }

// NumChildren returns the number of attached children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// NodeGain returns the node's split-quality score: the baseline no-split
// score for leaves, the aggregated child loss for internal nodes.
func (n *Node) NodeGain() float64 { return n.nodeGain }
