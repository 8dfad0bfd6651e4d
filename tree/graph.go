package tree

import (
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/YuminosukeSato/gboost/dataset"
)

// label renders the node description shown in a graph: the split descriptor
// for internal nodes, the cached prediction for leaves.
func (n *Node) label() string {
	switch n.kind {
	case kindLeaf:
		return fmt.Sprintf("pred: %.5f\ngain: %.5f", n.prediction, n.nodeGain)
	case kindInternal:
		if n.dimensionType == dataset.Categorical {
			return fmt.Sprintf("f_%d (categorical, %d branches)\ngain: %.5f",
				n.splitDimension, len(n.children), n.nodeGain)
		}
		return fmt.Sprintf("f_%d <= %.5f\ngain: %.5f", n.splitDimension, n.splitInfo[0], n.nodeGain)
	default:
		return "untrained"
	}
}

func recurrentDraw(g *cgraph.Graph, n *Node, id *int, parent *cgraph.Node) error {
	current, err := g.CreateNode(fmt.Sprint(*id))
	if err != nil {
		return err
	}
	*id++

	if parent != nil {
		if _, err := g.CreateEdge("", parent, current); err != nil {
			return err
		}
	}

	current.Set("label", n.label())
	if n.IsLeaf() {
		current.Set("shape", "box")
	}

	for _, child := range n.children {
		if err := recurrentDraw(g, child, id, current); err != nil {
			return err
		}
	}
	return nil
}

// DrawGraph builds a graphviz rendering of the trained tree. The caller owns
// both returned handles and renders them with, e.g.,
// gv.RenderFilename(graph, graphviz.SVG, "tree.svg").
func (n *Node) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return nil, nil, err
	}

	id := 0
	if err := recurrentDraw(graph, n, &id, nil); err != nil {
		return nil, nil, err
	}
	return gv, graph, nil
}
