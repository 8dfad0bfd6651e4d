package tree

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/gboost/dataset"
	"github.com/YuminosukeSato/gboost/pkg/errors"
)

// nodeRecord is the serialized form of a node: the tagged variant flattened
// into exported fields so encoding/gob can traverse it.
type nodeRecord struct {
	Kind           uint8
	Prediction     float64
	SplitDimension int
	DimensionType  int
	SplitInfo      []float64
	NodeGain       float64
	Children       []nodeRecord
}

func (n *Node) toRecord() nodeRecord {
	rec := nodeRecord{
		Kind:           uint8(n.kind),
		Prediction:     n.prediction,
		SplitDimension: n.splitDimension,
		DimensionType:  int(n.dimensionType),
		SplitInfo:      n.splitInfo,
		NodeGain:       n.nodeGain,
	}
	for _, child := range n.children {
		rec.Children = append(rec.Children, child.toRecord())
	}
	return rec
}

func (n *Node) fromRecord(rec nodeRecord) {
	n.kind = nodeKind(rec.Kind)
	n.prediction = rec.Prediction
	n.splitDimension = rec.SplitDimension
	n.dimensionType = dataset.Datatype(rec.DimensionType)
	n.splitInfo = rec.SplitInfo
	n.nodeGain = rec.NodeGain
	n.children = nil
	for _, childRec := range rec.Children {
		child := NewNode()
		child.fromRecord(childRec)
		n.children = append(n.children, child)
	}
}

// GobEncode implements gob.GobEncoder, round-tripping the node's gain, type,
// split descriptor or prediction, and children.
func (n *Node) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(n.toRecord()); err != nil {
		return nil, errors.Wrap(err, "failed to encode tree node")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (n *Node) GobDecode(data []byte) error {
	var rec nodeRecord
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return errors.Wrap(err, "failed to decode tree node")
	}
	n.fromRecord(rec)
	return nil
}

// Save writes a trained tree to a file.
func Save(node *Node, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()

	return SaveToWriter(node, file)
}

// Load reads a tree previously written by Save.
func Load(filename string) (*Node, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// SaveToWriter writes a trained tree to w.
func SaveToWriter(node *Node, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(node); err != nil {
		return errors.Wrap(err, "failed to encode tree")
	}
	return nil
}

// LoadFromReader reads a tree from r.
func LoadFromReader(r io.Reader) (*Node, error) {
	node := NewNode()
	if err := gob.NewDecoder(r).Decode(node); err != nil {
		return nil, errors.Wrap(err, "failed to decode tree")
	}
	return node, nil
}
