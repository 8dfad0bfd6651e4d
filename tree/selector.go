package tree

// DimensionSelector produces an ordered, restartable sequence of candidate
// dimension indices for a node to examine. Begin restarts the sequence; the
// loop shape is:
//
//	for d := sel.Begin(); d != sel.End(); d = sel.Next() { ... }
//
// One selector instance is shared across all nodes of a growth call, so
// Begin must fully reset any cursor state.
type DimensionSelector interface {
	// Begin restarts the sequence and returns the first candidate.
	Begin() int
	// End returns the past-the-end sentinel value.
	End() int
	// Next advances the cursor and returns the next candidate, or End()
	// when the sequence is exhausted.
	Next() int
}

// AllDimensionSelect yields every dimension exactly once, in index order.
type AllDimensionSelect struct {
	dimensions int
	current    int
}

// NewAllDimensionSelect creates a selector over dims dimensions.
func NewAllDimensionSelect(dims int) *AllDimensionSelect {
	return &AllDimensionSelect{dimensions: dims}
}

// Begin implements DimensionSelector.
func (s *AllDimensionSelect) Begin() int {
	s.current = 0
	return s.current
}

// End implements DimensionSelector.
func (s *AllDimensionSelect) End() int { return s.dimensions }

// Next implements DimensionSelector.
func (s *AllDimensionSelect) Next() int {
	s.current++
	return s.current
}
