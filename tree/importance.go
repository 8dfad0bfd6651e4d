package tree

// FeatureImportance tallies, per dimension, how often the dimension was
// chosen as a split and the cumulative gain those splits contributed. One
// accumulator is shared by reference across all nodes of a growth call and
// owned by the caller; nodes only ever append to it.
type FeatureImportance struct {
	frequency map[int]int
	cover     map[int]float64
}

// ImportanceStat is one dimension's entry in an importance snapshot.
type ImportanceStat struct {
	Frequency int
	Cover     float64
}

// NewFeatureImportance creates an empty accumulator.
func NewFeatureImportance() *FeatureImportance {
	return &FeatureImportance{
		frequency: make(map[int]int),
		cover:     make(map[int]float64),
	}
}

// IncreaseFrequency adds by to the split count of dimension d.
func (f *FeatureImportance) IncreaseFrequency(d, by int) {
	f.frequency[d] += by
}

// IncreaseCover adds gain to the cumulative cover of dimension d.
func (f *FeatureImportance) IncreaseCover(d int, gain float64) {
	f.cover[d] += gain
}

// Frequency returns how many times dimension d was chosen as a split.
func (f *FeatureImportance) Frequency(d int) int { return f.frequency[d] }

// Cover returns the cumulative gain contributed by splits on dimension d.
func (f *FeatureImportance) Cover(d int) float64 { return f.cover[d] }

// Snapshot returns a read-only copy of the ledger for external reporting.
func (f *FeatureImportance) Snapshot() map[int]ImportanceStat {
	out := make(map[int]ImportanceStat, len(f.frequency))
	for d, freq := range f.frequency {
		out[d] = ImportanceStat{Frequency: freq, Cover: f.cover[d]}
	}
	return out
}
