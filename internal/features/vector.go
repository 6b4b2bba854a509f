package features

// Vector is an ordered feature vector. Order follows the declared schema,
// which is the order the pretrained model expects.
type Vector struct {
	names  []string
	values []float64
	index  map[string]int
}

// Get returns the value of a named feature
func (v *Vector) Get(name string) (float64, bool) {
	i, ok := v.index[name]
	if !ok {
		return 0, false
	}
	return v.values[i], true
}

// Len returns the number of features in the vector
func (v *Vector) Len() int {
	return len(v.names)
}

// Names returns the feature names in vector order
func (v *Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}
