package data

// List is the 1-D container: a flat sequence of float64.
type List struct {
	values []float64
}

// NewList wraps values as a 1-D container. The slice is copied.
func NewList(values []float64) *List {
	copied := make([]float64, len(values))
	copy(copied, values)
	return &List{values: copied}
}

// Shape returns {len}.
func (l *List) Shape() Shape {
	return Shape{len(l.values)}
}

// FlatList returns a copy of the elements.
func (l *List) FlatList() []float64 {
	out := make([]float64, len(l.values))
	copy(out, l.values)
	return out
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.values)
}

// At returns the element at index i.
func (l *List) At(i int) float64 {
	return l.values[i]
}
