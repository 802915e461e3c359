package data

import "fmt"

// ShapeError reports a cast, convert, or inference failure: an empty or
// nil shape, more than one wildcard, or an element count that does not
// match the data.
type ShapeError struct {
	Shape  Shape
	Reason string
}

func (e *ShapeError) Error() string {
	if len(e.Shape) == 0 {
		return fmt.Sprintf("shape error: %s", e.Reason)
	}
	return fmt.Sprintf("shape error for %v: %s", e.Shape, e.Reason)
}
