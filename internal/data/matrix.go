package data

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is the 2-D container, backed by a gonum dense matrix in
// row-major order.
type Matrix struct {
	m *mat.Dense
}

// NewMatrix wraps rows of equal length as a 2-D container.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &ShapeError{Reason: "matrix requires at least one row and one column"}
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &ShapeError{
				Shape:  Shape{len(rows), cols},
				Reason: fmt.Sprintf("row %d has %d elements, want %d", i, len(row), cols),
			}
		}
		flat = append(flat, row...)
	}
	return newMatrixFlat(flat, len(rows), cols), nil
}

// newMatrixFlat builds a Matrix from row-major data. The slice is copied.
func newMatrixFlat(flat []float64, rows, cols int) *Matrix {
	copied := make([]float64, len(flat))
	copy(copied, flat)
	return &Matrix{m: mat.NewDense(rows, cols, copied)}
}

// Shape returns {rows, cols}.
func (m *Matrix) Shape() Shape {
	r, c := m.m.Dims()
	return Shape{r, c}
}

// FlatList returns a copy of the elements in row-major order.
func (m *Matrix) FlatList() []float64 {
	raw := m.m.RawMatrix()
	out := make([]float64, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		copy(out[i*raw.Cols:(i+1)*raw.Cols], raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols])
	}
	return out
}

// Rows returns the row count.
func (m *Matrix) Rows() int {
	r, _ := m.m.Dims()
	return r
}

// Cols returns the column count.
func (m *Matrix) Cols() int {
	_, c := m.m.Dims()
	return c
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.m.At(i, j)
}

// Dense returns the underlying gonum matrix. Callers must not mutate it.
func (m *Matrix) Dense() *mat.Dense {
	return m.m
}
