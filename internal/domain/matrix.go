package domain

import "fmt"

// Matrix is an N-dimensional numeric matrix stored as a flat row-major
// value slice plus its shape.
type Matrix struct {
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

// Size returns the number of cells implied by the shape.
func (m Matrix) Size() int {
	if len(m.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range m.Shape {
		n *= d
	}
	return n
}

// Check verifies that the shape is non-degenerate and matches the number of
// stored values.
func (m Matrix) Check() error {
	if len(m.Shape) == 0 {
		return fmt.Errorf("matrix has no dimensions")
	}
	for i, d := range m.Shape {
		if d <= 0 {
			return fmt.Errorf("matrix dimension %d has non-positive extent %d", i, d)
		}
	}
	if got, want := len(m.Values), m.Size(); got != want {
		return fmt.Errorf("matrix has %d values, shape %v requires %d", got, m.Shape, want)
	}
	return nil
}

// At returns the value at the given multi-dimensional index.
func (m Matrix) At(index []int) float64 {
	flat := 0
	for axis, i := range index {
		flat = flat*m.Shape[axis] + i
	}
	return m.Values[flat]
}

// Cells visits every cell exactly once in canonical row-major order (the
// last axis varies fastest), the same order the flat Values slice is laid
// out in. The index slice is reused between calls; visitors must copy it if
// they retain it.
func (m Matrix) Cells(visit func(index []int, value float64)) {
	index := make([]int, len(m.Shape))
	for _, v := range m.Values {
		visit(index, v)

		// advance the index odometer-style
		for axis := len(index) - 1; axis >= 0; axis-- {
			index[axis]++
			if index[axis] < m.Shape[axis] {
				break
			}
			index[axis] = 0
		}
	}
}
