// Package tensor provides the dense float64 tensors and the linear algebra
// used by the graph engine. Tensors are row-major and CPU-resident.
package tensor

import "fmt"

// Tensor is a dense, row-major tensor of float64 values.
//
// The engine works with rank-1 tensors (vectors) for layer activations and
// rank-2 tensors (matrices) for packed layer parameters, but Tensor itself
// is rank-agnostic.
//
// Example:
//
//	v, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
//	m := tensor.Zeros(tensor.Shape{2, 3})
type Tensor struct {
	shape   Shape
	strides []int
	data    []float64
}

// New creates a zero-filled tensor with the given shape.
// Returns an error if the shape has a non-positive dimension.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("tensor: %w", err)
	}
	s := shape.Clone()
	return &Tensor{
		shape:   s,
		strides: computeStrides(s),
		data:    make([]float64, s.NumElements()),
	}, nil
}

// Zeros creates a zero-filled tensor with the given shape.
// Panics on an invalid shape; use New when the shape is untrusted.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("tensor: shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)
	return t, nil
}

// Vector creates a rank-1 tensor holding a copy of data.
func Vector(data ...float64) *Tensor {
	t := Zeros(Shape{len(data)})
	copy(t.data, data)
	return t
}

// Matrix creates a rank-2 tensor from rows. All rows must have equal length.
func Matrix(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("tensor: matrix needs at least one row")
	}
	cols := len(rows[0])
	t, err := New(Shape{len(rows), cols})
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("tensor: row %d has %d columns, want %d", i, len(row), cols)
		}
		copy(t.data[i*cols:(i+1)*cols], row)
	}
	return t, nil
}

// computeStrides calculates row-major strides for the shape.
func computeStrides(s Shape) []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the tensor's backing slice (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: expected %d indices, got %d", len(t.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of bounds for dimension %d (size %d)",
				idx, i, t.shape[i]))
		}
		offset += idx * t.strides[i]
	}
	return offset
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := Zeros(t.shape)
	copy(c.data, t.data)
	return c
}

// Zero resets every element to zero in place.
func (t *Tensor) Zero() {
	for i := range t.data {
		t.data[i] = 0
	}
}

// Fill sets every element to value in place.
func (t *Tensor) Fill(value float64) {
	for i := range t.data {
		t.data[i] = value
	}
}

// CopyFrom copies src's elements into t. The shapes must match exactly;
// the backing buffer of t is reused, never reallocated.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return &ShapeError{Op: "CopyFrom", Left: t.shape, Right: src.shape}
	}
	copy(t.data, src.data)
	return nil
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v%v", t.shape, t.data)
}
