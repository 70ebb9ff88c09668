// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense float64 tensors used
// by the graph engine.
//
// Example:
//
//	x := tensor.Vector(1, 2, 3)
//	m, _ := tensor.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
//	y, _ := tensor.MatVec(m, x)
package tensor

import (
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a dense, row-major tensor of float64 values.
type Tensor = tensor.Tensor

// ShapeError reports a dimension mismatch between operation operands.
type ShapeError = tensor.ShapeError

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// Zeros creates a zero-filled tensor with the given shape, panicking on an
// invalid shape.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// FromSlice creates a tensor holding a copy of data.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Vector creates a rank-1 tensor holding a copy of data.
func Vector(data ...float64) *Tensor {
	return tensor.Vector(data...)
}

// Matrix creates a rank-2 tensor from rows.
func Matrix(rows [][]float64) (*Tensor, error) {
	return tensor.Matrix(rows)
}

// MatVec computes the matrix-vector product m·v.
func MatVec(m, v *Tensor) (*Tensor, error) {
	return tensor.MatVec(m, v)
}

// MatTVec computes the transposed matrix-vector product mᵀ·v.
func MatTVec(m, v *Tensor) (*Tensor, error) {
	return tensor.MatTVec(m, v)
}

// Outer computes the outer product a⊗b.
func Outer(a, b *Tensor) (*Tensor, error) {
	return tensor.Outer(a, b)
}

// Add returns the element-wise sum a + b.
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// Dot computes the inner product of two vectors.
func Dot(a, b *Tensor) (float64, error) {
	return tensor.Dot(a, b)
}
