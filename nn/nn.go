// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the differentiable layers and the
// Network DAG they are assembled into.
//
// Example:
//
//	net := nn.NewSequential(
//	    nn.NewRectified(2, 16),
//	    nn.NewLinear(16, 1),
//	)
package nn

import (
	"github.com/gradnet-ml/gradnet/internal/nn"
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Layer is the contract every layer variant implements.
type Layer = nn.Layer

// Network is an immutable DAG of layers.
type Network = nn.Network

// ValidationError reports a connection that violates the Network's
// topological invariant.
type ValidationError = nn.ValidationError

// Unimplemented provides ErrNotImplemented fallbacks for a layer variant
// under construction.
type Unimplemented = nn.Unimplemented

// ErrNotImplemented is returned by a layer variant whose forward or backward
// transform has not been implemented.
var ErrNotImplemented = nn.ErrNotImplemented

// Layers

// Const is a source layer returning its single parameter tensor.
type Const = nn.Const

// NewConst creates a constant-output layer holding value.
func NewConst(value *tensor.Tensor) *Const {
	return nn.NewConst(value)
}

// Linear is a fully connected (affine) layer: y = W·x + b.
type Linear = nn.Linear

// NewLinear creates a Linear layer with Glorot-initialized weights and zero
// biases.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
func NewLinear(inFeatures, outFeatures int) *Linear {
	return nn.NewLinear(inFeatures, outFeatures)
}

// NewLinearFromWeights creates a Linear layer from an explicit [out, in]
// weight matrix and [out] bias vector.
func NewLinearFromWeights(weight, bias *tensor.Tensor) (*Linear, error) {
	return nn.NewLinearFromWeights(weight, bias)
}

// Rectified is an affine layer followed by an element-wise rectifier:
// y = max(0, W·x + b).
type Rectified = nn.Rectified

// NewRectified creates a Rectified layer with Glorot-initialized weights and
// zero biases.
func NewRectified(inFeatures, outFeatures int) *Rectified {
	return nn.NewRectified(inFeatures, outFeatures)
}

// NewRectifiedFromWeights creates a Rectified layer from an explicit
// [out, in] weight matrix and [out] bias vector.
func NewRectifiedFromWeights(weight, bias *tensor.Tensor) (*Rectified, error) {
	return nn.NewRectifiedFromWeights(weight, bias)
}

// Softmax is a stateless layer mapping a real vector to a probability
// vector.
type Softmax = nn.Softmax

// NewSoftmax creates a Softmax layer.
func NewSoftmax() *Softmax {
	return nn.NewSoftmax()
}

// Glorot returns a tensor initialized with the Xavier/Glorot uniform scheme.
func Glorot(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	return nn.Glorot(fanIn, fanOut, shape)
}

// Networks

// NewNetwork builds a Network from layers and their connection lists.
// connections[i] lists the producers feeding layers[i]: 0 denotes the
// network input, j > 0 denotes layer j. Every entry must be strictly less
// than its consumer's 1-based index.
func NewNetwork(layers []Layer, connections [][]int) (*Network, error) {
	return nn.NewNetwork(layers, connections)
}

// NewSequential builds a chain network: each layer consumes the previous
// layer's output.
func NewSequential(layers ...Layer) *Network {
	return nn.NewSequential(layers...)
}
